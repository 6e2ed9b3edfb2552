package recall

import (
	"context"

	"github.com/rushteam/menukit/core"
	"github.com/rushteam/menukit/pipeline"
	"github.com/rushteam/menukit/pkg/utils"
)

// Menu 是全量菜单召回源：把快照中的每个菜品都作为候选放进链路。
// 打分核心对整张菜单评估，硬排除交给 Filter 与饮食乘子。
// Menu 同时实现了 Source 和 Node 接口，可以直接在 Pipeline 中使用。
type Menu struct {
	Source core.SnapshotSource
}

func (r *Menu) Name() string        { return "recall.menu" }
func (r *Menu) Kind() pipeline.Kind { return pipeline.KindRecall }

// Process 实现 Node 接口，直接调用 Recall。
func (r *Menu) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	return r.Recall(ctx, rctx)
}

// Recall 实现 Source 接口。
func (r *Menu) Recall(
	ctx context.Context,
	_ *core.RecommendContext,
) ([]*core.Item, error) {
	if r.Source == nil {
		return nil, nil
	}
	snap, err := r.Source.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]*core.Item, 0, len(snap.Items))
	for _, m := range snap.Items {
		if m == nil {
			continue
		}
		it := core.NewItem(m)
		it.PutLabel("recall_source", utils.Label{Value: "menu", Source: "recall"})
		out = append(out, it)
	}
	return out, nil
}
