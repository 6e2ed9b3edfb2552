package recall

import (
	"context"
	"encoding/json"

	"github.com/rushteam/menukit/core"
	"github.com/rushteam/menukit/pipeline"
	"github.com/rushteam/menukit/pkg/utils"
	"github.com/rushteam/menukit/store"
)

// Hot 是热门菜品召回源，支持从 Store 读取榜单。
// - 如果 Store 实现了 KeyValueStore，优先使用 ZRange（有序集合，按下单量排序）
// - 否则从普通 key 读取 JSON 数组
// - 如果 Store 为空，使用内存中的 IDs 作为 fallback
// 菜品元信息通过 Source 从快照回填；快照里没有的 ID 被丢弃。
// Hot 同时实现了 Source 和 Node 接口，可以直接在 Pipeline 中使用。
type Hot struct {
	Source core.SnapshotSource
	Store  core.Store
	Key    string  // 榜单 key，缺省 store.HotItemsKey
	TopN   int64   // 从榜单取前 N 个，默认 100
	IDs    []int64 // fallback 内存列表
}

func (r *Hot) Name() string        { return "recall.hot" }
func (r *Hot) Kind() pipeline.Kind { return pipeline.KindRecall }

// Process 实现 Node 接口，直接调用 Recall。
func (r *Hot) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	return r.Recall(ctx, rctx)
}

// Recall 实现 Source 接口。
func (r *Hot) Recall(
	ctx context.Context,
	_ *core.RecommendContext,
) ([]*core.Item, error) {
	var ids []int64

	topN := r.TopN
	if topN <= 0 {
		topN = 100
	}

	key := r.Key
	if key == "" {
		key = store.HotItemsKey
	}

	// 优先从 Store 读取（支持 ZRange 或普通 Get）
	if r.Store != nil {
		if kvStore, ok := r.Store.(core.KeyValueStore); ok {
			members, err := kvStore.ZRange(ctx, key, 0, topN-1)
			if err == nil && len(members) > 0 {
				ids = make([]int64, 0, len(members))
				for _, m := range members {
					if id, err := store.ParseHotItemMember(m); err == nil {
						ids = append(ids, id)
					}
				}
			}
		} else {
			data, err := r.Store.Get(ctx, key)
			if err == nil {
				var parsed []int64
				if json.Unmarshal(data, &parsed) == nil {
					ids = parsed
				}
			}
		}
	}

	// Fallback：使用内存 IDs
	if len(ids) == 0 {
		ids = r.IDs
	}
	if len(ids) == 0 {
		return nil, nil
	}

	var snap *core.Snapshot
	if r.Source != nil {
		s, err := r.Source.Snapshot(ctx)
		if err != nil {
			return nil, err
		}
		snap = s
	}

	out := make([]*core.Item, 0, len(ids))
	for _, id := range ids {
		var it *core.Item
		if snap != nil {
			m, ok := snap.ItemByID(id)
			if !ok {
				continue
			}
			it = core.NewItem(m)
		} else {
			it = &core.Item{ID: id}
		}
		it.PutLabel("recall_source", utils.Label{Value: "hot", Source: "recall"})
		out = append(out, it)
	}
	return out, nil
}
