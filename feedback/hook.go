package feedback

import (
	"context"

	"github.com/rushteam/menukit/core"
	"github.com/rushteam/menukit/pipeline"
)

// Hook 是 Pipeline Hook，在终端节点之后记录一次整屏曝光。
// 绑定终端节点而不是按 Kind 匹配：链路里可以串多个重排节点
// （hybrid → topn → diversity），只有最后一个节点的输出才是真正下发的榜单，
// 每次请求恰好记录一次。
type Hook struct {
	collector Collector
	final     pipeline.Node
}

// NewHook 绑定收集器与链路的终端节点（通常是 nodes 的最后一个）。
func NewHook(collector Collector, final pipeline.Node) *Hook {
	return &Hook{collector: collector, final: final}
}

// BeforeNode 节点执行前（这里不需要做什么）。
func (h *Hook) BeforeNode(_ context.Context, _ *core.RecommendContext,
	_ pipeline.Node, items []*core.Item) ([]*core.Item, error) {
	return items, nil
}

// AfterNode 节点执行后，终端节点成功时记录曝光。
func (h *Hook) AfterNode(ctx context.Context, rctx *core.RecommendContext,
	node pipeline.Node, items []*core.Item, err error) ([]*core.Item, error) {
	if err == nil && node == h.final && len(items) > 0 {
		// 异步记录曝光，不阻塞
		_ = h.collector.RecordImpressions(ctx, rctx, items)
	}
	return items, err
}
