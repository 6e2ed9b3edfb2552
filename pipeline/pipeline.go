package pipeline

import (
	"context"

	"github.com/rushteam/menukit/core"
)

// Hook 在每个 Node 前后执行，用于反馈采集、打点等横切逻辑。
// 返回的 items 会替换后续流程的输入；返回 error 不中断流程，由 Hook 自行吞掉。
type Hook interface {
	BeforeNode(ctx context.Context, rctx *core.RecommendContext, node Node, items []*core.Item) ([]*core.Item, error)
	AfterNode(ctx context.Context, rctx *core.RecommendContext, node Node, items []*core.Item, err error) ([]*core.Item, error)
}

// Pipeline 是 menukit 的核心抽象：把推荐逻辑拆成可组合的 Node 链。
// 典型链路：recall.menu → filter → rank.content → rank.cf → rerank.hybrid。
type Pipeline struct {
	Nodes []Node
	Hooks []Hook
}

// Run 依次执行所有 Node。任何 Node 返回错误都会中断整条链路。
// Ensure 上下文是调用方（service 层）的职责；这里只做透传。
func (p *Pipeline) Run(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	cur := items
	for _, node := range p.Nodes {
		for _, h := range p.Hooks {
			if next, err := h.BeforeNode(ctx, rctx, node, cur); err == nil && next != nil {
				cur = next
			}
		}

		next, err := node.Process(ctx, rctx, cur)

		for _, h := range p.Hooks {
			if after, herr := h.AfterNode(ctx, rctx, node, next, err); herr == nil && after != nil {
				next = after
			}
		}
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}
