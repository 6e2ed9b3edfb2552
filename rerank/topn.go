package rerank

import (
	"context"

	"github.com/rushteam/menukit/core"
	"github.com/rushteam/menukit/pipeline"
)

// TopNNode 是一个 Top-N 截断节点，用于在排序后截取前 N 个菜品。
// rerank.hybrid 自带截断；单独的 TopNNode 用于只跑内容分的降级链路。
type TopNNode struct {
	// N 要保留的菜品数量。N <= 0 或 N >= len(items) 时不截断。
	N int
}

func (n *TopNNode) Name() string        { return "rerank.topn" }
func (n *TopNNode) Kind() pipeline.Kind { return pipeline.KindReRank }

func (n *TopNNode) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if n.N <= 0 || len(items) <= n.N {
		return items, nil
	}
	return items[:n.N], nil
}
