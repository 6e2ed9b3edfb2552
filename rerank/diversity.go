package rerank

import (
	"context"

	"github.com/rushteam/menukit/core"
	"github.com/rushteam/menukit/pipeline"
)

// Diversity 是一个简单的品类多样性 ReRank：每个菜系/品类只保留排序最靠前的 MaxPerCategory 个。
// 放在 rerank.hybrid 之后使用，避免榜单被单一菜系刷屏。
type Diversity struct {
	// MaxPerCategory 每个品类保留的数量，<= 0 按 1 处理
	MaxPerCategory int
}

func (n *Diversity) Name() string        { return "rerank.diversity" }
func (n *Diversity) Kind() pipeline.Kind { return pipeline.KindReRank }

func (n *Diversity) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(items) == 0 {
		return items, nil
	}

	max := n.MaxPerCategory
	if max <= 0 {
		max = 1
	}

	seen := make(map[string]int, 16)
	out := make([]*core.Item, 0, len(items))
	for _, it := range items {
		if it == nil {
			continue
		}
		cate := ""
		if it.Menu != nil {
			cate = it.Menu.Category
		}
		if cate == "" {
			out = append(out, it)
			continue
		}
		if seen[cate] >= max {
			continue
		}
		seen[cate]++
		out = append(out, it)
	}
	return out, nil
}
