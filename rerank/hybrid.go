// Package rerank 提供重排 Node：混合分融合（rerank.hybrid）、TopN 截断（rerank.topn）、
// 品类多样性（rerank.diversity）。
package rerank

import (
	"context"
	"math"
	"sort"

	"github.com/rushteam/menukit/core"
	"github.com/rushteam/menukit/pipeline"
)

// 融合权重固定 0.7/0.3，内容/上下文信号主导。
// 内容分是尺度良好的乘积因子，而 CF 分源自量纲不可预期的原始计数，
// 加权几何平均对这种尺度错配是稳健的：任一项为 0 都会重压混合分，除非 ε 占主导。
const (
	contentWeight = 0.7
	cfWeight      = 0.3
	epsHybrid     = 1e-6
)

// HybridNode 把内容分与 CF 分融合为最终混合分并截断：
//
//	hybrid = (score + ε)^0.7 × (cf_score + ε)^0.3
//
// 按 hybrid 降序排序，同分按 itemID 升序；TopK > 0 时截断。
// 两个输入分都是有限非负值（上游已保证），融合结果永不为 NaN/Inf。
type HybridNode struct {
	// TopK 最终返回的菜品数，<= 0 表示不截断
	TopK int
}

func (n *HybridNode) Name() string        { return "rerank.hybrid" }
func (n *HybridNode) Kind() pipeline.Kind { return pipeline.KindReRank }

func (n *HybridNode) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(items) == 0 {
		return items, nil
	}

	for _, it := range items {
		it.HybridScore = Fuse(it.Score, it.CFScore)
		it.PutFeature("hybrid_score", it.HybridScore)
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].HybridScore != items[j].HybridScore {
			return items[i].HybridScore > items[j].HybridScore
		}
		return items[i].ID < items[j].ID
	})

	if n.TopK > 0 && len(items) > n.TopK {
		items = items[:n.TopK]
	}
	return items, nil
}

// Fuse 计算单个菜品的加权几何平均混合分。
func Fuse(contentScore, cfScore float64) float64 {
	return math.Pow(contentScore+epsHybrid, contentWeight) * math.Pow(cfScore+epsHybrid, cfWeight)
}
