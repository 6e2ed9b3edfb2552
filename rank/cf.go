package rank

import (
	"context"

	"github.com/rushteam/menukit/cf"
	"github.com/rushteam/menukit/core"
	"github.com/rushteam/menukit/pipeline"
	"github.com/rushteam/menukit/pkg/utils"
)

// CFNode 是协同过滤打分 Node：为每个候选菜品写入归一化后的 CF 分。
//
// 相似度矩阵按快照版本缓存（Cache 为空时每次调用全量重建）。
// 预测分经 min-max 归一化到 [0,1] 后写入 Item.CFScore；
// 冷启动用户（无任何交互）的 CF 分全部为 0，并打上 cold_start 标签，
// 由 rerank.HybridNode 回退到内容分主导。
type CFNode struct {
	Source core.SnapshotSource

	// Cache 相似度模型缓存，可选。线上部署建议始终配置。
	Cache *cf.Cache

	// TopK 预测阶段只保留的最高分菜品数，0 表示不截断
	TopK int
}

func (n *CFNode) Name() string        { return "rank.cf" }
func (n *CFNode) Kind() pipeline.Kind { return pipeline.KindRank }

func (n *CFNode) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(items) == 0 {
		return items, nil
	}

	snap, err := n.Source.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	var model *cf.Model
	if n.Cache != nil {
		model = n.Cache.Get(snap)
	} else {
		model = cf.BuildModel(snap.Orders)
	}

	scores := model.Predict(rctx.UserID, n.TopK)
	if len(scores) == 0 {
		// 冷启动：CF 贡献按 0 处理，不是错误
		rctx.PutLabel("cold_start", utils.Label{Value: "true", Source: "rank"})
		for _, it := range items {
			it.CFScore = 0
			it.PutFeature("cf_score", 0)
		}
		return items, nil
	}

	normalized := normalizeScores(scores)
	for _, it := range items {
		s := normalized[it.ID] // 不在预测集中的菜品为 0
		it.CFScore = s
		it.PutFeature("cf_score", s)
	}
	return items, nil
}

// normalizeScores 对预测分做 min-max 归一化到 [0,1]，分母带 ε 保护。
func normalizeScores(scores map[int64]float64) map[int64]float64 {
	min, max := minMax(scores)
	out := make(map[int64]float64, len(scores))
	for id, s := range scores {
		out[id] = (s - min) / (max - min + epsRange)
	}
	return out
}
