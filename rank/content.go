// Package rank 提供打分 Node：内容/上下文打分（rank.content）与协同过滤打分（rank.cf）。
package rank

import (
	"context"
	"sort"

	"github.com/rushteam/menukit/core"
	"github.com/rushteam/menukit/pipeline"
	"github.com/rushteam/menukit/pkg/utils"
)

// epsRange 归一化分母保护：(x - min) / (max - min + epsRange)，保证永不除零。
const epsRange = 1e-6

// coldPopularity 是从未被点过的菜品的中性流行度先验。
// 不取 0 是为了避免新菜品被硬排除在结果之外。
const coldPopularity = 0.2

// 收藏加成：按用户逐菜品下单直方图做用户内 min-max，再缩放偏移到 [1.0, 1.6]。
const (
	favoriteScale  = 0.6
	favoriteOffset = 1.0
)

// ContentNode 是内容/上下文打分 Node：对每个候选菜品计算五因子乘积分。
//
//	score = 流行度基准 × 饮食乘子 × 时段乘子 × 预算乘子 × 收藏加成
//
// 饮食乘子是唯一的硬排除机制：乘子为 0 的菜品被移出候选集（打 excluded 标签），
// 不会以 0 分的形式留在输出里。其余因子只做相对调权。
// 要求打分用户存在于快照中（没有 diet/budget 画像无法打分），
// 缺失时返回 core.ErrUserNotFound，与"没有推荐结果"严格区分。
// 打分对快照只读：缺省字段（空时段/空价位档）由乘子函数按缺省语义处理，
// 不回写菜品行，并发请求共享同一快照是安全的。
type ContentNode struct {
	Source core.SnapshotSource
}

func (n *ContentNode) Name() string        { return "rank.content" }
func (n *ContentNode) Kind() pipeline.Kind { return pipeline.KindRank }

func (n *ContentNode) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(items) == 0 {
		return items, nil
	}
	rctx.Ensure()

	snap, err := n.Source.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	user, ok := snap.UserByID(rctx.UserID)
	if !ok {
		return nil, core.ErrUserNotFound
	}

	popularity := popularityBase(snap.Orders)
	favorites := favoriteBoosts(snap.Orders, rctx.UserID)

	// 请求级预算档位优先于画像的预算敏感度
	budgetLevel := rctx.BudgetLevel
	if budgetLevel == "" {
		budgetLevel = user.BudgetSensitivity
	}

	out := make([]*core.Item, 0, len(items))
	for _, it := range items {
		if it == nil {
			continue
		}
		menu := it.Menu
		if menu == nil {
			// 召回只给了 ID 时回查快照；快照里没有的菜品直接丢弃
			m, ok := snap.ItemByID(it.ID)
			if !ok {
				continue
			}
			menu = m
			it.Menu = m
		}

		// 硬排除：乘子为 0 的菜品直接离开候选集而不是带着 0 分垫底，
		// 最终结果长度 = min(TopK, 乘子链非零的菜品数)
		diet := dietMultiplier(user.Diet, menu)
		if diet == 0 {
			it.Score = 0
			it.PutLabel("excluded", utils.Label{Value: "diet", Source: "rank"})
			continue
		}

		base, okPop := popularity[menu.ID]
		if !okPop {
			base = coldPopularity
		}
		tod := timeMultiplier(menu.TimePreference, rctx.TimeOfDay)
		budget := budgetMultiplier(budgetLevel, menu.BudgetCategory)
		favorite, okFav := favorites[menu.ID]
		if !okFav {
			favorite = favoriteOffset
		}

		it.Score = base * diet * tod * budget * favorite

		it.PutFeature("popularity_base", base)
		it.PutFeature("diet_multiplier", diet)
		it.PutFeature("time_multiplier", tod)
		it.PutFeature("budget_multiplier", budget)
		it.PutFeature("favorite_boost", favorite)

		out = append(out, it)
	}

	// 降序排序；同分按 itemID 升序，保证输出顺序确定
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// popularityBase 对逐菜品下单量做全局 min-max 归一化到 [0,1]。
// 只有出现在订单里的菜品有结果；其余菜品由调用方取中性先验 coldPopularity。
func popularityBase(orders []*core.Order) map[int64]float64 {
	counts := make(map[int64]float64)
	for _, o := range orders {
		counts[o.ItemID]++
	}
	if len(counts) == 0 {
		return counts
	}

	min, max := minMax(counts)
	out := make(map[int64]float64, len(counts))
	for id, c := range counts {
		out[id] = (c - min) / (max - min + epsRange)
	}
	return out
}

// favoriteBoosts 按用户逐菜品下单直方图做用户内（非全局）min-max，
// 再映射到 [favoriteOffset, favoriteOffset+favoriteScale]。
// 用户从未点过的菜品不在结果中，由调用方取恰好 favoriteOffset。
func favoriteBoosts(orders []*core.Order, userID int64) map[int64]float64 {
	counts := make(map[int64]float64)
	for _, o := range orders {
		if o.UserID == userID {
			counts[o.ItemID]++
		}
	}
	if len(counts) == 0 {
		return counts
	}

	min, max := minMax(counts)
	out := make(map[int64]float64, len(counts))
	for id, c := range counts {
		norm := (c - min) / (max - min + epsRange)
		out[id] = norm*favoriteScale + favoriteOffset
	}
	return out
}

func minMax(m map[int64]float64) (min, max float64) {
	first := true
	for _, v := range m {
		if first {
			min, max = v, v
			first = false
			continue
		}
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}

// dietMultiplier 是确定性的饮食规则表，唯一的硬排除机制。
//
//	vegetarian: 含 meat → 0
//	vegan:      含 meat/vegetarian/dairy/cheese 任一 → 0
//	chicken:    含 meat 但不含 chicken → 0.5
//	其他饮食类型不做过滤 → 1.0
func dietMultiplier(diet string, item *core.MenuItem) float64 {
	switch diet {
	case "vegetarian":
		if item.HasTag("meat") {
			return 0
		}
	case "vegan":
		for _, t := range []string{"meat", "vegetarian", "dairy", "cheese"} {
			if item.HasTag(t) {
				return 0
			}
		}
	case "chicken":
		if item.HasTag("meat") && !item.HasTag("chicken") {
			return 0.5
		}
	}
	return 1.0
}

// timeMultiplier：时段完全匹配 1.2；any/all（含缺失）1.05；其余 1.0。
func timeMultiplier(pref string, tod core.TimeOfDay) float64 {
	switch {
	case pref == string(tod):
		return 1.2
	case pref == "any" || pref == "all" || pref == "":
		return 1.05
	default:
		return 1.0
	}
}

// budgetTable 是 预算档位 × 菜品价位档 的固定 3×3 乘子表。
// "mid" 与 "medium" 视为同一个键（两个轴都是）。
var budgetTable = map[string]map[string]float64{
	"low":  {"low": 1.2, "mid": 1.0, "high": 0.8},
	"mid":  {"low": 1.1, "mid": 1.1, "high": 0.95},
	"high": {"low": 0.9, "mid": 1.0, "high": 1.2},
}

func canonicalBudget(s string) string {
	if s == "medium" {
		return "mid"
	}
	return s
}

// budgetMultiplier 查表取乘子。
// 未知预算档位 → 1.0（不调整）；未知菜品价位档先落到 "mid" 行再查。
func budgetMultiplier(level, category string) float64 {
	row, ok := budgetTable[canonicalBudget(level)]
	if !ok {
		return 1.0
	}
	category = canonicalBudget(category)
	if _, ok := row[category]; !ok {
		category = core.DefaultBudgetCategory
	}
	return row[category]
}
