package core

import (
	"time"

	"github.com/rushteam/menukit/pkg/utils"
)

// TimeOfDay 是一天内的就餐时段，所有打分逻辑只认这四个桶。
type TimeOfDay string

const (
	TimeMorning   TimeOfDay = "morning"   // [6, 11)
	TimeLunch     TimeOfDay = "lunch"     // [11, 15)
	TimeAfternoon TimeOfDay = "afternoon" // [15, 18)
	TimeDinner    TimeOfDay = "dinner"    // 其余时段
)

// BucketHour 将小时数归入四个就餐时段之一。
// 纯函数，只依赖小时分量，无错误分支。
func BucketHour(hour int) TimeOfDay {
	switch {
	case hour >= 6 && hour < 11:
		return TimeMorning
	case hour >= 11 && hour < 15:
		return TimeLunch
	case hour >= 15 && hour < 18:
		return TimeAfternoon
	default:
		return TimeDinner
	}
}

// RecommendContext 承载一次推荐请求的用户/场景信息，贯穿整个 Pipeline 透传。
type RecommendContext struct {
	UserID int64

	// Now 请求时间，用于在 TimeOfDay 缺失时推导就餐时段
	Now time.Time

	// BudgetLevel 请求级预算档位：low / mid / high。
	// 为空时回退到用户画像的 BudgetSensitivity。
	BudgetLevel string

	// TimeOfDay 就餐时段。为空时由 Ensure 从 Now 推导。
	TimeOfDay TimeOfDay

	// Query 自然语言查询。核心不解析，原样透传给外部的查询理解模块。
	Query string

	// Labels 是用户级标签，可驱动整个 Pipeline 行为
	// 例如：冷启动、价格敏感等
	Labels map[string]utils.Label

	// Params 请求级上下文参数（设备、位置、实验桶等）
	Params map[string]any
}

// Ensure 补全上下文：TimeOfDay 已设置时原样返回（幂等），
// 否则按 Now 的小时数归桶。任何打分之前都要求上下文已经 Ensure。
func (rctx *RecommendContext) Ensure() *RecommendContext {
	if rctx.TimeOfDay != "" {
		return rctx
	}
	rctx.TimeOfDay = BucketHour(rctx.Now.Hour())
	return rctx
}

// PutLabel 写入用户级 Label；若已存在同名 key，则按默认 Merge 规则累积。
func (rctx *RecommendContext) PutLabel(key string, lbl utils.Label) {
	if rctx.Labels == nil {
		rctx.Labels = make(map[string]utils.Label)
	}
	if old, ok := rctx.Labels[key]; ok {
		rctx.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	rctx.Labels[key] = lbl
}

// GetLabel 获取用户级 Label。
func (rctx *RecommendContext) GetLabel(key string) (utils.Label, bool) {
	if rctx.Labels == nil {
		return utils.Label{}, false
	}
	lbl, ok := rctx.Labels[key]
	return lbl, ok
}
