// Package feedback 实现反馈事件的采集与落盘。
// 反馈是独立的学习信号，打分核心不读取它（在线学习是明确的非目标）。
package feedback

import (
	"context"

	"github.com/rushteam/menukit/core"
)

// Type 反馈类型
type Type string

const (
	TypeRating     Type = "rating"     // 评分
	TypeClick      Type = "click"      // 点击
	TypePurchase   Type = "purchase"   // 下单
	TypeSkip       Type = "skip"       // 跳过
	TypeImpression Type = "impression" // 曝光
)

// Event 反馈事件（轻量级，只包含必要信息）
type Event struct {
	UserID    int64             `json:"user_id"`
	ItemID    int64             `json:"item_id"`
	Type      Type              `json:"type"`
	Value     float64           `json:"value"`     // 评分值 / 点击权重
	Timestamp int64             `json:"timestamp"` // Unix 时间戳（秒）
	Position  int               `json:"position"`  // 菜品在榜单中的位置
	Score     float64           `json:"score"`     // 下发时的混合分
	Labels    map[string]string `json:"labels"`    // 召回来源等标签
	Metadata  map[string]any    `json:"metadata,omitempty"`
}

// Collector 反馈收集器接口（异步非阻塞）
type Collector interface {
	// Record 异步记录单条反馈（不阻塞请求路径）
	Record(ctx context.Context, event *Event) error

	// RecordImpressions 异步记录整屏曝光
	RecordImpressions(ctx context.Context, rctx *core.RecommendContext, items []*core.Item) error

	// Close 优雅关闭（等待缓冲数据落盘完成）
	Close() error
}
