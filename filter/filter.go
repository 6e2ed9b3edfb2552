// Package filter 提供过滤 Node 与过滤器：过敏原、忌口、下架黑名单与 CEL 规则过滤。
// 过滤是硬约束（直接剔除候选）；软性调权交给 rank 阶段的乘子。
package filter

import (
	"context"

	"github.com/rushteam/menukit/core"
)

// Filter 是过滤器的抽象接口，用于判断一个菜品是否应该被过滤掉。
// 返回 true 表示应该过滤（移除），false 表示保留。
type Filter interface {
	// Name 返回过滤器名称
	Name() string

	// ShouldFilter 判断 item 是否应该被过滤
	ShouldFilter(ctx context.Context, rctx *core.RecommendContext, item *core.Item) (bool, error)
}
