// Package recall 提供候选生成 Node：全量菜单召回（recall.menu）、
// 热门榜单召回（recall.hot）与并发多路召回（recall.fanout）。
package recall

import (
	"context"

	"github.com/rushteam/menukit/core"
)

// Source 是召回源抽象：给定上下文产出候选菜品集。
// Fanout 用它并发组合多路召回。
type Source interface {
	Name() string
	Recall(ctx context.Context, rctx *core.RecommendContext) ([]*core.Item, error)
}
