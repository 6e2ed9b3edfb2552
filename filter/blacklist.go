package filter

import (
	"context"
	"encoding/json"

	"github.com/rushteam/menukit/core"
)

// Blacklist 是下架/售罄黑名单过滤器，过滤掉黑名单中的菜品。
// 黑名单可以是内存列表，也可以从 Store 读取（JSON 编码的 ID 数组），
// 供门店侧在不重载快照的情况下临时下架菜品。
type Blacklist struct {
	// ItemIDs 是内存中的黑名单菜品 ID 列表
	ItemIDs []int64

	// Store 用于从存储中读取黑名单（可选）
	Store core.Store

	// Key 是 Store 中的黑名单 key（可选），例如 "menu:unavailable"
	Key string
}

func (f *Blacklist) Name() string { return "filter.blacklist" }

func (f *Blacklist) ShouldFilter(
	ctx context.Context,
	_ *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}

	for _, id := range f.ItemIDs {
		if item.ID == id {
			return true, nil
		}
	}

	if f.Store != nil && f.Key != "" {
		data, err := f.Store.Get(ctx, f.Key)
		if err == nil {
			var blacklist []int64
			if json.Unmarshal(data, &blacklist) == nil {
				for _, id := range blacklist {
					if item.ID == id {
						return true, nil
					}
				}
			}
		}
	}

	return false, nil
}
