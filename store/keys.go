package store

import "strconv"

// 约定的 key 布局，内存与 Redis 实现共用：
//
//	hot:items        ZSet，member 为菜品 ID，score 为累计下单量（recall.hot 消费）
//	menu:unavailable JSON int64 数组，临时下架的菜品（filter 黑名单消费）
//	feedback:*       反馈事件，由 feedback.StoreCollector 写入、离线管道批量消费
const (
	// HotItemsKey 热门菜品榜单
	HotItemsKey = "hot:items"

	// UnavailableKey 下架菜品黑名单
	UnavailableKey = "menu:unavailable"
)

// HotItemMember 把菜品 ID 编码为榜单 ZSet 的 member。
func HotItemMember(itemID int64) string {
	return strconv.FormatInt(itemID, 10)
}

// ParseHotItemMember 把榜单 member 解析回菜品 ID。
func ParseHotItemMember(member string) (int64, error) {
	return strconv.ParseInt(member, 10, 64)
}
