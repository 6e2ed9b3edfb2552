package core

import "time"

// Order 是一次用户-菜品交互：同一 (user, item) 的多次下单都会被计数，不去重。
type Order struct {
	OrderID   int64
	UserID    int64
	ItemID    int64
	Timestamp time.Time
}

// TimeOfDay 从下单时间推导就餐时段，与上下文归桶规则一致。
func (o *Order) TimeOfDay() TimeOfDay {
	return BucketHour(o.Timestamp.Hour())
}
