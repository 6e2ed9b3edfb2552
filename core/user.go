package core

import "context"

// ProfileProvider 是用户画像的外部来源（特征平台等）。
// 快照里没有的用户可以在请求期从这里补齐画像。
type ProfileProvider interface {
	// Profile 返回用户画像；用户不存在时返回 ErrUserNotFound。
	Profile(ctx context.Context, userID int64) (*UserProfile, error)
}

// UserProfile 是用户画像：饮食约束 + 预算敏感度 + 问卷偏好。
//
// 打分核心只消费 Diet 与 BudgetSensitivity；
// 其余字段（过敏原、忌口、健康目标）驱动 Filter 阶段，不参与分数计算。
type UserProfile struct {
	UserID int64

	// Diet 饮食类型：none / vegetarian / vegan / chicken ...
	// 未识别的取值不做任何过滤（乘子恒为 1.0）。
	Diet string

	// BudgetSensitivity 预算敏感度：low / mid / high。
	// 请求上下文的 BudgetLevel 优先于此字段。
	BudgetSensitivity string

	// 问卷偏好（集合语义）
	FavoriteCategories map[string]struct{} // 偏好菜系/品类
	Disliked           map[string]struct{} // 忌口（食材或品类）
	Allergies          map[string]struct{} // 过敏原
	HealthGoals        map[string]struct{} // 健康目标：healthy / low_calorie / high_protein / organic

	// SpiceTolerance 辣度耐受：mild / medium / hot
	SpiceTolerance string
}

func NewUserProfile(userID int64) *UserProfile {
	return &UserProfile{
		UserID:             userID,
		Diet:               "none",
		BudgetSensitivity:  DefaultBudgetCategory,
		FavoriteCategories: make(map[string]struct{}),
		Disliked:           make(map[string]struct{}),
		Allergies:          make(map[string]struct{}),
		HealthGoals:        make(map[string]struct{}),
	}
}

// IsAllergicTo 判断用户是否对某个标签过敏。
func (u *UserProfile) IsAllergicTo(tag string) bool {
	_, ok := u.Allergies[tag]
	return ok
}

// Dislikes 判断某个食材/品类是否在用户忌口集合中。
func (u *UserProfile) Dislikes(name string) bool {
	_, ok := u.Disliked[name]
	return ok
}
