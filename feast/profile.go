package feast

import (
	"context"
	"fmt"
	"strings"

	"github.com/rushteam/menukit/core"
)

// DefaultFeatureView 是用户画像特征视图的默认名称。
const DefaultFeatureView = "menu_user_profile"

// UserProfiles 把 Feast 在线特征映射为 core.UserProfile，实现 core.ProfileProvider。
// 特征视图约定：
//
//	<view>:diet                string
//	<view>:budget_sensitivity  string
//	<view>:allergies           逗号分隔 string
//	<view>:disliked            逗号分隔 string
//	<view>:health_goals        逗号分隔 string
//	<view>:spice_tolerance     string
type UserProfiles struct {
	Client Client

	// FeatureView 特征视图名称，为空时使用 DefaultFeatureView
	FeatureView string

	// Project 项目名称，为空时使用客户端默认项目
	Project string
}

var _ core.ProfileProvider = (*UserProfiles)(nil)

// Profile 拉取单个用户的画像特征。
// 特征全部缺失视为用户不存在，返回 core.ErrUserNotFound。
func (p *UserProfiles) Profile(ctx context.Context, userID int64) (*core.UserProfile, error) {
	view := p.FeatureView
	if view == "" {
		view = DefaultFeatureView
	}

	features := []string{
		view + ":diet",
		view + ":budget_sensitivity",
		view + ":allergies",
		view + ":disliked",
		view + ":health_goals",
		view + ":spice_tolerance",
	}

	resp, err := p.Client.GetOnlineFeatures(ctx, &GetOnlineFeaturesRequest{
		Features:   features,
		EntityRows: []map[string]interface{}{{"user_id": userID}},
		Project:    p.Project,
	})
	if err != nil {
		return nil, fmt.Errorf("feast user profile: %w", err)
	}
	if len(resp.FeatureVectors) == 0 || len(resp.FeatureVectors[0].Values) == 0 {
		return nil, core.ErrUserNotFound
	}

	values := resp.FeatureVectors[0].Values
	u := core.NewUserProfile(userID)
	if v := strVal(values, view+":diet"); v != "" {
		u.Diet = v
	}
	if v := strVal(values, view+":budget_sensitivity"); v != "" {
		u.BudgetSensitivity = v
	}
	u.Allergies = splitSet(strVal(values, view+":allergies"))
	u.Disliked = splitSet(strVal(values, view+":disliked"))
	u.HealthGoals = splitSet(strVal(values, view+":health_goals"))
	u.SpiceTolerance = strVal(values, view+":spice_tolerance")
	return u, nil
}

func strVal(values map[string]interface{}, key string) string {
	if v, ok := values[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func splitSet(raw string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, part := range strings.Split(raw, ",") {
		if v := strings.TrimSpace(part); v != "" {
			set[v] = struct{}{}
		}
	}
	return set
}
