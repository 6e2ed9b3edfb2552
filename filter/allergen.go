package filter

import (
	"context"

	"github.com/rushteam/menukit/core"
)

// Allergen 是过敏原过滤器：菜品标签与用户过敏原集合相交时剔除。
// 过敏是硬约束，不走打分降权。
// 用户不在快照中时放行所有菜品，前置条件失败由打分阶段统一报告。
type Allergen struct {
	Source core.SnapshotSource
}

func (f *Allergen) Name() string { return "filter.allergen" }

func (f *Allergen) ShouldFilter(
	ctx context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}
	if f.Source == nil || item.Menu == nil {
		return false, nil
	}

	snap, err := f.Source.Snapshot(ctx)
	if err != nil {
		return false, err
	}
	user, ok := snap.UserByID(rctx.UserID)
	if !ok || len(user.Allergies) == 0 {
		return false, nil
	}

	for tag := range item.Menu.DietaryTags {
		if user.IsAllergicTo(tag) {
			return true, nil
		}
	}
	return false, nil
}
