package filter

import (
	"context"

	"github.com/rushteam/menukit/core"
)

// Disliked 是忌口过滤器：菜品的品类或任一标签命中用户忌口集合时剔除。
type Disliked struct {
	Source core.SnapshotSource
}

func (f *Disliked) Name() string { return "filter.disliked" }

func (f *Disliked) ShouldFilter(
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
	if !ok || len(user.Disliked) == 0 {
		return false, nil
	}

	if user.Dislikes(item.Menu.Category) {
		return true, nil
	}
	for tag := range item.Menu.DietaryTags {
		if user.Dislikes(tag) {
			return true, nil
		}
	}
	return false, nil
}
