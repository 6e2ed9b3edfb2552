package rank

import (
	"context"
	"testing"

	"github.com/rushteam/menukit/cf"
	"github.com/rushteam/menukit/core"
)

func TestCFNode_Process(t *testing.T) {
	snap := testSnapshot()
	node := &CFNode{Source: &stubSource{snap: snap}, Cache: cf.NewCache()}
	rctx := &core.RecommendContext{UserID: 1, TimeOfDay: core.TimeLunch}

	out, err := node.Process(context.Background(), rctx, itemsFromSnapshot(snap))
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	byID := make(map[int64]*core.Item, len(out))
	for _, it := range out {
		byID[it.ID] = it
		if it.CFScore < 0 || it.CFScore > 1 {
			t.Errorf("CFScore[%d] = %v, want within [0, 1]", it.ID, it.CFScore)
		}
		if got, ok := it.Features["cf_score"]; !ok || got != it.CFScore {
			t.Errorf("cf_score feature[%d] = %v ok=%v, want %v", it.ID, got, ok, it.CFScore)
		}
	}

	// for user 1 the strongest co-occurrence signal is item 103
	// (ordered alongside the user's dominant item 101)
	if !almostEqual(byID[103].CFScore, 1.0, 1e-3) {
		t.Errorf("CFScore[103] = %v, want ~1.0 after min-max normalization", byID[103].CFScore)
	}
	// item 104 was never ordered by anyone: not in the matrix, scored 0
	if byID[104].CFScore != 0 {
		t.Errorf("CFScore[104] = %v, want 0 for an item outside the matrix", byID[104].CFScore)
	}

	if _, ok := rctx.GetLabel("cold_start"); ok {
		t.Error("user with interactions must not be labeled cold_start")
	}
}

func TestCFNode_ColdStart(t *testing.T) {
	snap := testSnapshot()
	node := &CFNode{Source: &stubSource{snap: snap}, Cache: cf.NewCache()}
	rctx := &core.RecommendContext{UserID: 999, TimeOfDay: core.TimeLunch}

	out, err := node.Process(context.Background(), rctx, itemsFromSnapshot(snap))
	if err != nil {
		t.Fatalf("Process() error = %v, cold start is not an error", err)
	}
	for _, it := range out {
		if it.CFScore != 0 {
			t.Errorf("CFScore[%d] = %v, want 0 for cold start", it.ID, it.CFScore)
		}
	}
	if lbl, ok := rctx.GetLabel("cold_start"); !ok || lbl.Value != "true" {
		t.Errorf("cold_start label = %+v ok=%v, want value true", lbl, ok)
	}
}

func TestCFNode_WithoutCache(t *testing.T) {
	snap := testSnapshot()
	node := &CFNode{Source: &stubSource{snap: snap}}
	rctx := &core.RecommendContext{UserID: 1, TimeOfDay: core.TimeLunch}

	if _, err := node.Process(context.Background(), rctx, itemsFromSnapshot(snap)); err != nil {
		t.Fatalf("Process() without cache error = %v", err)
	}
}
