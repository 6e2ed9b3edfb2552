package rerank

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/rushteam/menukit/core"
)

func item(id int64, score, cfScore float64) *core.Item {
	it := core.NewItem(&core.MenuItem{ID: id})
	it.Score = score
	it.CFScore = cfScore
	return it
}

func TestFuse(t *testing.T) {
	t.Run("weighted geometric mean", func(t *testing.T) {
		got := Fuse(1.0, 1.0)
		want := math.Pow(1.0+1e-6, 0.7) * math.Pow(1.0+1e-6, 0.3)
		if got != want {
			t.Errorf("Fuse(1, 1) = %v, want %v", got, want)
		}
	})

	t.Run("zero inputs stay finite", func(t *testing.T) {
		got := Fuse(0, 0)
		if math.IsNaN(got) || math.IsInf(got, 0) || got <= 0 {
			t.Errorf("Fuse(0, 0) = %v, want small positive value", got)
		}
	})

	t.Run("monotone in each argument", func(t *testing.T) {
		r := rand.New(rand.NewSource(42))
		for i := 0; i < 200; i++ {
			s, cf := r.Float64()*3, r.Float64()
			delta := r.Float64() + 0.01
			if Fuse(s+delta, cf) <= Fuse(s, cf) {
				t.Fatalf("Fuse not monotone in content score at s=%v cf=%v", s, cf)
			}
			if Fuse(s, cf+delta) <= Fuse(s, cf) {
				t.Fatalf("Fuse not monotone in cf score at s=%v cf=%v", s, cf)
			}
		}
	})

	t.Run("cold start preserves content ordering", func(t *testing.T) {
		// with every cf score at 0 the cf factor is a shared constant,
		// so the hybrid ranking must equal the content ranking
		r := rand.New(rand.NewSource(7))
		for i := 0; i < 100; i++ {
			a, b := r.Float64()*5, r.Float64()*5
			if a == b {
				continue
			}
			if (a > b) != (Fuse(a, 0) > Fuse(b, 0)) {
				t.Fatalf("cold-start fusion reordered %v vs %v", a, b)
			}
		}
	})
}

func TestHybridNode_Process(t *testing.T) {
	node := &HybridNode{}
	items := []*core.Item{
		item(1, 0.5, 0.2),
		item(2, 2.0, 0.9),
		item(3, 1.0, 0.0),
	}

	out, err := node.Process(context.Background(), &core.RecommendContext{}, items)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	for i := 1; i < len(out); i++ {
		if out[i-1].HybridScore < out[i].HybridScore {
			t.Fatalf("output not sorted by hybrid score: %v then %v",
				out[i-1].HybridScore, out[i].HybridScore)
		}
	}
	if out[0].ID != 2 {
		t.Errorf("out[0].ID = %d, want 2 (highest on both signals)", out[0].ID)
	}
	for _, it := range out {
		if want := Fuse(it.Score, it.CFScore); it.HybridScore != want {
			t.Errorf("HybridScore[%d] = %v, want %v", it.ID, it.HybridScore, want)
		}
		if got := it.Features["hybrid_score"]; got != it.HybridScore {
			t.Errorf("hybrid_score feature[%d] = %v, want %v", it.ID, got, it.HybridScore)
		}
	}
}

func TestHybridNode_TieBreakByItemID(t *testing.T) {
	node := &HybridNode{}
	items := []*core.Item{
		item(30, 1.0, 0.5),
		item(10, 1.0, 0.5),
		item(20, 1.0, 0.5),
	}

	out, err := node.Process(context.Background(), &core.RecommendContext{}, items)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	want := []int64{10, 20, 30}
	for i, id := range want {
		if out[i].ID != id {
			t.Fatalf("tie-break order = [%d %d %d], want %v", out[0].ID, out[1].ID, out[2].ID, want)
		}
	}
}

func TestHybridNode_Truncation(t *testing.T) {
	node := &HybridNode{TopK: 2}
	items := []*core.Item{
		item(1, 0.5, 0.2),
		item(2, 2.0, 0.9),
		item(3, 1.0, 0.0),
	}

	out, err := node.Process(context.Background(), &core.RecommendContext{}, items)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("len(out) = %d, want 2", len(out))
	}
	if out[0].ID != 2 {
		t.Errorf("out[0].ID = %d, want the top-scored item kept", out[0].ID)
	}
}

func TestTopNNode_Process(t *testing.T) {
	items := []*core.Item{item(1, 0, 0), item(2, 0, 0), item(3, 0, 0)}

	tests := []struct {
		name string
		n    int
		want int
	}{
		{"truncates", 2, 2},
		{"n zero keeps all", 0, 3},
		{"n beyond length keeps all", 10, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := &TopNNode{N: tt.n}
			out, err := node.Process(context.Background(), &core.RecommendContext{}, items)
			if err != nil {
				t.Fatalf("Process() error = %v", err)
			}
			if len(out) != tt.want {
				t.Fatalf("len(out) = %d, want %d", len(out), tt.want)
			}
		})
	}
}

func TestDiversity_Process(t *testing.T) {
	mk := func(id int64, category string) *core.Item {
		return core.NewItem(&core.MenuItem{ID: id, Category: category})
	}
	items := []*core.Item{
		mk(1, "noodle"), mk(2, "noodle"), mk(3, "noodle"),
		mk(4, "salad"), mk(5, ""),
	}

	node := &Diversity{MaxPerCategory: 2}
	out, err := node.Process(context.Background(), &core.RecommendContext{}, items)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	got := make([]int64, len(out))
	for i, it := range out {
		got[i] = it.ID
	}
	// third noodle dropped; uncategorized item always passes
	want := []int64{1, 2, 4, 5}
	if len(got) != len(want) {
		t.Fatalf("kept %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("kept %v, want %v", got, want)
		}
	}
}
