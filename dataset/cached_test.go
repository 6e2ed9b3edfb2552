package dataset

import (
	"context"
	"testing"

	"github.com/rushteam/menukit/core"
)

type countingSource struct {
	calls int
	snap  *core.Snapshot
}

func (s *countingSource) Snapshot(_ context.Context) (*core.Snapshot, error) {
	s.calls++
	return s.snap, nil
}

func TestStatic_Snapshot(t *testing.T) {
	snap := &core.Snapshot{Version: "v1"}
	src := NewStatic(snap)
	got, err := src.Snapshot(context.Background())
	if err != nil || got != snap {
		t.Fatalf("Snapshot() = %v, %v", got, err)
	}

	if _, err := (&Static{}).Snapshot(context.Background()); !core.IsInvalidInput(err) {
		t.Fatalf("nil static snapshot error = %v, want INVALID_INPUT", err)
	}
}

func TestCachedSource_LoadsOnce(t *testing.T) {
	inner := &countingSource{snap: &core.Snapshot{Version: "v1"}}
	src := NewCachedSource(inner)

	for i := 0; i < 3; i++ {
		if _, err := src.Snapshot(context.Background()); err != nil {
			t.Fatalf("Snapshot() error = %v", err)
		}
	}
	if inner.calls != 1 {
		t.Fatalf("underlying source loaded %d times, want 1", inner.calls)
	}

	src.Reload()
	if _, err := src.Snapshot(context.Background()); err != nil {
		t.Fatalf("Snapshot() after Reload error = %v", err)
	}
	if inner.calls != 2 {
		t.Fatalf("underlying source loaded %d times after Reload, want 2", inner.calls)
	}
}
