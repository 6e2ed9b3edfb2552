package store

import (
	"context"
	"testing"
	"time"

	"github.com/rushteam/menukit/core"
)

func TestMemoryStore_GetSet(t *testing.T) {
	m := NewMemoryStore()
	defer m.Close()
	ctx := context.Background()

	if _, err := m.Get(ctx, "missing"); !core.IsStoreNotFound(err) {
		t.Fatalf("Get(missing) error = %v, want store not-found", err)
	}

	if err := m.Set(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	got, err := m.Get(ctx, "k")
	if err != nil || string(got) != "v" {
		t.Fatalf("Get() = %q, %v", got, err)
	}

	if err := m.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := m.Get(ctx, "k"); !core.IsStoreNotFound(err) {
		t.Fatalf("Get after Delete error = %v, want store not-found", err)
	}
}

func TestMemoryStore_TTL(t *testing.T) {
	m := NewMemoryStore()
	defer m.Close()
	ctx := context.Background()

	if err := m.Set(ctx, "ephemeral", []byte("v"), 1); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if _, err := m.Get(ctx, "ephemeral"); err != nil {
		t.Fatalf("Get before expiry error = %v", err)
	}

	time.Sleep(1100 * time.Millisecond)
	if _, err := m.Get(ctx, "ephemeral"); !core.IsStoreNotFound(err) {
		t.Fatalf("Get after expiry error = %v, want store not-found", err)
	}
}

func TestMemoryStore_Batch(t *testing.T) {
	m := NewMemoryStore()
	defer m.Close()
	ctx := context.Background()

	if err := m.BatchSet(ctx, map[string][]byte{"a": []byte("1"), "b": []byte("2")}); err != nil {
		t.Fatalf("BatchSet() error = %v", err)
	}
	got, err := m.BatchGet(ctx, []string{"a", "b", "missing"})
	if err != nil {
		t.Fatalf("BatchGet() error = %v", err)
	}
	if len(got) != 2 || string(got["a"]) != "1" || string(got["b"]) != "2" {
		t.Fatalf("BatchGet() = %v", got)
	}
}

func TestMemoryStore_SortedSet(t *testing.T) {
	m := NewMemoryStore()
	defer m.Close()
	ctx := context.Background()

	for member, score := range map[string]float64{"101": 5, "102": 20, "103": 10} {
		if err := m.ZAdd(ctx, "hot", score, member); err != nil {
			t.Fatalf("ZAdd() error = %v", err)
		}
	}

	members, err := m.ZRange(ctx, "hot", 0, 1)
	if err != nil {
		t.Fatalf("ZRange() error = %v", err)
	}
	if len(members) != 2 || members[0] != "102" || members[1] != "103" {
		t.Fatalf("ZRange() = %v, want score-descending [102 103]", members)
	}

	score, err := m.ZScore(ctx, "hot", "103")
	if err != nil || score != 10 {
		t.Fatalf("ZScore() = %v, %v", score, err)
	}
}

func TestMemoryStore_Hash(t *testing.T) {
	m := NewMemoryStore()
	defer m.Close()
	ctx := context.Background()

	if err := m.HSet(ctx, "item:101", "name", []byte("salad")); err != nil {
		t.Fatalf("HSet() error = %v", err)
	}
	got, err := m.HGet(ctx, "item:101", "name")
	if err != nil || string(got) != "salad" {
		t.Fatalf("HGet() = %q, %v", got, err)
	}

	all, err := m.HGetAll(ctx, "item:101")
	if err != nil || len(all) != 1 {
		t.Fatalf("HGetAll() = %v, %v", all, err)
	}
}
