package service

import (
	"context"
	"testing"
	"time"

	"github.com/rushteam/menukit/cf"
	"github.com/rushteam/menukit/core"
	"github.com/rushteam/menukit/dataset"
	"github.com/rushteam/menukit/filter"
)

func serviceSnapshot() *core.Snapshot {
	return &core.Snapshot{
		Version: "v1",
		Users: map[int64]*core.UserProfile{
			1: {
				UserID:            1,
				Diet:              "vegetarian",
				BudgetSensitivity: "low",
				Allergies:         core.NewTagSet("peanut"),
			},
			2: {UserID: 2, Diet: "none", BudgetSensitivity: "mid"},
		},
		Items: []*core.MenuItem{
			{ID: 101, Name: "Caesar Salad", Category: "salad", Price: 32, DietaryTags: core.NewTagSet("vegetarian"), TimePreference: "lunch", BudgetCategory: "mid"},
			{ID: 102, Name: "Beef Noodles", Category: "noodle", Price: 45, DietaryTags: core.NewTagSet("meat"), TimePreference: "any", BudgetCategory: "mid"},
			{ID: 103, Name: "Kung Pao Chicken", Category: "main", Price: 38, DietaryTags: core.NewTagSet("peanut", "chicken"), TimePreference: "dinner", BudgetCategory: "mid"},
			{ID: 104, Name: "Tomato Soup", Category: "soup", Price: 18, TimePreference: "any", BudgetCategory: "low"},
		},
		Orders: []*core.Order{
			{OrderID: 1, UserID: 1, ItemID: 101, Timestamp: time.Now()},
			{OrderID: 2, UserID: 1, ItemID: 104, Timestamp: time.Now()},
			{OrderID: 3, UserID: 2, ItemID: 102, Timestamp: time.Now()},
			{OrderID: 4, UserID: 2, ItemID: 104, Timestamp: time.Now()},
		},
	}
}

func TestRecommender_Recommend(t *testing.T) {
	rec := New(dataset.NewStatic(serviceSnapshot()), cf.NewCache())

	resp, err := rec.Recommend(context.Background(), &Request{
		UserID:    1,
		TimeOfDay: core.TimeLunch,
	})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if resp.ColdStart {
		t.Error("user 1 has orders, must not be cold start")
	}
	if len(resp.Rows) == 0 {
		t.Fatal("no rows returned")
	}

	// rows are ordered by hybrid score descending
	for i := 1; i < len(resp.Rows); i++ {
		if resp.Rows[i-1].HybridScore < resp.Rows[i].HybridScore {
			t.Fatalf("rows not sorted: %v then %v", resp.Rows[i-1].HybridScore, resp.Rows[i].HybridScore)
		}
	}

	seen := make(map[int64]bool)
	for _, row := range resp.Rows {
		seen[row.ItemID] = true
		if row.Name == "" || row.Category == "" {
			t.Errorf("row %d missing projected columns: %+v", row.ItemID, row)
		}
	}
	// peanut dish is hard-filtered for the allergic user
	if seen[103] {
		t.Error("allergen-tagged item must never reach the response")
	}
	// the meat dish is diet-excluded for the vegetarian, never listed
	if seen[102] {
		t.Error("diet-excluded item must never reach the response")
	}
	if !seen[101] || !seen[104] {
		t.Errorf("expected core items in response, got %v", seen)
	}
	if len(resp.Rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2 (only eligible dishes)", len(resp.Rows))
	}
}

func TestRecommender_ColdStart(t *testing.T) {
	snap := serviceSnapshot()
	snap.Users[3] = &core.UserProfile{UserID: 3, Diet: "none", BudgetSensitivity: "mid"}
	rec := New(dataset.NewStatic(snap), cf.NewCache())

	resp, err := rec.Recommend(context.Background(), &Request{UserID: 3, TimeOfDay: core.TimeDinner})
	if err != nil {
		t.Fatalf("Recommend() error = %v, cold start must not fail", err)
	}
	if !resp.ColdStart {
		t.Error("user without interactions must be flagged cold start")
	}
	for _, row := range resp.Rows {
		if row.CFScore != 0 {
			t.Errorf("cold start cf score = %v, want 0", row.CFScore)
		}
	}
}

func TestRecommender_UserNotFound(t *testing.T) {
	rec := New(dataset.NewStatic(serviceSnapshot()), cf.NewCache())

	_, err := rec.Recommend(context.Background(), &Request{UserID: 999})
	if !core.IsUserNotFound(err) {
		t.Fatalf("Recommend() error = %v, want user-not-found", err)
	}
}

func TestRecommender_TopK(t *testing.T) {
	rec := New(dataset.NewStatic(serviceSnapshot()), cf.NewCache())

	resp, err := rec.Recommend(context.Background(), &Request{UserID: 2, TopK: 2, TimeOfDay: core.TimeLunch})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(resp.Rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(resp.Rows))
	}
}

func TestRecommender_DerivesTimeOfDay(t *testing.T) {
	rec := New(dataset.NewStatic(serviceSnapshot()), cf.NewCache())

	resp, err := rec.Recommend(context.Background(), &Request{UserID: 2})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if resp.TimeOfDay == "" {
		t.Fatal("response must echo the resolved time of day")
	}
}

type stubProfiles struct {
	profiles map[int64]*core.UserProfile
}

func (s *stubProfiles) Profile(_ context.Context, userID int64) (*core.UserProfile, error) {
	p, ok := s.profiles[userID]
	if !ok {
		return nil, core.ErrUserNotFound
	}
	return p, nil
}

func TestRecommender_ProfileOverlay(t *testing.T) {
	snap := serviceSnapshot()
	profiles := &stubProfiles{profiles: map[int64]*core.UserProfile{
		42: {UserID: 42, Diet: "vegan", BudgetSensitivity: "high"},
	}}
	rec := New(dataset.NewStatic(snap), cf.NewCache(), WithProfiles(profiles))

	resp, err := rec.Recommend(context.Background(), &Request{UserID: 42, TimeOfDay: core.TimeLunch})
	if err != nil {
		t.Fatalf("Recommend() error = %v, overlay should supply the profile", err)
	}
	if len(resp.Rows) == 0 {
		t.Fatal("no rows for overlaid user")
	}

	// the shared snapshot must stay untouched
	if _, ok := snap.UserByID(42); ok {
		t.Fatal("profile overlay leaked into the shared snapshot")
	}

	// provider miss still surfaces as user-not-found from the scorer
	if _, err := rec.Recommend(context.Background(), &Request{UserID: 43}); !core.IsUserNotFound(err) {
		t.Fatalf("Recommend() error = %v, want user-not-found", err)
	}
}

func TestRecommender_ExtraFilters(t *testing.T) {
	rec := New(dataset.NewStatic(serviceSnapshot()), cf.NewCache(),
		WithFilters(&filter.Blacklist{ItemIDs: []int64{104}}),
	)

	resp, err := rec.Recommend(context.Background(), &Request{UserID: 2, TimeOfDay: core.TimeLunch})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	for _, row := range resp.Rows {
		if row.ItemID == 104 {
			t.Fatal("blacklisted item must be filtered")
		}
	}
}
