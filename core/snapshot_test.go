package core

import "testing"

func TestSnapshot_Validate(t *testing.T) {
	tests := []struct {
		name    string
		snap    *Snapshot
		wantErr bool
	}{
		{
			name:    "nil snapshot",
			snap:    nil,
			wantErr: true,
		},
		{
			name: "valid minimal snapshot",
			snap: &Snapshot{
				Users:  map[int64]*UserProfile{1: {UserID: 1}},
				Items:  []*MenuItem{{ID: 101, Name: "salad"}},
				Orders: []*Order{{OrderID: 1, UserID: 1, ItemID: 101}},
			},
			wantErr: false,
		},
		{
			name: "user row missing user_id",
			snap: &Snapshot{
				Users: map[int64]*UserProfile{1: {UserID: 0}},
			},
			wantErr: true,
		},
		{
			name: "user key mismatch",
			snap: &Snapshot{
				Users: map[int64]*UserProfile{1: {UserID: 2}},
			},
			wantErr: true,
		},
		{
			name: "item row missing item_id",
			snap: &Snapshot{
				Items: []*MenuItem{{ID: 0, Name: "ghost"}},
			},
			wantErr: true,
		},
		{
			name: "order row missing item_id",
			snap: &Snapshot{
				Orders: []*Order{{OrderID: 1, UserID: 1, ItemID: 0}},
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.snap.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !IsInvalidInput(err) {
				t.Fatalf("Validate() error should be INVALID_INPUT, got %v", err)
			}
		})
	}
}

func TestSnapshot_Lookups(t *testing.T) {
	snap := &Snapshot{
		Users: map[int64]*UserProfile{7: {UserID: 7, Diet: "vegan"}},
		Items: []*MenuItem{{ID: 101}, {ID: 102}},
	}

	if u, ok := snap.UserByID(7); !ok || u.Diet != "vegan" {
		t.Fatalf("UserByID(7) = %+v ok=%v", u, ok)
	}
	if _, ok := snap.UserByID(8); ok {
		t.Fatal("UserByID(8) should miss")
	}
	if it, ok := snap.ItemByID(102); !ok || it.ID != 102 {
		t.Fatalf("ItemByID(102) = %+v ok=%v", it, ok)
	}
	if _, ok := snap.ItemByID(999); ok {
		t.Fatal("ItemByID(999) should miss")
	}
}
