package utils

import "testing"

func TestMergeLabel(t *testing.T) {
	tests := []struct {
		name     string
		existing Label
		incoming Label
		want     Label
	}{
		{
			name:     "empty existing takes incoming",
			existing: Label{},
			incoming: Label{Value: "menu", Source: "recall"},
			want:     Label{Value: "menu", Source: "recall"},
		},
		{
			name:     "empty incoming keeps existing",
			existing: Label{Value: "menu", Source: "recall"},
			incoming: Label{},
			want:     Label{Value: "menu", Source: "recall"},
		},
		{
			name:     "both present accumulate",
			existing: Label{Value: "menu", Source: "recall"},
			incoming: Label{Value: "hot", Source: "recall"},
			want:     Label{Value: "menu|hot", Source: "recall,recall"},
		},
		{
			name:     "missing source falls back",
			existing: Label{Value: "a"},
			incoming: Label{Value: "b", Source: "rank"},
			want:     Label{Value: "a|b", Source: "rank"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MergeLabel(tt.existing, tt.incoming); got != tt.want {
				t.Errorf("MergeLabel() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
