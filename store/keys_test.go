package store

import "testing"

func TestHotItemMemberRoundTrip(t *testing.T) {
	for _, id := range []int64{1, 101, 9223372036854775807} {
		got, err := ParseHotItemMember(HotItemMember(id))
		if err != nil || got != id {
			t.Errorf("round trip of %d = %d, %v", id, got, err)
		}
	}
	if _, err := ParseHotItemMember("not-an-id"); err == nil {
		t.Error("malformed member must not parse")
	}
}
