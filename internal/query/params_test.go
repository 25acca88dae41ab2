package query

import "testing"

func TestParseList(t *testing.T) {
	tests := []struct {
		name       string
		page       string
		limit      string
		wantPage   int
		wantLimit  int
		wantOffset int
	}{
		{"Defaults", "", "", 1, 20, 0},
		{"Garbage", "abc", "xyz", 1, 20, 0},
		{"Normal", "3", "50", 3, 50, 100},
		{"NegativePage", "-2", "10", 1, 10, 0},
		{"ZeroLimit", "1", "0", 1, 20, 0},
		{"LimitAboveCap", "1", "100000", 1, 200, 0},
		{"Float", "1.5", "20", 1, 20, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseList(tt.page, tt.limit, 20, 200)
			if got.Page != tt.wantPage || got.Limit != tt.wantLimit || got.Offset != tt.wantOffset {
				t.Errorf("ParseList(%q, %q) = %+v, want page=%d limit=%d offset=%d",
					tt.page, tt.limit, got, tt.wantPage, tt.wantLimit, tt.wantOffset)
			}
		})
	}
}

func TestParseOrder(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"ASC", "ASC"},
		{"asc", "ASC"},
		{"Asc", "ASC"},
		{"DESC", "DESC"},
		{"desc", "DESC"},
		{"", "DESC"},
		{"sideways", "DESC"},
		{"ASC; DROP TABLE users", "DESC"},
	}

	for _, tt := range tests {
		if got := ParseOrder(tt.in); got != tt.want {
			t.Errorf("ParseOrder(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseInt(t *testing.T) {
	if got := ParseInt("15", 7, 1); got != 15 {
		t.Errorf("ParseInt valid = %d, want 15", got)
	}
	if got := ParseInt("", 7, 1); got != 7 {
		t.Errorf("ParseInt empty = %d, want 7", got)
	}
	if got := ParseInt("0", 7, 1); got != 1 {
		t.Errorf("ParseInt below min = %d, want 1", got)
	}
}
