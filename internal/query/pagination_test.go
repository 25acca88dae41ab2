package query

import "testing"

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name      string
		page      int
		limit     int
		total     int
		wantPages int
		wantNext  bool
		wantPrev  bool
	}{
		{"Empty", 1, 20, 0, 0, false, false},
		{"SinglePartialPage", 1, 20, 7, 1, false, false},
		{"ExactBoundary", 1, 20, 40, 2, true, false},
		{"MiddlePage", 2, 20, 55, 3, true, true},
		{"LastPage", 3, 20, 55, 3, false, true},
		{"PastLastPage", 9, 20, 55, 3, false, true},
		{"CeilRounding", 1, 20, 41, 3, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPagination(ListParams{Page: tt.page, Limit: tt.limit}, tt.total)
			if p.TotalPages != tt.wantPages {
				t.Errorf("TotalPages = %d, want %d", p.TotalPages, tt.wantPages)
			}
			if p.HasNext != tt.wantNext {
				t.Errorf("HasNext = %v, want %v", p.HasNext, tt.wantNext)
			}
			if p.HasPrev != tt.wantPrev {
				t.Errorf("HasPrev = %v, want %v", p.HasPrev, tt.wantPrev)
			}
			if p.Total != tt.total || p.Page != tt.page || p.Limit != tt.limit {
				t.Errorf("envelope echoed %+v", p)
			}
		})
	}
}
