// ===============================
// internal/query/pagination.go - Pagination envelope
// ===============================

package query

// Pagination is the metadata block returned alongside every page of rows.
type Pagination struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

// NewPagination computes the envelope for a page. totalPages is
// ceil(total/limit); hasNext/hasPrev derive from the requested page, which
// may lie past the last page (the rows are then simply empty).
func NewPagination(lp ListParams, total int) Pagination {
	totalPages := 0
	if lp.Limit > 0 {
		totalPages = (total + lp.Limit - 1) / lp.Limit
	}
	return Pagination{
		Page:       lp.Page,
		Limit:      lp.Limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    lp.Page < totalPages,
		HasPrev:    lp.Page > 1,
	}
}

// Sorting echoes the accepted sort key and order back to the caller.
type Sorting struct {
	SortBy    string `json:"sortBy"`
	SortOrder string `json:"sortOrder"`
}
