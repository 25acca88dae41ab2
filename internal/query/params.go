// ===============================
// internal/query/params.go - Lenient request parameter parsing
// ===============================

package query

import (
	"strconv"
	"strings"
)

// ListParams is the normalized pagination window of a list request.
type ListParams struct {
	Page   int
	Limit  int
	Offset int
}

// ParseList normalizes page/limit strings. Invalid or out-of-range values
// clamp to safe defaults instead of failing: this is an internal tool and
// bad input is never an error the caller sees.
func ParseList(page, limit string, defaultLimit, maxLimit int) ListParams {
	p, err := strconv.Atoi(page)
	if err != nil || p < 1 {
		p = 1
	}

	l, err := strconv.Atoi(limit)
	if err != nil || l < 1 {
		l = defaultLimit
	}
	if l > maxLimit {
		l = maxLimit
	}

	return ListParams{Page: p, Limit: l, Offset: (p - 1) * l}
}

// ParseOrder normalizes a sort order, case-insensitively. Anything that is
// not ASC becomes DESC.
func ParseOrder(order string) string {
	if strings.EqualFold(order, "ASC") {
		return "ASC"
	}
	return "DESC"
}

// ParseInt parses a bounded integer with a default, clamping below min.
func ParseInt(s string, def, min int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		n = def
	}
	if n < min {
		n = min
	}
	return n
}
