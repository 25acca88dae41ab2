package query

import (
	"strings"
	"testing"
)

var creatorSort = NewSortMap("total_income_effective", map[string]string{
	"total_income_effective": "total_income_effective",
	"total_transactions":     "total_transactions",
	"name":                   "u.name",
	"id":                     "u.id",
})

func TestSortMapKnownKey(t *testing.T) {
	if got := creatorSort.Key("name"); got != "name" {
		t.Errorf("Key(name) = %q", got)
	}
	if got := creatorSort.Expr("name"); got != "u.name" {
		t.Errorf("Expr(name) = %q", got)
	}
}

func TestSortMapUnknownKeyFallsBack(t *testing.T) {
	tests := []string{
		"",
		"password",
		"total_income_effective; DELETE FROM users",
		"u.id DESC, (SELECT 1)",
	}
	for _, in := range tests {
		t.Run(in, func(t *testing.T) {
			if got := creatorSort.Key(in); got != "total_income_effective" {
				t.Errorf("Key(%q) = %q, want default", in, got)
			}
			expr := creatorSort.Expr(in)
			if expr != "total_income_effective" {
				t.Errorf("Expr(%q) = %q, want default expression", in, expr)
			}
			// The raw request value must never surface in the expression.
			if in != "" && expr != in && strings.Contains(expr, in) {
				t.Errorf("raw input leaked into ORDER BY expression: %q", expr)
			}
		})
	}
}
