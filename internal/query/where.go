// ===============================
// internal/query/where.go - Composable filter predicates
// ===============================

package query

import "strings"

// Where accumulates optional filter clauses joined with AND. The same Where
// must back both the COUNT query and the page query of an endpoint so that
// the reported total and the returned rows always agree on filter semantics.
type Where struct {
	conds []string
	args  []interface{}
}

// NewWhere starts a predicate from a base condition ("1=1" when there is no
// natural type guard).
func NewWhere(base string, args ...interface{}) *Where {
	return &Where{conds: []string{base}, args: args}
}

// And appends a condition with its bound values. Conditions are templates
// with ? placeholders; user input only ever travels through args.
func (w *Where) And(cond string, args ...interface{}) *Where {
	w.conds = append(w.conds, cond)
	w.args = append(w.args, args...)
	return w
}

// AndSearch adds a substring match over the given columns when term is
// non-empty.
func (w *Where) AndSearch(term string, cols ...string) *Where {
	if term == "" || len(cols) == 0 {
		return w
	}
	parts := make([]string, len(cols))
	for i, col := range cols {
		parts[i] = col + " LIKE ?"
		w.args = append(w.args, "%"+term+"%")
	}
	w.conds = append(w.conds, "("+strings.Join(parts, " OR ")+")")
	return w
}

// AndDateRange adds inclusive calendar-date bounds against DATE(col) for
// whichever of from/to are set.
func (w *Where) AndDateRange(col, from, to string) *Where {
	if from != "" {
		w.And("DATE("+col+") >= ?", from)
	}
	if to != "" {
		w.And("DATE("+col+") <= ?", to)
	}
	return w
}

// Clause renders the full WHERE clause.
func (w *Where) Clause() string {
	return "WHERE " + strings.Join(w.conds, " AND ")
}

// Args returns the bound values in clause order. Callers append their own
// trailing LIMIT/OFFSET or HAVING values to a copy.
func (w *Where) Args() []interface{} {
	out := make([]interface{}, len(w.args))
	copy(out, w.args)
	return out
}
