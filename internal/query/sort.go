// ===============================
// internal/query/sort.go - Per-report sortable column allow-lists
// ===============================

package query

// SortMap is the declarative descriptor of a report's sortable fields: the
// request key maps to the SQL expression (usually a projection alias) placed
// in ORDER BY. Keys outside the map silently fall back to the default, so a
// raw request value never reaches clause position.
type SortMap struct {
	def     string
	columns map[string]string
}

// NewSortMap builds a descriptor. def must be a key of columns.
func NewSortMap(def string, columns map[string]string) SortMap {
	return SortMap{def: def, columns: columns}
}

// Key returns the accepted request key, falling back to the default. This is
// what the sorting envelope echoes back to the caller.
func (m SortMap) Key(requested string) string {
	if _, ok := m.columns[requested]; ok {
		return requested
	}
	return m.def
}

// Expr returns the SQL expression for the accepted key.
func (m SortMap) Expr(requested string) string {
	return m.columns[m.Key(requested)]
}
