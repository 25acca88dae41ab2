package query

import (
	"reflect"
	"testing"
)

func TestWhereBaseOnly(t *testing.T) {
	w := NewWhere("1=1")
	if got := w.Clause(); got != "WHERE 1=1" {
		t.Errorf("Clause() = %q", got)
	}
	if len(w.Args()) != 0 {
		t.Errorf("Args() = %v, want empty", w.Args())
	}
}

func TestWhereComposition(t *testing.T) {
	w := NewWhere("t.type = ?", "add_coins").
		AndSearch("ra", "u.name", "u.mobile").
		AndDateRange("t.datetime", "2024-01-01", "2024-01-31").
		And("u.status = ?", 1)

	wantClause := "WHERE t.type = ? AND (u.name LIKE ? OR u.mobile LIKE ?)" +
		" AND DATE(t.datetime) >= ? AND DATE(t.datetime) <= ? AND u.status = ?"
	if got := w.Clause(); got != wantClause {
		t.Errorf("Clause() = %q, want %q", got, wantClause)
	}

	wantArgs := []interface{}{"add_coins", "%ra%", "%ra%", "2024-01-01", "2024-01-31", 1}
	if !reflect.DeepEqual(w.Args(), wantArgs) {
		t.Errorf("Args() = %v, want %v", w.Args(), wantArgs)
	}
}

func TestWhereEmptyFiltersAddNothing(t *testing.T) {
	w := NewWhere("1=1").
		AndSearch("", "u.name").
		AndDateRange("t.datetime", "", "")

	if got := w.Clause(); got != "WHERE 1=1" {
		t.Errorf("Clause() = %q, want base only", got)
	}
	if len(w.Args()) != 0 {
		t.Errorf("Args() = %v, want empty", w.Args())
	}
}

// The count query and the page query of an endpoint are built from one Where,
// so both must see identical args even after the page query appends its own
// LIMIT/OFFSET values.
func TestWhereArgsAreCopied(t *testing.T) {
	w := NewWhere("1=1").And("u.gender = ?", "female")

	countArgs := w.Args()
	pageArgs := append(w.Args(), 20, 0)

	if !reflect.DeepEqual(countArgs, []interface{}{"female"}) {
		t.Errorf("count args mutated: %v", countArgs)
	}
	if !reflect.DeepEqual(pageArgs[:1], []interface{}{"female"}) {
		t.Errorf("page args diverged from count args: %v", pageArgs)
	}
}
