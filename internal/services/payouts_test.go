package services

import (
	"strings"
	"testing"

	"himadash/internal/models"
	"himadash/internal/query"
)

// A date window on the one-time report filters which single withdrawals are
// displayed; who qualifies as a one-timer is always decided over the full
// history, so the membership table must stay unfiltered while the outer
// WHERE carries the window.
func TestOneTimePayoutBaseQueryLifetimeScope(t *testing.T) {
	where := query.NewWhere("w.status = 1").
		AndDateRange("w.created_at", "2026-01-01", "2026-01-31")
	q := oneTimePayoutBaseQuery(where.Clause())

	membership := query.LifetimePaidOnce()
	membershipAt := strings.Index(q, membership)
	if membershipAt < 0 {
		t.Fatal("one-timer membership table missing from query")
	}
	if strings.Contains(q[membershipAt:membershipAt+len(membership)], "?") {
		t.Error("membership table must carry no filter placeholders")
	}

	for _, pred := range []string{"DATE(w.created_at) >= ?", "DATE(w.created_at) <= ?"} {
		if strings.Count(q, pred) != 1 {
			t.Fatalf("window predicate %q must appear exactly once", pred)
		}
		if strings.Index(q, pred) < membershipAt+len(membership) {
			t.Errorf("window predicate %q must bind the outer query, not the membership table", pred)
		}
	}
}

func TestFirstTimeCountQueryLifetimeScope(t *testing.T) {
	where := payoutWhere(PayoutFilters{DateFrom: "2026-01-01", DateTo: "2026-01-31", Status: "paid"})
	q := firstTimeCountQuery(where.Clause())

	membership := query.LifetimePaidOnce()
	membershipAt := strings.Index(q, membership)
	if membershipAt < 0 {
		t.Fatal("one-timer membership table missing from summary query")
	}
	if strings.Contains(q[membershipAt:membershipAt+len(membership)], "?") {
		t.Error("membership table must carry no filter placeholders")
	}
	if at := strings.Index(q, "DATE(w.created_at) >= ?"); at >= 0 && at < membershipAt+len(membership) {
		t.Error("window predicate must bind the outer query, not the membership table")
	}
}

func TestParsePayoutStatus(t *testing.T) {
	tests := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{"", 0, false},
		{"0", models.WithdrawalUnpaid, true},
		{"1", models.WithdrawalPaid, true},
		{"2", models.WithdrawalCancelled, true},
		{"3", 0, false},
		{"-1", 0, false},
		{"paid", models.WithdrawalPaid, true},
		{"Paid", models.WithdrawalPaid, true},
		{"PAID", models.WithdrawalPaid, true},
		{"unpaid", models.WithdrawalUnpaid, true},
		{"pending", models.WithdrawalUnpaid, true},
		{"cancelled", models.WithdrawalCancelled, true},
		{"canceled", models.WithdrawalCancelled, true},
		{" paid ", models.WithdrawalPaid, true},
		{"garbage", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParsePayoutStatus(tt.in)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ParsePayoutStatus(%q) = (%d, %v), want (%d, %v)",
					tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
