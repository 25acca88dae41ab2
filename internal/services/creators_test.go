package services

import (
	"strings"
	"testing"
	"time"

	"himadash/internal/models"
	"himadash/internal/query"
)

func TestWeekRange(t *testing.T) {
	tests := []struct {
		name     string
		now      string
		selector string
		wantFrom string
		wantTo   string
	}{
		{"wednesday current", "2026-08-26", "current", "2026-08-24", "2026-08-30"},
		{"wednesday last", "2026-08-26", "last", "2026-08-17", "2026-08-23"},
		{"monday current", "2026-08-24", "current", "2026-08-24", "2026-08-30"},
		{"sunday belongs to the ending week", "2026-08-30", "current", "2026-08-24", "2026-08-30"},
		{"sunday last", "2026-08-30", "last", "2026-08-17", "2026-08-23"},
		{"year boundary", "2026-01-01", "current", "2025-12-29", "2026-01-04"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now, err := time.Parse("2006-01-02", tt.now)
			if err != nil {
				t.Fatal(err)
			}
			from, to := WeekRange(now, tt.selector)
			if from != tt.wantFrom || to != tt.wantTo {
				t.Errorf("WeekRange(%s, %s) = (%s, %s), want (%s, %s)",
					tt.now, tt.selector, from, to, tt.wantFrom, tt.wantTo)
			}
		})
	}
}

// A date window on the FTU report restricts which first calls are counted,
// never which call of a (caller, creator) pair was first: the first-call
// derived table must stay unfiltered while the outer WHERE carries the
// window.
func TestFTUBaseQueryWindowScope(t *testing.T) {
	where := query.NewWhere(query.CallCompleted("fc")).
		AndDateRange("fc.datetime", "2026-01-01", "2026-01-31")
	q := ftuBaseQuery(where.Clause())

	firstCall := query.FirstCallPerPair()
	firstCallAt := strings.Index(q, firstCall)
	if firstCallAt < 0 {
		t.Fatal("first-call derived table missing from FTU query")
	}
	inner := q[firstCallAt : firstCallAt+len(firstCall)]
	if strings.Contains(inner, "?") {
		t.Error("first-call derived table must carry no filter placeholders")
	}

	for _, pred := range []string{"DATE(fc.datetime) >= ?", "DATE(fc.datetime) <= ?"} {
		if strings.Count(q, pred) != 1 {
			t.Fatalf("window predicate %q must appear exactly once", pred)
		}
		if strings.Index(q, pred) < firstCallAt+len(firstCall) {
			t.Errorf("window predicate %q must bind the outer query, not the first-call table", pred)
		}
	}
}

func TestFTUBaseQueryCountsOnlyCompletedCalls(t *testing.T) {
	where := query.NewWhere(query.CallCompleted("fc"))
	q := ftuBaseQuery(where.Clause())

	if !strings.Contains(q, "WHERE "+query.CallCompleted("fc")) {
		t.Error("outer rows must require a recorded call end")
	}
}

func TestNormalizeInactiveDays(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{3, 3},
		{7, 7},
		{15, 15},
		{0, 7},
		{1, 7},
		{30, 7},
		{-5, 7},
	}

	for _, tt := range tests {
		if got := NormalizeInactiveDays(tt.in); got != tt.want {
			t.Errorf("NormalizeInactiveDays(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestSummarizeIncome(t *testing.T) {
	creators := []models.CreatorIncome{
		{EffectiveIncome: 500, TotalTransactions: 10},
		{EffectiveIncome: 1500, TotalTransactions: 30},
	}

	summary := SummarizeIncome(creators, 7)
	if summary.TotalCreators != 7 {
		t.Errorf("TotalCreators = %d, want 7", summary.TotalCreators)
	}
	if summary.TotalIncome != 2000 {
		t.Errorf("TotalIncome = %v, want 2000", summary.TotalIncome)
	}
	if summary.TotalTransactions != 40 {
		t.Errorf("TotalTransactions = %d, want 40", summary.TotalTransactions)
	}
	if summary.AvgIncomePerCreator != 1000 {
		t.Errorf("AvgIncomePerCreator = %v, want 1000", summary.AvgIncomePerCreator)
	}
}

func TestSummarizeIncomeEmptyPage(t *testing.T) {
	summary := SummarizeIncome(nil, 0)
	if summary.AvgIncomePerCreator != 0 {
		t.Errorf("AvgIncomePerCreator = %v, want 0", summary.AvgIncomePerCreator)
	}
}
