package services

import (
	"strings"
	"testing"

	"himadash/internal/models"
	"himadash/internal/query"
)

func TestMergeRegVsPayers(t *testing.T) {
	tests := []struct {
		name          string
		registrations []PeriodCount
		payers        []PeriodCount
		want          []models.RegVsPayerRow
	}{
		{
			name: "matching days",
			registrations: []PeriodCount{
				{Period: "2026-01-01", Count: 10},
				{Period: "2026-01-02", Count: 20},
			},
			payers: []PeriodCount{
				{Period: "2026-01-01", Count: 3},
				{Period: "2026-01-02", Count: 5},
			},
			want: []models.RegVsPayerRow{
				{DatePeriod: "2026-01-01", Registrations: 10, Payers: 3},
				{DatePeriod: "2026-01-02", Registrations: 20, Payers: 5},
			},
		},
		{
			name: "day with registrations only",
			registrations: []PeriodCount{
				{Period: "2026-01-03", Count: 7},
			},
			payers: nil,
			want: []models.RegVsPayerRow{
				{DatePeriod: "2026-01-03", Registrations: 7, Payers: 0},
			},
		},
		{
			name:          "day with payers only",
			registrations: nil,
			payers: []PeriodCount{
				{Period: "2026-01-04", Count: 2},
			},
			want: []models.RegVsPayerRow{
				{DatePeriod: "2026-01-04", Registrations: 0, Payers: 2},
			},
		},
		{
			name: "output sorted by date regardless of input order",
			registrations: []PeriodCount{
				{Period: "2026-01-05", Count: 1},
				{Period: "2026-01-03", Count: 2},
			},
			payers: []PeriodCount{
				{Period: "2026-01-04", Count: 9},
			},
			want: []models.RegVsPayerRow{
				{DatePeriod: "2026-01-03", Registrations: 2, Payers: 0},
				{DatePeriod: "2026-01-04", Registrations: 0, Payers: 9},
				{DatePeriod: "2026-01-05", Registrations: 1, Payers: 0},
			},
		},
		{
			name: "empty inputs",
			want: []models.RegVsPayerRow{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MergeRegVsPayers(tt.registrations, tt.payers)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d rows, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("row %d: got %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

// The reg-vs-payers chart counts a payer toward a day only under the
// same-day cohort rule: the payment date must equal the registration date.
func TestSameDayPayersQueryCarriesCohort(t *testing.T) {
	whereTx := query.NewWhere("t.type = 'add_coins'").
		And("DATE(t.datetime) >= ?", "2026-01-01")
	q := sameDayPayersQuery(whereTx.Clause())

	if !strings.Contains(q, query.SameDayCohort("u", "t")) {
		t.Error("payer counts must be restricted to the same-day cohort")
	}
	if !strings.Contains(q, "COUNT(DISTINCT t.user_id)") {
		t.Error("payers must be counted as distinct users")
	}
	if !strings.Contains(q, "GROUP BY DATE(t.datetime)") {
		t.Error("payers must be grouped by payment date")
	}
}

func TestFillHours(t *testing.T) {
	sparse := []models.RepeatPayerPoint{
		{Hour: 9, TotalPayments: 5, RepeatPayments: 2, RepeatPayers: 1},
		{Hour: 23, TotalPayments: 1},
	}

	filled := FillHours(sparse)
	if len(filled) != 24 {
		t.Fatalf("got %d buckets, want 24", len(filled))
	}
	for h, p := range filled {
		if p.Hour != h {
			t.Errorf("bucket %d carries hour %d", h, p.Hour)
		}
	}
	if filled[9].TotalPayments != 5 || filled[9].RepeatPayments != 2 || filled[9].RepeatPayers != 1 {
		t.Errorf("hour 9 not preserved: %+v", filled[9])
	}
	if filled[23].TotalPayments != 1 {
		t.Errorf("hour 23 not preserved: %+v", filled[23])
	}
	if filled[0].TotalPayments != 0 || filled[12].TotalPayments != 0 {
		t.Error("empty hours should be zero-filled")
	}
}

func TestFillHoursIgnoresOutOfRange(t *testing.T) {
	filled := FillHours([]models.RepeatPayerPoint{{Hour: 24, TotalPayments: 3}, {Hour: -1, TotalPayments: 4}})
	if len(filled) != 24 {
		t.Fatalf("got %d buckets, want 24", len(filled))
	}
	for _, p := range filled {
		if p.TotalPayments != 0 {
			t.Errorf("out-of-range hour leaked into bucket %d", p.Hour)
		}
	}
}

func TestSummarizeRetention(t *testing.T) {
	amount := func(v float64) *float64 { return &v }
	coins := func(v int64) *int64 { return &v }

	users := []models.RetentionUser{
		{TotalAmountSpent: amount(100), TotalCoinsPurchased: coins(50)},
		{TotalAmountSpent: amount(300), TotalCoinsPurchased: coins(150)},
		{TotalAmountSpent: nil, TotalCoinsPurchased: nil},
	}

	summary := SummarizeRetention(users, 42)
	if summary.TotalUsers != 42 {
		t.Errorf("TotalUsers = %d, want 42", summary.TotalUsers)
	}
	if summary.TotalRevenue != 400 {
		t.Errorf("TotalRevenue = %v, want 400", summary.TotalRevenue)
	}
	if summary.TotalCoinsPurchased != 200 {
		t.Errorf("TotalCoinsPurchased = %d, want 200", summary.TotalCoinsPurchased)
	}
	if want := 400.0 / 3; summary.AvgUserValue != want {
		t.Errorf("AvgUserValue = %v, want %v", summary.AvgUserValue, want)
	}
}

func TestSummarizeRetentionEmptyPage(t *testing.T) {
	summary := SummarizeRetention(nil, 0)
	if summary.AvgUserValue != 0 {
		t.Errorf("AvgUserValue = %v, want 0 for empty page", summary.AvgUserValue)
	}
}
