// ===============================
// internal/services/retention.go - Payer retention reports
// ===============================

package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"himadash/internal/models"
	"himadash/internal/query"

	"github.com/jmoiron/sqlx"
)

type RetentionService struct {
	db *sqlx.DB
}

func NewRetentionService(db *sqlx.DB) *RetentionService {
	return &RetentionService{db: db}
}

// RetentionSort lists the sortable aggregates of the user-retention report.
var RetentionSort = query.NewSortMap("total_amount_spent", map[string]string{
	"total_amount_spent":    "total_amount_spent",
	"total_transactions":    "total_transactions",
	"total_coins_purchased": "total_coins_purchased",
	"avg_payment_amount":    "avg_payment_amount",
	"days_between_payments": "days_between_payments",
	"last_payment_date":     "last_payment_date",
	"first_payment_date":    "first_payment_date",
	"name":                  "u.name",
	"mobile":                "u.mobile",
	"id":                    "u.id",
})

// UserRetention returns paying users with their aggregated purchase history
// and, per page row, the ten most recent purchases.
func (s *RetentionService) UserRetention(ctx context.Context, lp query.ListParams, sortBy, sortOrder, search, dateFrom, dateTo string) ([]models.RetentionUser, int, error) {
	where := query.NewWhere("t.type = 'add_coins'").
		AndSearch(search, "u.name", "u.mobile").
		AndDateRange("t.datetime", dateFrom, dateTo)

	var total int
	countQuery := fmt.Sprintf(`
		SELECT COUNT(DISTINCT u.id)
		FROM users u
		INNER JOIN transactions t ON u.id = t.user_id
		%s`, where.Clause())
	if err := s.db.GetContext(ctx, &total, countQuery, where.Args()...); err != nil {
		return nil, 0, err
	}

	pageQuery := fmt.Sprintf(`
		SELECT
			u.id,
			u.name,
			u.mobile,
			u.gender,
			u.created_at AS user_created,
			u.last_seen,
			u.status,
			u.coins AS current_coins,
			u.total_coins,
			u.balance,
			COUNT(t.id) AS total_transactions,
			SUM(t.coins) AS total_coins_purchased,
			SUM(t.amount) AS total_amount_spent,
			MAX(t.datetime) AS last_payment_date,
			MIN(t.datetime) AS first_payment_date,
			DATEDIFF(MAX(t.datetime), MIN(t.datetime)) AS days_between_payments,
			AVG(t.amount) AS avg_payment_amount,
			COUNT(CASE WHEN t.payment_type = 'Credit' THEN 1 END) AS credit_payments,
			COUNT(CASE WHEN t.payment_type = 'Debit' THEN 1 END) AS debit_payments
		FROM users u
		INNER JOIN transactions t ON u.id = t.user_id
		%s
		GROUP BY u.id, u.name, u.mobile, u.gender, u.created_at, u.last_seen, u.status, u.coins, u.total_coins, u.balance
		ORDER BY %s %s
		LIMIT ? OFFSET ?`,
		where.Clause(), RetentionSort.Expr(sortBy), query.ParseOrder(sortOrder))

	users := []models.RetentionUser{}
	args := append(where.Args(), lp.Limit, lp.Offset)
	if err := s.db.SelectContext(ctx, &users, pageQuery, args...); err != nil {
		return nil, 0, err
	}

	for i := range users {
		recent := []models.RecentTransaction{}
		err := s.db.SelectContext(ctx, &recent, `
			SELECT id, type, datetime, coins, amount, payment_type, reason, method_type
			FROM transactions
			WHERE user_id = ? AND type = 'add_coins'
			ORDER BY datetime DESC
			LIMIT 10`, users[i].ID)
		if err != nil {
			return nil, 0, err
		}
		users[i].RecentTransactions = recent
	}

	return users, total, nil
}

// RetentionSummary reduces a page of retention rows to the header figures.
type RetentionSummary struct {
	TotalUsers          int     `json:"totalUsers"`
	TotalRevenue        float64 `json:"totalRevenue"`
	TotalCoinsPurchased int64   `json:"totalCoinsPurchased"`
	AvgUserValue        float64 `json:"avgUserValue"`
}

// SummarizeRetention folds page rows; the page is what the original reduced
// over, so the summary is page-scoped, not filter-scoped.
func SummarizeRetention(users []models.RetentionUser, total int) RetentionSummary {
	summary := RetentionSummary{TotalUsers: total}
	for _, u := range users {
		if u.TotalAmountSpent != nil {
			summary.TotalRevenue += *u.TotalAmountSpent
		}
		if u.TotalCoinsPurchased != nil {
			summary.TotalCoinsPurchased += *u.TotalCoinsPurchased
		}
	}
	if len(users) > 0 {
		summary.AvgUserValue = summary.TotalRevenue / float64(len(users))
	}
	return summary
}

// TrendFilters bound the retention-trends report. RegFrom alone means an
// exact registration date; with RegTo it becomes a range.
type TrendFilters struct {
	DateFrom string
	DateTo   string
	RegFrom  string
	RegTo    string
	GroupBy  string
}

// TrendsResult bundles the three bucketed series of the trends report.
type TrendsResult struct {
	Trends          []models.TrendRow
	Retention       []models.RetentionRow
	UserBreakdown   []models.UserBreakdownRow
	RegisteredCount int
}

// RetentionTrends buckets purchase activity by day/week/month and derives
// returning-payer and new-vs-existing breakdowns over the same predicate.
func (s *RetentionService) RetentionTrends(ctx context.Context, f TrendFilters) (*TrendsResult, error) {
	where := query.NewWhere("t.type = 'add_coins'").
		AndDateRange("t.datetime", f.DateFrom, f.DateTo)

	userJoin := ""
	if f.RegFrom != "" || f.RegTo != "" {
		userJoin = "INNER JOIN users u ON t.user_id = u.id"
		switch {
		case f.RegFrom != "" && f.RegTo != "":
			where.And("DATE(u.created_at) >= ?", f.RegFrom)
			where.And("DATE(u.created_at) <= ?", f.RegTo)
		case f.RegFrom != "":
			// Exact registration date when only regFrom is given
			where.And("DATE(u.created_at) = ?", f.RegFrom)
		default:
			where.And("DATE(u.created_at) <= ?", f.RegTo)
		}
	}

	bucket := query.Bucket(f.GroupBy, "t.datetime")
	result := &TrendsResult{}

	trendsQuery := fmt.Sprintf(`
		SELECT
			%[1]s AS date_period,
			COUNT(DISTINCT t.user_id) AS unique_users,
			COUNT(t.id) AS total_transactions,
			SUM(t.amount) AS total_revenue,
			SUM(t.coins) AS total_coins_sold,
			AVG(t.amount) AS avg_transaction_value
		FROM transactions t
		%[2]s
		%[3]s
		GROUP BY %[1]s
		ORDER BY date_period ASC`, bucket, userJoin, where.Clause())
	if err := s.db.SelectContext(ctx, &result.Trends, trendsQuery, where.Args()...); err != nil {
		return nil, err
	}

	retentionQuery := fmt.Sprintf(`
		SELECT
			%[1]s AS date_period,
			COUNT(DISTINCT t.user_id) AS total_users,
			COUNT(DISTINCT CASE WHEN user_transaction_count > 1 THEN t.user_id END) AS returning_users,
			ROUND(
				(COUNT(DISTINCT CASE WHEN user_transaction_count > 1 THEN t.user_id END) /
				 NULLIF(COUNT(DISTINCT t.user_id), 0)) * 100, 2
			) AS retention_rate
		FROM (
			SELECT
				t.*,
				COUNT(*) OVER (PARTITION BY t.user_id) AS user_transaction_count
			FROM transactions t
			%[2]s
			%[3]s
		) t
		GROUP BY %[1]s
		ORDER BY date_period ASC`, bucket, userJoin, where.Clause())
	if err := s.db.SelectContext(ctx, &result.Retention, retentionQuery, where.Args()...); err != nil {
		return nil, err
	}

	// The breakdown always joins users; reg-filter predicates bind against
	// the same alias either way.
	breakdownQuery := fmt.Sprintf(`
		SELECT
			%[1]s AS date_period,
			COUNT(DISTINCT CASE WHEN u.created_at >= t.datetime THEN t.user_id END) AS new_users,
			COUNT(DISTINCT CASE WHEN u.created_at < t.datetime THEN t.user_id END) AS existing_users
		FROM transactions t
		INNER JOIN users u ON t.user_id = u.id
		%[2]s
		GROUP BY %[1]s
		ORDER BY date_period ASC`, bucket, where.Clause())
	if err := s.db.SelectContext(ctx, &result.UserBreakdown, breakdownQuery, where.Args()...); err != nil {
		return nil, err
	}

	count, err := s.registeredCount(ctx, f.RegFrom, f.RegTo)
	if err != nil {
		return nil, err
	}
	result.RegisteredCount = count

	return result, nil
}

func (s *RetentionService) registeredCount(ctx context.Context, regFrom, regTo string) (int, error) {
	var count int
	switch {
	case regFrom != "" && regTo != "":
		err := s.db.GetContext(ctx, &count,
			`SELECT COUNT(*) FROM users WHERE DATE(created_at) >= ? AND DATE(created_at) <= ?`, regFrom, regTo)
		return count, err
	case regFrom != "":
		err := s.db.GetContext(ctx, &count,
			`SELECT COUNT(*) FROM users WHERE DATE(created_at) = ?`, regFrom)
		return count, err
	case regTo != "":
		err := s.db.GetContext(ctx, &count,
			`SELECT COUNT(*) FROM users WHERE DATE(created_at) <= ?`, regTo)
		return count, err
	}
	return 0, nil
}

// RegistrationsVsPayers pairs each day's registrations with its same-day
// payer cohort. Without dateFrom the window defaults to the last 30 days.
func (s *RetentionService) RegistrationsVsPayers(ctx context.Context, dateFrom, dateTo string) ([]models.RegVsPayerRow, error) {
	whereUsers := query.NewWhere("1=1")
	whereTx := query.NewWhere("t.type = 'add_coins'")

	if dateFrom != "" {
		whereUsers.And("DATE(u.created_at) >= ?", dateFrom)
		whereTx.And("DATE(t.datetime) >= ?", dateFrom)
	} else {
		whereUsers.And("DATE(u.created_at) >= DATE_SUB(CURDATE(), INTERVAL 30 DAY)")
		whereTx.And("DATE(t.datetime) >= DATE_SUB(CURDATE(), INTERVAL 30 DAY)")
	}
	if dateTo != "" {
		whereUsers.And("DATE(u.created_at) <= ?", dateTo)
		whereTx.And("DATE(t.datetime) <= ?", dateTo)
	}

	type periodCount struct {
		DatePeriod models.Period `db:"date_period"`
		Count      int           `db:"cnt"`
	}

	registrations := []periodCount{}
	regQuery := fmt.Sprintf(`
		SELECT DATE(u.created_at) AS date_period, COUNT(*) AS cnt
		FROM users u
		%s
		GROUP BY DATE(u.created_at)
		ORDER BY date_period ASC`, whereUsers.Clause())
	if err := s.db.SelectContext(ctx, &registrations, regQuery, whereUsers.Args()...); err != nil {
		return nil, err
	}

	payers := []periodCount{}
	if err := s.db.SelectContext(ctx, &payers, sameDayPayersQuery(whereTx.Clause()), whereTx.Args()...); err != nil {
		return nil, err
	}

	regPairs := make([]PeriodCount, len(registrations))
	for i, r := range registrations {
		regPairs[i] = PeriodCount{Period: string(r.DatePeriod), Count: r.Count}
	}
	payerPairs := make([]PeriodCount, len(payers))
	for i, p := range payers {
		payerPairs[i] = PeriodCount{Period: string(p.DatePeriod), Count: p.Count}
	}

	return MergeRegVsPayers(regPairs, payerPairs), nil
}

// sameDayPayersQuery counts distinct payers per day under the same-day
// cohort rule: a payer lands on a date only when it matches their
// registration date.
func sameDayPayersQuery(whereClause string) string {
	return fmt.Sprintf(`
		SELECT DATE(t.datetime) AS date_period, COUNT(DISTINCT t.user_id) AS cnt
		FROM transactions t
		INNER JOIN users u ON u.id = t.user_id
		%s
		AND %s
		GROUP BY DATE(t.datetime)
		ORDER BY date_period ASC`, whereClause, query.SameDayCohort("u", "t"))
}

// PeriodCount is a (date, count) pair feeding the reg-vs-payers merge.
type PeriodCount struct {
	Period string
	Count  int
}

// MergeRegVsPayers zips registration and payer counts by date, keeping days
// present in either series and sorting ascending.
func MergeRegVsPayers(registrations, payers []PeriodCount) []models.RegVsPayerRow {
	byDate := map[string]*models.RegVsPayerRow{}
	for _, r := range registrations {
		row := byDate[r.Period]
		if row == nil {
			row = &models.RegVsPayerRow{DatePeriod: r.Period}
			byDate[r.Period] = row
		}
		row.Registrations = r.Count
	}
	for _, p := range payers {
		row := byDate[p.Period]
		if row == nil {
			row = &models.RegVsPayerRow{DatePeriod: p.Period}
			byDate[p.Period] = row
		}
		row.Payers = p.Count
	}

	rows := make([]models.RegVsPayerRow, 0, len(byDate))
	for _, row := range byDate {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].DatePeriod < rows[j].DatePeriod })
	return rows
}

// RepeatPayersResult is the repeat-payers chart plus its day totals.
type RepeatPayersResult struct {
	Points         []models.RepeatPayerPoint
	TotalPayments  int
	RepeatPayments int
	RepeatPayers   int
}

// RepeatPayersByTime buckets one day's purchases by hour. A repeat payer is
// a user with more than one purchase that calendar day; their payments count
// into repeat_payments in every hour they paid.
func (s *RetentionService) RepeatPayersByTime(ctx context.Context, date string) (*RepeatPayersResult, error) {
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	points := []models.RepeatPayerPoint{}
	err := s.db.SelectContext(ctx, &points, `
		SELECT
			HOUR(t.datetime) AS hour,
			COUNT(*) AS total_payments,
			COUNT(CASE WHEN d.tx_count > 1 THEN 1 END) AS repeat_payments,
			COUNT(DISTINCT CASE WHEN d.tx_count > 1 THEN t.user_id END) AS repeat_payers
		FROM transactions t
		INNER JOIN (
			SELECT user_id, COUNT(*) AS tx_count
			FROM transactions
			WHERE type = 'add_coins' AND DATE(datetime) = ?
			GROUP BY user_id
		) d ON d.user_id = t.user_id
		WHERE t.type = 'add_coins' AND DATE(t.datetime) = ?
		GROUP BY HOUR(t.datetime)
		ORDER BY hour ASC`, date, date)
	if err != nil {
		return nil, err
	}

	// Distinct repeat payers for the whole day; summing the hourly column
	// would double-count users who paid across hours.
	var dayRepeatPayers int
	err = s.db.GetContext(ctx, &dayRepeatPayers, `
		SELECT COUNT(*)
		FROM (
			SELECT user_id
			FROM transactions
			WHERE type = 'add_coins' AND DATE(datetime) = ?
			GROUP BY user_id
			HAVING COUNT(*) > 1
		) r`, date)
	if err != nil {
		return nil, err
	}

	result := &RepeatPayersResult{
		Points:       FillHours(points),
		RepeatPayers: dayRepeatPayers,
	}
	for _, p := range points {
		result.TotalPayments += p.TotalPayments
		result.RepeatPayments += p.RepeatPayments
	}
	return result, nil
}

// FillHours expands sparse hourly rows into all 24 buckets so the chart
// x-axis is complete.
func FillHours(points []models.RepeatPayerPoint) []models.RepeatPayerPoint {
	filled := make([]models.RepeatPayerPoint, 24)
	for h := range filled {
		filled[h].Hour = h
	}
	for _, p := range points {
		if p.Hour >= 0 && p.Hour < 24 {
			filled[p.Hour] = p
		}
	}
	return filled
}

// RegistrationsPaidByLanguage slices one date window's registrations by
// language together with the same-day cohort that paid, and how much.
func (s *RetentionService) RegistrationsPaidByLanguage(ctx context.Context, dateFrom, dateTo string) ([]models.LanguageRegPaid, error) {
	where := query.NewWhere("1=1").AndDateRange("u.created_at", dateFrom, dateTo)

	rows := []models.LanguageRegPaid{}
	q := fmt.Sprintf(`
		SELECT
			COALESCE(u.language, 'Unknown') AS language,
			COUNT(DISTINCT u.id) AS registrations,
			COUNT(DISTINCT p.user_id) AS paid_users,
			COALESCE(SUM(p.amount), 0) AS total_paid
		FROM users u
		LEFT JOIN transactions p
			ON p.user_id = u.id
			AND p.type = 'add_coins'
			AND %s
		%s
		GROUP BY COALESCE(u.language, 'Unknown')
		ORDER BY registrations DESC`, query.SameDayCohort("u", "p"), where.Clause())
	err := s.db.SelectContext(ctx, &rows, q, where.Args()...)
	return rows, err
}

// CreatorTrendsResult bundles the creator-income retention series.
type CreatorTrendsResult struct {
	Trends          []models.CreatorTrendRow
	Retention       []models.CreatorRetentionRow
	RegisteredCount int
}

// CreatorIncomeRetention is the daily retention view over creator earnings
// (type 'income'); regFrom restricts to creators registered on that exact
// date.
func (s *RetentionService) CreatorIncomeRetention(ctx context.Context, regFrom string) (*CreatorTrendsResult, error) {
	where := query.NewWhere("t.type = 'income'")
	userJoin := ""
	if regFrom != "" {
		userJoin = "INNER JOIN users u ON t.user_id = u.id"
		where.And("DATE(u.created_at) = ?", regFrom)
	}

	bucket := query.Bucket("day", "t.datetime")
	result := &CreatorTrendsResult{}

	trendsQuery := fmt.Sprintf(`
		SELECT
			%[1]s AS date_period,
			COUNT(DISTINCT t.user_id) AS unique_creators,
			COUNT(t.id) AS total_transactions,
			SUM(t.amount) AS call_income_amount
		FROM transactions t
		%[2]s
		%[3]s
		GROUP BY %[1]s
		ORDER BY date_period ASC`, bucket, userJoin, where.Clause())
	if err := s.db.SelectContext(ctx, &result.Trends, trendsQuery, where.Args()...); err != nil {
		return nil, err
	}

	retentionQuery := fmt.Sprintf(`
		SELECT
			%[1]s AS date_period,
			COUNT(DISTINCT t.user_id) AS total_creators,
			COUNT(DISTINCT CASE WHEN creator_tx_count > 1 THEN t.user_id END) AS returning_creators,
			ROUND(
				(COUNT(DISTINCT CASE WHEN creator_tx_count > 1 THEN t.user_id END) /
				 NULLIF(COUNT(DISTINCT t.user_id), 0)) * 100, 2
			) AS retention_rate
		FROM (
			SELECT
				t.*,
				COUNT(*) OVER (PARTITION BY t.user_id) AS creator_tx_count
			FROM transactions t
			%[2]s
			%[3]s
		) t
		GROUP BY %[1]s
		ORDER BY date_period ASC`, bucket, userJoin, where.Clause())
	if err := s.db.SelectContext(ctx, &result.Retention, retentionQuery, where.Args()...); err != nil {
		return nil, err
	}

	if regFrom != "" {
		count, err := s.registeredCount(ctx, regFrom, "")
		if err != nil {
			return nil, err
		}
		result.RegisteredCount = count
	}

	return result, nil
}
