// ===============================
// internal/services/creators.go - Creator income and call analytics
// ===============================

package services

import (
	"context"
	"fmt"
	"time"

	"himadash/internal/models"
	"himadash/internal/query"

	"github.com/jmoiron/sqlx"
)

type CreatorService struct {
	db *sqlx.DB
}

func NewCreatorService(db *sqlx.DB) *CreatorService {
	return &CreatorService{db: db}
}

var IncomeSort = query.NewSortMap("total_income_effective", map[string]string{
	"total_income_effective": "total_income_effective",
	"total_transactions":     "total_transactions",
	"avg_income_amount":      "avg_income_amount",
	"last_income_date":       "last_income_date",
	"first_income_date":      "first_income_date",
	"name":                   "name",
	"mobile":                 "mobile",
	"id":                     "id",
})

// Income lists creators with earnings in the window. Date filters live inside
// the LEFT JOIN so creators whose only income is the cached users.total_income
// still appear; the HAVING keeps only rows whose effective income is positive.
func (s *CreatorService) Income(ctx context.Context, lp query.ListParams, sortBy, sortOrder, search, dateFrom, dateTo string) ([]models.CreatorIncome, int, error) {
	whereUsers := query.NewWhere("1=1").AndSearch(search, "u.name", "u.mobile")

	joinConds := "t.user_id = u.id AND t.type = 'income'"
	joinArgs := []interface{}{}
	if dateFrom != "" {
		joinConds += " AND DATE(t.datetime) >= ?"
		joinArgs = append(joinArgs, dateFrom)
	}
	if dateTo != "" {
		joinConds += " AND DATE(t.datetime) <= ?"
		joinArgs = append(joinArgs, dateTo)
	}
	args := append(joinArgs, whereUsers.Args()...)

	var total int
	countQuery := fmt.Sprintf(`
		SELECT COUNT(*) FROM (
			SELECT u.id,
				COALESCE(SUM(CASE WHEN t.id IS NOT NULL THEN t.amount ELSE 0 END), 0) AS sum_tx,
				MAX(u.total_income) AS users_total_income
			FROM users u
			LEFT JOIN transactions t ON %s
			%s
			GROUP BY u.id
			HAVING (sum_tx > 0) OR (users_total_income > 0)
		) c`, joinConds, whereUsers.Clause())
	if err := s.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	pageQuery := fmt.Sprintf(`
		SELECT
			u.id,
			u.name,
			u.mobile,
			u.gender,
			u.created_at,
			COUNT(t.id) AS total_transactions,
			COALESCE(SUM(t.amount), 0) AS sum_income_tx,
			AVG(t.amount) AS avg_income_amount,
			MIN(t.datetime) AS first_income_date,
			MAX(t.datetime) AS last_income_date,
			u.total_income AS users_total_income,
			CASE
				WHEN COALESCE(SUM(t.amount), 0) > 0 THEN COALESCE(SUM(t.amount), 0)
				ELSE COALESCE(u.total_income, 0)
			END AS total_income_effective
		FROM users u
		LEFT JOIN transactions t ON %s
		%s
		GROUP BY u.id, u.name, u.mobile, u.gender, u.created_at, u.total_income
		HAVING total_income_effective > 0
		ORDER BY %s %s
		LIMIT ? OFFSET ?`,
		joinConds, whereUsers.Clause(), IncomeSort.Expr(sortBy), query.ParseOrder(sortOrder))

	creators := []models.CreatorIncome{}
	pageArgs := append(append([]interface{}{}, args...), lp.Limit, lp.Offset)
	if err := s.db.SelectContext(ctx, &creators, pageQuery, pageArgs...); err != nil {
		return nil, 0, err
	}

	return creators, total, nil
}

// IncomeSummary is the header of the creators-income report; income figures
// reduce over the page, totalCreators over the full filtered set.
type IncomeSummary struct {
	TotalCreators       int     `json:"totalCreators"`
	TotalIncome         float64 `json:"totalIncome"`
	TotalTransactions   int     `json:"totalTransactions"`
	AvgIncomePerCreator float64 `json:"avgIncomePerCreator"`
}

func SummarizeIncome(creators []models.CreatorIncome, total int) IncomeSummary {
	summary := IncomeSummary{TotalCreators: total}
	for _, c := range creators {
		summary.TotalIncome += c.EffectiveIncome
		summary.TotalTransactions += c.TotalTransactions
	}
	if len(creators) > 0 {
		summary.AvgIncomePerCreator = summary.TotalIncome / float64(len(creators))
	}
	return summary
}

var CallTimeSort = query.NewSortMap("avg_duration_seconds", map[string]string{
	"avg_duration_seconds":   "avg_duration_seconds",
	"total_duration_seconds": "total_duration_seconds",
	"total_calls":            "total_calls",
	"first_call_time":        "first_call_time",
	"last_call_time":         "last_call_time",
	"name":                   "name",
	"mobile":                 "mobile",
	"id":                     "id",
})

// AvgCallTime ranks creators by call duration aggregates. Calls missing both
// end markers contribute NULL durations, which AVG and SUM skip.
func (s *CreatorService) AvgCallTime(ctx context.Context, lp query.ListParams, sortBy, sortOrder, dateFrom, dateTo, search string, minCalls int) ([]models.CreatorCallTime, int, error) {
	where := query.NewWhere("1=1").
		AndDateRange("c.datetime", dateFrom, dateTo).
		AndSearch(search, "u.name", "u.mobile")
	if minCalls < 1 {
		minCalls = 1
	}

	duration := query.CallDuration("c")
	base := fmt.Sprintf(`
		SELECT
			u.id,
			u.name,
			u.mobile,
			u.language,
			u.audio_status,
			u.video_status,
			COUNT(c.id) AS total_calls,
			AVG(%[1]s) AS avg_duration_seconds,
			SUM(%[1]s) AS total_duration_seconds,
			MIN(COALESCE(c.datetime, NOW())) AS first_call_time,
			MAX(COALESCE(c.update_current_endedtime, c.datetime)) AS last_call_time
		FROM user_calls c
		INNER JOIN users u ON u.id = c.call_user_id
		%[2]s
		GROUP BY u.id, u.name, u.mobile, u.language, u.audio_status, u.video_status
		HAVING total_calls >= ?`, duration, where.Clause())

	args := append(where.Args(), minCalls)

	var total int
	if err := s.db.GetContext(ctx, &total, fmt.Sprintf("SELECT COUNT(*) FROM (%s) x", base), args...); err != nil {
		return nil, 0, err
	}

	pageQuery := fmt.Sprintf("%s ORDER BY %s %s LIMIT ? OFFSET ?",
		base, CallTimeSort.Expr(sortBy), query.ParseOrder(sortOrder))
	creators := []models.CreatorCallTime{}
	pageArgs := append(append([]interface{}{}, args...), lp.Limit, lp.Offset)
	if err := s.db.SelectContext(ctx, &creators, pageQuery, pageArgs...); err != nil {
		return nil, 0, err
	}

	return creators, total, nil
}

var FTUSort = query.NewSortMap("ftu_calls_count", map[string]string{
	"ftu_calls_count":          "ftu_calls_count",
	"avg_ftu_per_day":          "avg_ftu_per_day",
	"avg_ftu_duration_seconds": "avg_ftu_duration_seconds",
	"repeat_callers_count":     "repeat_callers_count",
	"creator_name":             "creator_name",
	"creator_id":               "creator_id",
})

// FTUFilters bound the first-time-user call report.
type FTUFilters struct {
	DateFrom string
	DateTo   string
	Search   string
	MinCalls int
	Language string
	CallType string // audio, video or all
}

// ftuBaseQuery builds the grouped FTU query. The first-call derived table
// (query.FirstCallPerPair) spans the full call history; the caller's
// whereClause only ever filters the outer join, so a date window restricts
// which first calls are counted, never which call was first.
func ftuBaseQuery(whereClause string) string {
	duration := query.CallDuration("fc")
	return fmt.Sprintf(`
		SELECT
			u.id AS creator_id,
			u.name AS creator_name,
			u.language,
			u.audio_status,
			u.video_status,
			COUNT(*) AS ftu_calls_count,
			COUNT(*) / GREATEST(COUNT(DISTINCT DATE(fc.datetime)), 1) AS avg_ftu_per_day,
			AVG(%[1]s) AS avg_ftu_duration_seconds,
			COALESCE(MAX(rc.repeat_callers), 0) AS repeat_callers_count
		FROM user_calls fc
		INNER JOIN (
			%[4]s
		) fp ON fp.user_id = fc.user_id
			AND fp.call_user_id = fc.call_user_id
			AND fp.first_dt = fc.datetime
		INNER JOIN users u ON u.id = fc.call_user_id
		LEFT JOIN (
			SELECT call_user_id, COUNT(*) AS repeat_callers
			FROM (
				SELECT call_user_id, user_id
				FROM user_calls
				WHERE %[2]s
				GROUP BY call_user_id, user_id
				HAVING COUNT(*) > 1
			) r
			GROUP BY call_user_id
		) rc ON rc.call_user_id = u.id
		%[3]s
		GROUP BY u.id, u.name, u.language, u.audio_status, u.video_status
		HAVING ftu_calls_count >= ?`,
		duration, query.CallCompleted("user_calls"), whereClause, query.FirstCallPerPair())
}

// FTUCalls counts first-time-user calls per creator. A call is FTU when it is
// the chronologically first call of its (caller, creator) pair over the FULL
// call history and that first call has a recorded end. The date window then
// restricts which FTU calls are counted, never which call was first.
func (s *CreatorService) FTUCalls(ctx context.Context, lp query.ListParams, sortBy, sortOrder string, f FTUFilters) ([]models.FTUCreator, int, error) {
	where := query.NewWhere(query.CallCompleted("fc")).
		AndDateRange("fc.datetime", f.DateFrom, f.DateTo).
		AndSearch(f.Search, "u.name", "u.mobile")
	if f.Language != "" {
		where.And("u.language = ?", f.Language)
	}
	switch f.CallType {
	case "audio":
		where.And("u.audio_status = 1")
	case "video":
		where.And("u.video_status = 1")
	}
	if f.MinCalls < 1 {
		f.MinCalls = 1
	}

	base := ftuBaseQuery(where.Clause())
	args := append(where.Args(), f.MinCalls)

	var total int
	if err := s.db.GetContext(ctx, &total, fmt.Sprintf("SELECT COUNT(*) FROM (%s) x", base), args...); err != nil {
		return nil, 0, err
	}

	pageQuery := fmt.Sprintf("%s ORDER BY %s %s LIMIT ? OFFSET ?",
		base, FTUSort.Expr(sortBy), query.ParseOrder(sortOrder))
	creators := []models.FTUCreator{}
	pageArgs := append(append([]interface{}{}, args...), lp.Limit, lp.Offset)
	if err := s.db.SelectContext(ctx, &creators, pageQuery, pageArgs...); err != nil {
		return nil, 0, err
	}

	return creators, total, nil
}

var WeeklyAvgSort = query.NewSortMap("weekly_avg_seconds", map[string]string{
	"weekly_avg_seconds": "weekly_avg_seconds",
	"total_seconds_week": "total_seconds_week",
	"total_calls_week":   "total_calls_week",
	"name":               "name",
	"mobile":             "mobile",
	"id":                 "id",
})

// WeekRange resolves "current" or "last" into an ISO week (Monday through
// Sunday) of calendar dates around now.
func WeekRange(now time.Time, selector string) (from, to string) {
	weekday := int(now.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday closes the ISO week
	}
	monday := now.AddDate(0, 0, -(weekday - 1))
	if selector == "last" {
		monday = monday.AddDate(0, 0, -7)
	}
	sunday := monday.AddDate(0, 0, 6)
	return monday.Format("2006-01-02"), sunday.Format("2006-01-02")
}

// WeeklyAvg aggregates each creator's calls inside one week window (or a
// custom dateFrom/dateTo range).
func (s *CreatorService) WeeklyAvg(ctx context.Context, lp query.ListParams, sortBy, sortOrder, dateFrom, dateTo, search string, minCalls int) ([]models.WeeklyAvgCreator, int, error) {
	where := query.NewWhere("1=1").
		AndDateRange("c.datetime", dateFrom, dateTo).
		AndSearch(search, "u.name", "u.mobile")
	if minCalls < 1 {
		minCalls = 1
	}

	duration := query.CallDuration("c")
	base := fmt.Sprintf(`
		SELECT
			u.id,
			u.name,
			u.mobile,
			u.language,
			u.audio_status,
			u.video_status,
			COUNT(c.id) AS total_calls_week,
			AVG(%[1]s) AS weekly_avg_seconds,
			SUM(%[1]s) AS total_seconds_week
		FROM user_calls c
		INNER JOIN users u ON u.id = c.call_user_id
		%[2]s
		GROUP BY u.id, u.name, u.mobile, u.language, u.audio_status, u.video_status
		HAVING total_calls_week >= ?`, duration, where.Clause())

	args := append(where.Args(), minCalls)

	var total int
	if err := s.db.GetContext(ctx, &total, fmt.Sprintf("SELECT COUNT(*) FROM (%s) x", base), args...); err != nil {
		return nil, 0, err
	}

	pageQuery := fmt.Sprintf("%s ORDER BY %s %s LIMIT ? OFFSET ?",
		base, WeeklyAvgSort.Expr(sortBy), query.ParseOrder(sortOrder))
	creators := []models.WeeklyAvgCreator{}
	pageArgs := append(append([]interface{}{}, args...), lp.Limit, lp.Offset)
	if err := s.db.SelectContext(ctx, &creators, pageQuery, pageArgs...); err != nil {
		return nil, 0, err
	}

	return creators, total, nil
}

// NormalizeInactiveDays restricts the inactivity window to the offered
// presets.
func NormalizeInactiveDays(days int) int {
	switch days {
	case 3, 7, 15:
		return days
	}
	return 7
}

// InactiveCreators lists enabled creators whose latest call is older than the
// window, or who never took a call at all.
func (s *CreatorService) InactiveCreators(ctx context.Context, lp query.ListParams, days int, language string) ([]models.InactiveCreator, int, error) {
	days = NormalizeInactiveDays(days)
	where := query.NewWhere("(u.audio_status = 1 OR u.video_status = 1)")
	if language != "" {
		where.And("u.language = ?", language)
	}

	base := fmt.Sprintf(`
		SELECT
			u.id,
			u.name,
			u.mobile,
			u.language,
			MAX(c.datetime) AS last_call,
			u.last_audio_time_updated,
			u.last_video_time_updated
		FROM users u
		LEFT JOIN user_calls c ON c.call_user_id = u.id
		%s
		GROUP BY u.id, u.name, u.mobile, u.language, u.last_audio_time_updated, u.last_video_time_updated
		HAVING last_call IS NULL OR last_call < DATE_SUB(NOW(), INTERVAL ? DAY)`, where.Clause())

	args := append(where.Args(), days)

	var total int
	if err := s.db.GetContext(ctx, &total, fmt.Sprintf("SELECT COUNT(*) FROM (%s) x", base), args...); err != nil {
		return nil, 0, err
	}

	pageQuery := base + `
		ORDER BY last_call IS NULL DESC, last_call ASC
		LIMIT ? OFFSET ?`
	creators := []models.InactiveCreator{}
	pageArgs := append(append([]interface{}{}, args...), lp.Limit, lp.Offset)
	if err := s.db.SelectContext(ctx, &creators, pageQuery, pageArgs...); err != nil {
		return nil, 0, err
	}

	return creators, total, nil
}
