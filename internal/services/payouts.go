// ===============================
// internal/services/payouts.go - Withdrawal reports
// ===============================

package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"himadash/internal/models"
	"himadash/internal/query"

	"github.com/jmoiron/sqlx"
)

type PayoutService struct {
	db *sqlx.DB
}

func NewPayoutService(db *sqlx.DB) *PayoutService {
	return &PayoutService{db: db}
}

// ParsePayoutStatus normalizes the stringy status filter the app backend
// left behind. Accepts the numeric codes and the word forms; ok is false when
// the filter should be skipped.
func ParsePayoutStatus(s string) (int, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(s); err == nil {
		switch n {
		case models.WithdrawalUnpaid, models.WithdrawalPaid, models.WithdrawalCancelled:
			return n, true
		}
		return 0, false
	}
	switch s {
	case "unpaid", "pending":
		return models.WithdrawalUnpaid, true
	case "paid":
		return models.WithdrawalPaid, true
	case "cancelled", "canceled":
		return models.WithdrawalCancelled, true
	}
	return 0, false
}

var PayoutSort = query.NewSortMap("created_at", map[string]string{
	"created_at": "w.created_at",
	"updated_at": "w.updated_at",
	"amount":     "w.amount",
	"status":     "w.status",
	"name":       "u.name",
	"mobile":     "u.mobile",
	"language":   "u.language",
	"user_id":    "w.user_id",
	"id":         "w.id",
})

var DistinctPayoutSort = query.NewSortMap("last_payout_at", map[string]string{
	"last_payout_at":  "last_payout_at",
	"first_payout_at": "first_payout_at",
	"total_amount":    "total_amount",
	"payouts_count":   "payouts_count",
	"name":            "name",
	"mobile":          "mobile",
	"user_id":         "user_id",
})

// PayoutFilters bound the payout listing.
type PayoutFilters struct {
	Search   string
	Language string
	Status   string
	DateFrom string
	DateTo   string
}

func payoutWhere(f PayoutFilters) *query.Where {
	where := query.NewWhere("1=1").
		AndSearch(f.Search, "u.name", "u.mobile").
		AndDateRange("w.created_at", f.DateFrom, f.DateTo)
	if f.Language != "" {
		where.And("u.language = ?", f.Language)
	}
	if status, ok := ParsePayoutStatus(f.Status); ok {
		if status == models.WithdrawalUnpaid {
			// Legacy rows carry NULL instead of 0
			where.And("(w.status = ? OR w.status IS NULL)", status)
		} else {
			where.And("w.status = ?", status)
		}
	}
	return where
}

// List returns a page of withdrawals joined with their creators.
func (s *PayoutService) List(ctx context.Context, lp query.ListParams, sortBy, sortOrder string, f PayoutFilters) ([]models.Payout, int, error) {
	where := payoutWhere(f)

	var total int
	countQuery := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM withdrawals w
		INNER JOIN users u ON u.id = w.user_id
		%s`, where.Clause())
	if err := s.db.GetContext(ctx, &total, countQuery, where.Args()...); err != nil {
		return nil, 0, err
	}

	pageQuery := fmt.Sprintf(`
		SELECT
			w.id, w.user_id, u.name, u.mobile, u.language,
			w.amount, w.status, w.method, w.txn_id,
			w.created_at, w.updated_at
		FROM withdrawals w
		INNER JOIN users u ON u.id = w.user_id
		%s
		ORDER BY %s %s
		LIMIT ? OFFSET ?`,
		where.Clause(), PayoutSort.Expr(sortBy), query.ParseOrder(sortOrder))

	payouts := []models.Payout{}
	args := append(where.Args(), lp.Limit, lp.Offset)
	if err := s.db.SelectContext(ctx, &payouts, pageQuery, args...); err != nil {
		return nil, 0, err
	}

	return payouts, total, nil
}

// ListDistinct collapses the filtered withdrawals to one row per creator.
func (s *PayoutService) ListDistinct(ctx context.Context, lp query.ListParams, sortBy, sortOrder string, f PayoutFilters) ([]models.DistinctPayout, int, error) {
	where := payoutWhere(f)

	base := fmt.Sprintf(`
		SELECT
			w.user_id,
			u.name,
			u.mobile,
			u.language,
			COUNT(w.id) AS payouts_count,
			COALESCE(SUM(w.amount), 0) AS total_amount,
			MIN(w.created_at) AS first_payout_at,
			MAX(w.created_at) AS last_payout_at
		FROM withdrawals w
		INNER JOIN users u ON u.id = w.user_id
		%s
		GROUP BY w.user_id, u.name, u.mobile, u.language`, where.Clause())

	var total int
	if err := s.db.GetContext(ctx, &total, fmt.Sprintf("SELECT COUNT(*) FROM (%s) x", base), where.Args()...); err != nil {
		return nil, 0, err
	}

	pageQuery := fmt.Sprintf("%s ORDER BY %s %s LIMIT ? OFFSET ?",
		base, DistinctPayoutSort.Expr(sortBy), query.ParseOrder(sortOrder))
	payouts := []models.DistinctPayout{}
	args := append(where.Args(), lp.Limit, lp.Offset)
	if err := s.db.SelectContext(ctx, &payouts, pageQuery, args...); err != nil {
		return nil, 0, err
	}

	return payouts, total, nil
}

// Summary totals the filtered withdrawal set. The first-time figure counts
// creators in the filtered set whose LIFETIME paid-withdrawal count is
// exactly one; the window filters never touch that inner HAVING.
func (s *PayoutService) Summary(ctx context.Context, f PayoutFilters) (*models.PayoutSummary, error) {
	where := payoutWhere(f)
	summary := &models.PayoutSummary{}

	totalsQuery := fmt.Sprintf(`
		SELECT
			COALESCE(SUM(w.amount), 0) AS total_amount,
			COUNT(CASE WHEN w.status = 1 THEN 1 END) AS paid_count,
			COUNT(CASE WHEN w.status = 0 OR w.status IS NULL THEN 1 END) AS unpaid_count,
			COUNT(CASE WHEN w.status = 2 THEN 1 END) AS cancelled_count
		FROM withdrawals w
		INNER JOIN users u ON u.id = w.user_id
		%s`, where.Clause())
	if err := s.db.GetContext(ctx, summary, totalsQuery, where.Args()...); err != nil {
		return nil, err
	}

	if err := s.db.GetContext(ctx, &summary.FirstTimePayoutCreators, firstTimeCountQuery(where.Clause()), where.Args()...); err != nil {
		return nil, err
	}

	return summary, nil
}

// firstTimeCountQuery counts filtered withdrawals belonging to creators
// whose LIFETIME paid-withdrawal count is exactly one. The caller's
// whereClause binds only the outer rows; the one-timer membership
// (query.LifetimePaidOnce) always spans the full history.
func firstTimeCountQuery(whereClause string) string {
	return fmt.Sprintf(`
		SELECT COUNT(DISTINCT w.user_id)
		FROM withdrawals w
		INNER JOIN users u ON u.id = w.user_id
		INNER JOIN (
			%s
		) ft ON ft.user_id = w.user_id
		%s`, query.LifetimePaidOnce(), whereClause)
}

// oneTimePayoutBaseQuery selects the single paid withdrawal of each one-timer
// creator. The whereClause narrows which of those withdrawals are shown; the
// inner membership table spans the full history.
func oneTimePayoutBaseQuery(whereClause string) string {
	return fmt.Sprintf(`
		SELECT
			w.id AS withdrawal_id,
			w.user_id,
			u.name,
			u.mobile,
			u.language,
			w.amount,
			w.created_at AS datetime
		FROM withdrawals w
		INNER JOIN users u ON u.id = w.user_id
		INNER JOIN (
			%s
		) o ON o.user_id = w.user_id
		%s`, query.LifetimePaidOnce(), whereClause)
}

// OneTimePayoutCreators lists creators holding exactly one lifetime paid
// withdrawal, newest first. A date window narrows which of those single
// withdrawals are shown; membership in the one-timer set always spans the
// full history.
func (s *PayoutService) OneTimePayoutCreators(ctx context.Context, lp query.ListParams, dateFrom, dateTo string) ([]models.OneTimePayout, int, error) {
	where := query.NewWhere("w.status = 1").
		AndDateRange("w.created_at", dateFrom, dateTo)

	base := oneTimePayoutBaseQuery(where.Clause())

	var total int
	if err := s.db.GetContext(ctx, &total, fmt.Sprintf("SELECT COUNT(*) FROM (%s) x", base), where.Args()...); err != nil {
		return nil, 0, err
	}

	pageQuery := base + `
		ORDER BY w.created_at DESC
		LIMIT ? OFFSET ?`
	rows := []models.OneTimePayout{}
	args := append(where.Args(), lp.Limit, lp.Offset)
	if err := s.db.SelectContext(ctx, &rows, pageQuery, args...); err != nil {
		return nil, 0, err
	}

	return rows, total, nil
}
