// ===============================
// internal/services/users.go
// ===============================

package services

import (
	"context"
	"fmt"
	"strconv"

	"himadash/internal/models"
	"himadash/internal/query"

	"github.com/jmoiron/sqlx"
)

type UserService struct {
	db *sqlx.DB
}

func NewUserService(db *sqlx.DB) *UserService {
	return &UserService{db: db}
}

// UserListFilters are the accepted filters of the user listing.
type UserListFilters struct {
	Search string
	Gender string
	Status string
}

// UserSort is the sortable-column descriptor of the user listing.
var UserSort = query.NewSortMap("id", map[string]string{
	"id":           "id",
	"name":         "name",
	"mobile":       "mobile",
	"language":     "language",
	"status":       "status",
	"coins":        "coins",
	"total_coins":  "total_coins",
	"balance":      "balance",
	"total_income": "total_income",
	"created_at":   "created_at",
	"last_seen":    "last_seen",
})

const userColumns = `
	id, name, mobile, language, gender, age, status,
	coins, total_coins, balance, total_income,
	audio_status, video_status,
	attended_calls, missed_calls, blocked, priority, total_referrals,
	refer_code, referred_by,
	created_at, updated_at, last_seen`

// List returns a filtered, sorted page of users plus the matching total.
func (s *UserService) List(ctx context.Context, lp query.ListParams, sortBy, sortOrder string, f UserListFilters) ([]models.AdminUser, int, error) {
	where := query.NewWhere("1=1").AndSearch(f.Search, "name", "mobile")
	if f.Gender != "" {
		where.And("gender = ?", f.Gender)
	}
	if f.Status != "" {
		status, err := strconv.Atoi(f.Status)
		if err == nil {
			where.And("status = ?", status)
		}
	}

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM users %s", where.Clause())
	if err := s.db.GetContext(ctx, &total, countQuery, where.Args()...); err != nil {
		return nil, 0, err
	}

	pageQuery := fmt.Sprintf(`
		SELECT %s
		FROM users
		%s
		ORDER BY %s %s
		LIMIT ? OFFSET ?`,
		userColumns, where.Clause(), UserSort.Expr(sortBy), query.ParseOrder(sortOrder))

	users := []models.AdminUser{}
	args := append(where.Args(), lp.Limit, lp.Offset)
	if err := s.db.SelectContext(ctx, &users, pageQuery, args...); err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// Dashboard returns the quick stats for the landing page. "Registered and
// paid today" is the same-day cohort: registration date equal to payment
// date, both today.
func (s *UserService) Dashboard(ctx context.Context) (*models.DashboardStats, error) {
	stats := &models.DashboardStats{}

	if err := s.db.GetContext(ctx, &stats.TotalUsers,
		`SELECT COUNT(*) FROM users`); err != nil {
		return nil, err
	}

	if err := s.db.GetContext(ctx, &stats.TodayRegistered,
		`SELECT COUNT(*) FROM users WHERE DATE(created_at) = CURDATE()`); err != nil {
		return nil, err
	}

	todayPaidQuery := fmt.Sprintf(`
		SELECT COUNT(DISTINCT t.user_id)
		FROM transactions t
		INNER JOIN users u ON u.id = t.user_id
		WHERE t.type = 'add_coins'
		  AND %s
		  AND DATE(t.datetime) = CURDATE()`, query.SameDayCohort("u", "t"))
	if err := s.db.GetContext(ctx, &stats.TodayRegisteredPaid, todayPaidQuery); err != nil {
		return nil, err
	}

	var today string
	if err := s.db.GetContext(ctx, &today, `SELECT DATE_FORMAT(CURDATE(), '%Y-%m-%d')`); err != nil {
		return nil, err
	}
	stats.Date = today

	return stats, nil
}

// Languages returns the distinct user languages for filter dropdowns.
func (s *UserService) Languages(ctx context.Context) ([]string, error) {
	languages := []string{}
	err := s.db.SelectContext(ctx, &languages, `
		SELECT DISTINCT language
		FROM users
		WHERE language IS NOT NULL AND language <> ''
		ORDER BY language`)
	return languages, err
}
