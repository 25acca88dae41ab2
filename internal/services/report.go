// ===============================
// internal/services/report.go - Daily collection report webhook
// ===============================

package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
)

// ErrNoWebhook means SLACK_WEBHOOK_URL is not configured.
var ErrNoWebhook = errors.New("webhook URL not configured")

type ReportService struct {
	db         *sqlx.DB
	webhookURL string
	client     *http.Client
}

func NewReportService(db *sqlx.DB, webhookURL string) *ReportService {
	return &ReportService{
		db:         db,
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: 15 * time.Second},
	}
}

// LanguageCollection is one language line of the daily report.
type LanguageCollection struct {
	Language          string  `db:"language"`
	TotalAmount       float64 `db:"total_amount"`
	TransactionsCount int     `db:"transactions_count"`
}

// BuildDailyReport collects today's coin purchases with the language
// breakdown and renders the chat message.
func (s *ReportService) BuildDailyReport(ctx context.Context) (string, error) {
	var total float64
	err := s.db.GetContext(ctx, &total, `
		SELECT COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE type = 'add_coins' AND DATE(datetime) = CURDATE()`)
	if err != nil {
		return "", err
	}

	byLanguage := []LanguageCollection{}
	err = s.db.SelectContext(ctx, &byLanguage, `
		SELECT
			COALESCE(u.language, 'Unknown') AS language,
			COALESCE(SUM(t.amount), 0) AS total_amount,
			COUNT(t.id) AS transactions_count
		FROM transactions t
		LEFT JOIN users u ON u.id = t.user_id
		WHERE t.type = 'add_coins' AND DATE(t.datetime) = CURDATE()
		GROUP BY COALESCE(u.language, 'Unknown')
		ORDER BY total_amount DESC`)
	if err != nil {
		return "", err
	}

	return FormatDailyReport(time.Now(), total, byLanguage), nil
}

// FormatDailyReport renders the report message the way the finance channel
// expects it.
func FormatDailyReport(day time.Time, total float64, byLanguage []LanguageCollection) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Daily collection report for %s\n", day.Format("2006-01-02"))
	fmt.Fprintf(&b, "Total collection: ₹%s\n", formatAmount(total))
	b.WriteString("By language:")
	for _, row := range byLanguage {
		fmt.Fprintf(&b, "\n- %s: ₹%s (%d tx)", row.Language, formatAmount(row.TotalAmount), row.TransactionsCount)
	}
	return b.String()
}

// formatAmount drops a trailing .00 so whole rupee totals read clean.
func formatAmount(amount float64) string {
	s := fmt.Sprintf("%.2f", amount)
	return strings.TrimSuffix(s, ".00")
}

// SendDailyReport builds today's report and POSTs it to the webhook. The
// send is at-most-once with no retry; a webhook failure is returned to the
// caller, never swallowed.
func (s *ReportService) SendDailyReport(ctx context.Context) (string, error) {
	if s.webhookURL == "" {
		return "", ErrNoWebhook
	}

	text, err := s.BuildDailyReport(ctx)
	if err != nil {
		return "", err
	}

	payload, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("webhook post: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("webhook post: unexpected status %d", resp.StatusCode)
	}

	return text, nil
}
