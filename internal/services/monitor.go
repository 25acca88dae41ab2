// ===============================
// internal/services/monitor.go - Active-creator snapshot series
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

type MonitorService struct {
	db *sqlx.DB
}

func NewMonitorService(db *sqlx.DB) *MonitorService {
	return &MonitorService{db: db}
}

// NormalizeMonitorType coerces the chart type to audio or video.
func NormalizeMonitorType(monitorType string) string {
	if monitorType == "video" {
		return "video"
	}
	return "audio"
}

// NormalizeMonitorGroupBy coerces the bucket granularity to one the monitor
// chart offers.
func NormalizeMonitorGroupBy(groupBy string) string {
	switch groupBy {
	case "minute", "hour", "day":
		return groupBy
	}
	return "day"
}

// ActiveSamples reads the creator_active_monitor snapshots bucketed by the
// requested granularity. With coarser buckets the sampled counts are
// averaged, so the chart shows typical concurrency, not the sum of samples.
// Without date bounds the window is today.
func (s *MonitorService) ActiveSamples(ctx context.Context, monitorType, groupBy, dateFrom, dateTo string) ([]models.MonitorSample, error) {
	monitorType = NormalizeMonitorType(monitorType)
	groupBy = NormalizeMonitorGroupBy(groupBy)
	if dateFrom == "" && dateTo == "" {
		dateFrom = time.Now().Format("2006-01-02")
	}

	where := query.NewWhere("type = ?", monitorType).
		AndDateRange("datetime", dateFrom, dateTo)

	bucket := query.Bucket(groupBy, "datetime")
	samples := []models.MonitorSample{}
	q := fmt.Sprintf(`
		SELECT
			%[1]s AS period,
			COALESCE(language, 'Unknown') AS language,
			ROUND(AVG(active_count)) AS value
		FROM creator_active_monitor
		%[2]s
		GROUP BY %[1]s, COALESCE(language, 'Unknown')
		ORDER BY period ASC, language ASC`, bucket, where.Clause())
	err := s.db.SelectContext(ctx, &samples, q, where.Args()...)
	return samples, err
}

// BuildSeries shapes flat samples into the chart response: the ordered period
// axis plus one line per language, zero-filled so every line spans the full
// axis.
func BuildSeries(samples []models.MonitorSample) ([]string, []models.MonitorSeries) {
	periods := []string{}
	seen := map[string]bool{}
	byLanguage := map[string]map[string]float64{}

	for _, sample := range samples {
		period := string(sample.Period)
		if !seen[period] {
			seen[period] = true
			periods = append(periods, period)
		}
		if byLanguage[sample.Language] == nil {
			byLanguage[sample.Language] = map[string]float64{}
		}
		byLanguage[sample.Language][period] = sample.Value
	}

	languages := make([]string, 0, len(byLanguage))
	for language := range byLanguage {
		languages = append(languages, language)
	}
	sort.Strings(languages)

	series := make([]models.MonitorSeries, 0, len(languages))
	for _, language := range languages {
		data := make([]models.MonitorPoint, len(periods))
		for i, period := range periods {
			data[i] = models.MonitorPoint{Period: period, Value: byLanguage[language][period]}
		}
		series = append(series, models.MonitorSeries{Language: language, Data: data})
	}

	return periods, series
}
