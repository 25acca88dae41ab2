// ===============================
// internal/models/call.go - Call analytics rows
// ===============================

package models

import "time"

// CreatorIncome aggregates a creator's earnings. EffectiveIncome prefers the
// live transaction sum and falls back to the cached users.total_income when
// no income transactions match.
type CreatorIncome struct {
	ID        int64      `json:"id" db:"id"`
	Name      *string    `json:"name" db:"name"`
	Mobile    *string    `json:"mobile" db:"mobile"`
	Gender    *string    `json:"gender" db:"gender"`
	CreatedAt *time.Time `json:"created_at" db:"created_at"`

	TotalTransactions int        `json:"total_transactions" db:"total_transactions"`
	SumIncomeTx       *float64   `json:"sum_income_tx" db:"sum_income_tx"`
	AvgIncomeAmount   *float64   `json:"avg_income_amount" db:"avg_income_amount"`
	FirstIncomeDate   *time.Time `json:"first_income_date" db:"first_income_date"`
	LastIncomeDate    *time.Time `json:"last_income_date" db:"last_income_date"`
	UsersTotalIncome  *float64   `json:"users_total_income" db:"users_total_income"`
	EffectiveIncome   float64    `json:"total_income_effective" db:"total_income_effective"`
}

// CreatorCallTime aggregates a creator's call durations.
type CreatorCallTime struct {
	ID          int64   `json:"id" db:"id"`
	Name        *string `json:"name" db:"name"`
	Mobile      *string `json:"mobile" db:"mobile"`
	Language    *string `json:"language" db:"language"`
	AudioStatus *int    `json:"audio_status" db:"audio_status"`
	VideoStatus *int    `json:"video_status" db:"video_status"`

	TotalCalls           int        `json:"total_calls" db:"total_calls"`
	AvgDurationSeconds   *float64   `json:"avg_duration_seconds" db:"avg_duration_seconds"`
	TotalDurationSeconds *float64   `json:"total_duration_seconds" db:"total_duration_seconds"`
	FirstCallTime        *time.Time `json:"first_call_time" db:"first_call_time"`
	LastCallTime         *time.Time `json:"last_call_time" db:"last_call_time"`
}

// FTUCreator aggregates a creator's first-time-user calls: for each caller,
// the pair's chronologically first call, counted only when that first call
// actually ended.
type FTUCreator struct {
	CreatorID   int64   `json:"creator_id" db:"creator_id"`
	CreatorName *string `json:"creator_name" db:"creator_name"`
	Language    *string `json:"language" db:"language"`
	AudioStatus *int    `json:"audio_status" db:"audio_status"`
	VideoStatus *int    `json:"video_status" db:"video_status"`

	FTUCallsCount         int      `json:"ftu_calls_count" db:"ftu_calls_count"`
	AvgFTUPerDay          *float64 `json:"avg_ftu_per_day" db:"avg_ftu_per_day"`
	AvgFTUDurationSeconds *float64 `json:"avg_ftu_duration_seconds" db:"avg_ftu_duration_seconds"`
	RepeatCallersCount    int      `json:"repeat_callers_count" db:"repeat_callers_count"`
}

// WeeklyAvgCreator aggregates a creator's calls inside one week window.
type WeeklyAvgCreator struct {
	ID          int64   `json:"id" db:"id"`
	Name        *string `json:"name" db:"name"`
	Mobile      *string `json:"mobile" db:"mobile"`
	Language    *string `json:"language" db:"language"`
	AudioStatus *int    `json:"audio_status" db:"audio_status"`
	VideoStatus *int    `json:"video_status" db:"video_status"`

	TotalCallsWeek   int      `json:"total_calls_week" db:"total_calls_week"`
	WeeklyAvgSeconds *float64 `json:"weekly_avg_seconds" db:"weekly_avg_seconds"`
	TotalSecondsWeek *float64 `json:"total_seconds_week" db:"total_seconds_week"`
}
