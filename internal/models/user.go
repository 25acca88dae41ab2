// ===============================
// internal/models/user.go - User listing rows
// ===============================

package models

import "time"

// AdminUser is a row of the admin user listing. Response keys mirror the
// underlying columns because the dashboard tables bind on them directly.
type AdminUser struct {
	ID          int64      `json:"id" db:"id"`
	Name        *string    `json:"name" db:"name"`
	Mobile      *string    `json:"mobile" db:"mobile"`
	Language    *string    `json:"language" db:"language"`
	Gender      *string    `json:"gender" db:"gender"`
	Age         *int       `json:"age" db:"age"`
	Status      *int       `json:"status" db:"status"`
	Coins       *int64     `json:"coins" db:"coins"`
	TotalCoins  *int64     `json:"total_coins" db:"total_coins"`
	Balance     *float64   `json:"balance" db:"balance"`
	TotalIncome *float64   `json:"total_income" db:"total_income"`
	AudioStatus *int       `json:"audio_status" db:"audio_status"`
	VideoStatus *int       `json:"video_status" db:"video_status"`

	AttendedCalls  *int `json:"attended_calls" db:"attended_calls"`
	MissedCalls    *int `json:"missed_calls" db:"missed_calls"`
	Blocked        *int `json:"blocked" db:"blocked"`
	Priority       *int `json:"priority" db:"priority"`
	TotalReferrals *int `json:"total_referrals" db:"total_referrals"`

	ReferCode  *string `json:"refer_code" db:"refer_code"`
	ReferredBy *string `json:"referred_by" db:"referred_by"`

	CreatedAt *time.Time `json:"created_at" db:"created_at"`
	UpdatedAt *time.Time `json:"updated_at" db:"updated_at"`
	LastSeen  *time.Time `json:"last_seen" db:"last_seen"`
}

// InactiveCreator is a creator with no call inside the inactivity window.
type InactiveCreator struct {
	ID                   int64      `json:"id" db:"id"`
	Name                 *string    `json:"name" db:"name"`
	Mobile               *string    `json:"mobile" db:"mobile"`
	Language             *string    `json:"language" db:"language"`
	LastCall             *time.Time `json:"last_call" db:"last_call"`
	LastAudioTimeUpdated *time.Time `json:"last_audio_time_updated" db:"last_audio_time_updated"`
	LastVideoTimeUpdated *time.Time `json:"last_video_time_updated" db:"last_video_time_updated"`
}

// DashboardStats is the quick-glance header of the dashboard landing page.
type DashboardStats struct {
	TotalUsers          int    `json:"totalUsers"`
	TodayRegistered     int    `json:"todayRegistered"`
	TodayRegisteredPaid int    `json:"todayRegisteredPaid"`
	Date                string `json:"date"`
}
