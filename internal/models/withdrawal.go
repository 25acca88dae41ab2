// ===============================
// internal/models/withdrawal.go - Payout report rows
// ===============================

package models

import "time"

// Withdrawal status values. The column is a loose enum inherited from the
// app backend; the helpers in services/payouts.go normalize the stringy
// variants to these.
const (
	WithdrawalUnpaid    = 0
	WithdrawalPaid      = 1
	WithdrawalCancelled = 2
)

// Payout is one withdrawal row joined with its creator.
type Payout struct {
	ID        int64      `json:"id" db:"id"`
	UserID    int64      `json:"user_id" db:"user_id"`
	Name      *string    `json:"name" db:"name"`
	Mobile    *string    `json:"mobile" db:"mobile"`
	Language  *string    `json:"language" db:"language"`
	Amount    float64    `json:"amount" db:"amount"`
	Status    *int       `json:"status" db:"status"`
	Method    *string    `json:"method" db:"method"`
	TxnID     *string    `json:"txn_id" db:"txn_id"`
	CreatedAt *time.Time `json:"created_at" db:"created_at"`
	UpdatedAt *time.Time `json:"updated_at" db:"updated_at"`
}

// DistinctPayout groups a creator's withdrawals into one row.
type DistinctPayout struct {
	UserID      int64      `json:"user_id" db:"user_id"`
	Name        *string    `json:"name" db:"name"`
	Mobile      *string    `json:"mobile" db:"mobile"`
	Language    *string    `json:"language" db:"language"`
	PayoutCount int        `json:"payouts_count" db:"payouts_count"`
	TotalAmount float64    `json:"total_amount" db:"total_amount"`
	FirstPayout *time.Time `json:"first_payout_at" db:"first_payout_at"`
	LastPayout  *time.Time `json:"last_payout_at" db:"last_payout_at"`
}

// PayoutSummary totals the filtered payout set. FirstTimePayoutCreators is
// always computed against lifetime history, never the filtered window.
type PayoutSummary struct {
	TotalAmount             *float64 `json:"totalAmount" db:"total_amount"`
	PaidCount               int      `json:"paidCount" db:"paid_count"`
	UnpaidCount             int      `json:"unpaidCount" db:"unpaid_count"`
	CancelledCount          int      `json:"cancelledCount" db:"cancelled_count"`
	FirstTimePayoutCreators int      `json:"firstTimePayoutCreators" db:"first_time_payout_creators"`
}

// OneTimePayout is the single lifetime paid withdrawal of a creator who has
// exactly one.
type OneTimePayout struct {
	WithdrawalID int64      `json:"withdrawal_id" db:"withdrawal_id"`
	UserID       int64      `json:"user_id" db:"user_id"`
	Name         *string    `json:"name" db:"name"`
	Mobile       *string    `json:"mobile" db:"mobile"`
	Language     *string    `json:"language" db:"language"`
	Amount       float64    `json:"amount" db:"amount"`
	Datetime     *time.Time `json:"datetime" db:"datetime"`
}
