// ===============================
// internal/models/transaction.go - Payment/retention report rows
// ===============================

package models

import "time"

// RetentionUser aggregates a paying user's purchase history.
type RetentionUser struct {
	ID            int64      `json:"id" db:"id"`
	Name          *string    `json:"name" db:"name"`
	Mobile        *string    `json:"mobile" db:"mobile"`
	Gender        *string    `json:"gender" db:"gender"`
	UserCreated   *time.Time `json:"user_created" db:"user_created"`
	LastSeen      *time.Time `json:"last_seen" db:"last_seen"`
	Status        *int       `json:"status" db:"status"`
	CurrentCoins  *int64     `json:"current_coins" db:"current_coins"`
	TotalCoins    *int64     `json:"total_coins" db:"total_coins"`
	Balance       *float64   `json:"balance" db:"balance"`

	TotalTransactions   int        `json:"total_transactions" db:"total_transactions"`
	TotalCoinsPurchased *int64     `json:"total_coins_purchased" db:"total_coins_purchased"`
	TotalAmountSpent    *float64   `json:"total_amount_spent" db:"total_amount_spent"`
	LastPaymentDate     *time.Time `json:"last_payment_date" db:"last_payment_date"`
	FirstPaymentDate    *time.Time `json:"first_payment_date" db:"first_payment_date"`
	DaysBetweenPayments *int       `json:"days_between_payments" db:"days_between_payments"`
	AvgPaymentAmount    *float64   `json:"avg_payment_amount" db:"avg_payment_amount"`
	CreditPayments      int        `json:"credit_payments" db:"credit_payments"`
	DebitPayments       int        `json:"debit_payments" db:"debit_payments"`

	RecentTransactions []RecentTransaction `json:"recent_transactions" db:"-"`
}

// RecentTransaction is one of the latest purchases attached to a retention row.
type RecentTransaction struct {
	ID          int64      `json:"id" db:"id"`
	Type        string     `json:"type" db:"type"`
	Datetime    *time.Time `json:"datetime" db:"datetime"`
	Coins       *int64     `json:"coins" db:"coins"`
	Amount      *float64   `json:"amount" db:"amount"`
	PaymentType *string    `json:"payment_type" db:"payment_type"`
	Reason      *string    `json:"reason" db:"reason"`
	MethodType  *string    `json:"method_type" db:"method_type"`
}

// TrendRow is one time bucket of purchase activity.
type TrendRow struct {
	DatePeriod          Period   `json:"date_period" db:"date_period"`
	UniqueUsers         int      `json:"unique_users" db:"unique_users"`
	TotalTransactions   int      `json:"total_transactions" db:"total_transactions"`
	TotalRevenue        *float64 `json:"total_revenue" db:"total_revenue"`
	TotalCoinsSold      *int64   `json:"total_coins_sold" db:"total_coins_sold"`
	AvgTransactionValue *float64 `json:"avg_transaction_value" db:"avg_transaction_value"`
}

// RetentionRow is one time bucket of returning-payer metrics.
type RetentionRow struct {
	DatePeriod     Period   `json:"date_period" db:"date_period"`
	TotalUsers     int      `json:"total_users" db:"total_users"`
	ReturningUsers int      `json:"returning_users" db:"returning_users"`
	RetentionRate  *float64 `json:"retention_rate" db:"retention_rate"`
}

// UserBreakdownRow splits a bucket's payers into new vs existing accounts.
type UserBreakdownRow struct {
	DatePeriod    Period `json:"date_period" db:"date_period"`
	NewUsers      int    `json:"new_users" db:"new_users"`
	ExistingUsers int    `json:"existing_users" db:"existing_users"`
}

// RegVsPayerRow pairs a day's registrations with its same-day payer cohort.
// A payer counts toward a day only when their registration date equals the
// payment date.
type RegVsPayerRow struct {
	DatePeriod    string `json:"date_period"`
	Registrations int    `json:"registrations"`
	Payers        int    `json:"payers"`
}

// RepeatPayerPoint is one hour of payment activity. Repeat payments/payers
// are the subset belonging to users with more than one purchase that day.
type RepeatPayerPoint struct {
	Hour           int `json:"hour" db:"hour"`
	TotalPayments  int `json:"total_payments" db:"total_payments"`
	RepeatPayments int `json:"repeat_payments" db:"repeat_payments"`
	RepeatPayers   int `json:"repeat_payers" db:"repeat_payers"`
}

// LanguageRegPaid is a per-language registration/payment slice for one day.
type LanguageRegPaid struct {
	Language      string   `json:"language" db:"language"`
	Registrations int      `json:"registrations" db:"registrations"`
	PaidUsers     int      `json:"paidUsers" db:"paid_users"`
	TotalPaid     *float64 `json:"totalPaid" db:"total_paid"`
}

// CreatorTrendRow is one bucket of creator call-income activity.
type CreatorTrendRow struct {
	DatePeriod        Period   `json:"date_period" db:"date_period"`
	UniqueCreators    int      `json:"unique_creators" db:"unique_creators"`
	TotalTransactions int      `json:"total_transactions" db:"total_transactions"`
	CallIncomeAmount  *float64 `json:"call_income_amount" db:"call_income_amount"`
}

// CreatorRetentionRow is one bucket of returning-creator metrics.
type CreatorRetentionRow struct {
	DatePeriod        Period   `json:"date_period" db:"date_period"`
	TotalCreators     int      `json:"total_creators" db:"total_creators"`
	ReturningCreators int      `json:"returning_creators" db:"returning_creators"`
	RetentionRate     *float64 `json:"retention_rate" db:"retention_rate"`
}
