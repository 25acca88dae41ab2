// ===============================
// internal/query/cohorts.go - History-scoped predicates and derived tables
// ===============================

package query

import "fmt"

// SameDayCohort is the predicate tying a payment to its payer's registration
// day: the user counts toward a day only when the payment date equals the
// registration date.
func SameDayCohort(userAlias, txAlias string) string {
	return fmt.Sprintf("DATE(%s.created_at) = DATE(%s.datetime)", userAlias, txAlias)
}

// FirstCallPerPair is the derived table selecting each (caller, creator)
// pair's chronologically first call over the FULL call history. It takes no
// filter placeholders: a date window may restrict which first calls are
// counted, never which call of a pair was first.
func FirstCallPerPair() string {
	return `SELECT user_id, call_user_id, MIN(datetime) AS first_dt
			FROM user_calls
			GROUP BY user_id, call_user_id`
}

// LifetimePaidOnce is the derived table selecting creators with exactly one
// paid withdrawal over their FULL history. It takes no filter placeholders:
// a date window may restrict which single withdrawals are displayed, never
// who qualifies as a one-timer.
func LifetimePaidOnce() string {
	return `SELECT user_id
			FROM withdrawals
			WHERE status = 1
			GROUP BY user_id
			HAVING COUNT(*) = 1`
}
