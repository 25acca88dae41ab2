// ===============================
// internal/query/buckets.go - Canonical time-bucket expressions
// ===============================

package query

import "fmt"

// Bucket returns the single canonical SQL expression producing the group key
// for col under the given granularity. The caller must reuse the returned
// string verbatim in both the SELECT projection and the GROUP BY clause:
// deriving two equivalent-but-different expressions silently splits groups
// under ONLY_FULL_GROUP_BY.
//
// Weeks are ISO weeks (Monday start); months are YYYY-MM.
func Bucket(groupBy, col string) string {
	switch groupBy {
	case "week":
		return fmt.Sprintf("YEARWEEK(%s, 1)", col)
	case "month":
		return fmt.Sprintf("DATE_FORMAT(%s, '%%Y-%%m')", col)
	case "hour":
		return fmt.Sprintf("DATE_FORMAT(%s, '%%Y-%%m-%%d %%H:00')", col)
	case "minute":
		return fmt.Sprintf("DATE_FORMAT(%s, '%%Y-%%m-%%d %%H:%%i')", col)
	default: // day
		return fmt.Sprintf("DATE(%s)", col)
	}
}

// CallDuration returns the call-duration-in-seconds expression for rows of
// user_calls aliased as alias. The schema carries two generations of
// start/end markers: a TIME-of-day pair (started_time/ended_time) and a
// DATETIME pair (datetime/update_current_endedtime). The TIME pair wins when
// present; with neither pair the duration is NULL so AVG/SUM skip the row
// instead of counting zero.
func CallDuration(alias string) string {
	return fmt.Sprintf(`CASE
		WHEN %[1]s.started_time IS NOT NULL AND %[1]s.ended_time IS NOT NULL
			THEN TIME_TO_SEC(TIMEDIFF(%[1]s.ended_time, %[1]s.started_time))
		WHEN %[1]s.datetime IS NOT NULL AND %[1]s.update_current_endedtime IS NOT NULL
			THEN TIMESTAMPDIFF(SECOND, %[1]s.datetime, %[1]s.update_current_endedtime)
		ELSE NULL
	END`, alias)
}

// CallCompleted is the predicate marking a call as having a recorded end in
// either representation.
func CallCompleted(alias string) string {
	return fmt.Sprintf("(%[1]s.ended_time IS NOT NULL OR %[1]s.update_current_endedtime IS NOT NULL)", alias)
}
