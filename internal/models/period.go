// ===============================
// internal/models/period.go - Time-bucket key scanning
// ===============================

package models

import (
	"fmt"
	"strconv"
	"time"
)

// Period is a time-bucket key as returned by the grouping expressions. The
// underlying SQL value differs by granularity (DATE for day buckets,
// formatted string for month/hour/minute, integer for ISO YEARWEEK), so it
// normalizes all of them to a string at the scan boundary.
type Period string

// Scan implements sql.Scanner
func (p *Period) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*p = ""
	case time.Time:
		*p = Period(v.Format("2006-01-02"))
	case []byte:
		*p = Period(v)
	case string:
		*p = Period(v)
	case int64:
		*p = Period(strconv.FormatInt(v, 10))
	default:
		return fmt.Errorf("cannot scan %T into Period", value)
	}
	return nil
}
