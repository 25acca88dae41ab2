// ===============================
// internal/models/monitor.go - Active-creator snapshot series
// ===============================

package models

// MonitorSample is one grouped bucket of creator_active_monitor snapshots
// for a language.
type MonitorSample struct {
	Period   Period  `json:"period" db:"period"`
	Language string  `json:"language" db:"language"`
	Value    float64 `json:"value" db:"value"`
}

// MonitorPoint is one chart point inside a language series.
type MonitorPoint struct {
	Period string  `json:"period"`
	Value  float64 `json:"value"`
}

// MonitorSeries is the per-language line of the active-users chart.
type MonitorSeries struct {
	Language string         `json:"language"`
	Data     []MonitorPoint `json:"data"`
}
