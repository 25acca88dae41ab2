package models

import (
	"testing"
	"time"
)

func TestPeriodScan(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  Period
	}{
		{"nil", nil, ""},
		{"date column", time.Date(2026, 8, 28, 15, 4, 5, 0, time.UTC), "2026-08-28"},
		{"formatted bytes", []byte("2026-08"), "2026-08"},
		{"formatted string", "2026-08-28 10:00", "2026-08-28 10:00"},
		{"yearweek integer", int64(202635), "202635"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Period
			if err := p.Scan(tt.value); err != nil {
				t.Fatalf("Scan(%v): %v", tt.value, err)
			}
			if p != tt.want {
				t.Errorf("Scan(%v) = %q, want %q", tt.value, p, tt.want)
			}
		})
	}
}

func TestPeriodScanRejectsUnknownType(t *testing.T) {
	var p Period
	if err := p.Scan(3.14); err == nil {
		t.Error("expected error for unsupported type")
	}
}
