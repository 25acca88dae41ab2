package services

import (
	"testing"

	"himadash/internal/models"
)

func TestBuildSeries(t *testing.T) {
	samples := []models.MonitorSample{
		{Period: "2026-08-28 10:00", Language: "Hindi", Value: 12},
		{Period: "2026-08-28 10:00", Language: "Tamil", Value: 4},
		{Period: "2026-08-28 11:00", Language: "Hindi", Value: 15},
		// Tamil has no 11:00 sample
		{Period: "2026-08-28 12:00", Language: "Tamil", Value: 6},
	}

	periods, series := BuildSeries(samples)

	wantPeriods := []string{"2026-08-28 10:00", "2026-08-28 11:00", "2026-08-28 12:00"}
	if len(periods) != len(wantPeriods) {
		t.Fatalf("got %d periods, want %d", len(periods), len(wantPeriods))
	}
	for i, p := range periods {
		if p != wantPeriods[i] {
			t.Errorf("period %d = %q, want %q", i, p, wantPeriods[i])
		}
	}

	if len(series) != 2 {
		t.Fatalf("got %d series, want 2", len(series))
	}
	// Languages are sorted for deterministic output
	if series[0].Language != "Hindi" || series[1].Language != "Tamil" {
		t.Fatalf("series order: %s, %s", series[0].Language, series[1].Language)
	}

	for _, s := range series {
		if len(s.Data) != len(wantPeriods) {
			t.Errorf("%s line spans %d periods, want %d", s.Language, len(s.Data), len(wantPeriods))
		}
	}

	hindi := series[0].Data
	if hindi[0].Value != 12 || hindi[1].Value != 15 || hindi[2].Value != 0 {
		t.Errorf("Hindi values = %v, %v, %v", hindi[0].Value, hindi[1].Value, hindi[2].Value)
	}
	tamil := series[1].Data
	if tamil[0].Value != 4 || tamil[1].Value != 0 || tamil[2].Value != 6 {
		t.Errorf("Tamil values = %v, %v, %v", tamil[0].Value, tamil[1].Value, tamil[2].Value)
	}
}

func TestNormalizeMonitorType(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"audio", "audio"},
		{"video", "video"},
		{"", "audio"},
		{"VIDEO", "audio"},
		{"garbage", "audio"},
	}

	for _, tt := range tests {
		if got := NormalizeMonitorType(tt.in); got != tt.want {
			t.Errorf("NormalizeMonitorType(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeMonitorGroupBy(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"minute", "minute"},
		{"hour", "hour"},
		{"day", "day"},
		{"", "day"},
		{"week", "day"},
		{"garbage", "day"},
	}

	for _, tt := range tests {
		if got := NormalizeMonitorGroupBy(tt.in); got != tt.want {
			t.Errorf("NormalizeMonitorGroupBy(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBuildSeriesEmpty(t *testing.T) {
	periods, series := BuildSeries(nil)
	if len(periods) != 0 {
		t.Errorf("got %d periods, want 0", len(periods))
	}
	if len(series) != 0 {
		t.Errorf("got %d series, want 0", len(series))
	}
}
