package core

import (
	"strings"
	"testing"
	"time"
)

func TestFormatNumber(t *testing.T) {
	got := FormatNumber(1234567)
	if got == "1234567" || len(got) != len("1.234.567") {
		t.Errorf("FormatNumber(1234567) = %q, want grouped digits", got)
	}
	if !strings.HasPrefix(got, "1") || !strings.HasSuffix(got, "567") {
		t.Errorf("FormatNumber(1234567) = %q", got)
	}
	if got := FormatNumber(42); got != "42" {
		t.Errorf("FormatNumber(42) = %q, want 42", got)
	}
}

func TestFormatHelpers(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"percentage", FormatPercentage(87.34, 1), "87.3%"},
		{"percentage no decimals", FormatPercentage(94, 0), "94%"},
		{"grade", FormatGrade(4.5, 5), "4.5/5.0"},
		{"duration minutes", FormatDuration(45), "45 min"},
		{"duration hours", FormatDuration(120), "2h"},
		{"duration mixed", FormatDuration(90), "1h 30min"},
		{"large small", FormatLargeNumber(251), "251"},
		{"large thousands", FormatLargeNumber(2847), "2.8K"},
		{"large millions", FormatLargeNumber(1_500_000), "1.5M"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2025, time.October, 20, 23, 59, 0, 0, time.UTC)

	if got := FormatDate(d); got != "20 de octubre de 2025" {
		t.Errorf("FormatDate = %q", got)
	}
	if got := FormatDateTime(d); got != "20 de octubre de 2025, 23:59" {
		t.Errorf("FormatDateTime = %q", got)
	}
	if got := FormatDate(time.Time{}); got != "" {
		t.Errorf("FormatDate(zero) = %q, want empty", got)
	}
	from := time.Date(2025, time.October, 12, 0, 0, 0, 0, time.UTC)
	if got := FormatDateRange(from, d); got != "12 oct - 20 oct 2025" {
		t.Errorf("FormatDateRange = %q", got)
	}
}

func TestDateChecks(t *testing.T) {
	now := time.Date(2025, time.October, 17, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		t        time.Time
		wantNear bool
		wantPast bool
	}{
		{"tomorrow", now.Add(24 * time.Hour), true, false},
		{"in three days", now.Add(72 * time.Hour), true, false},
		{"in four days", now.Add(96 * time.Hour), false, false},
		{"yesterday", now.Add(-24 * time.Hour), false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsDateNear(tt.t, now, 3); got != tt.wantNear {
				t.Errorf("IsDateNear = %v, want %v", got, tt.wantNear)
			}
			if got := IsDatePast(tt.t, now); got != tt.wantPast {
				t.Errorf("IsDatePast = %v, want %v", got, tt.wantPast)
			}
		})
	}
}
