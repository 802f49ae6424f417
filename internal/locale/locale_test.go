package locale

import (
	"testing"
	"time"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		code string
		want Lang
	}{
		{"en", LangEN},
		{"en-US", LangEN},
		{"hi", LangHI},
		{"hi-IN", LangHI},
		{"mr", LangMR},
		{"fr", LangEN},
		{"", LangEN},
		{"garbage!!", LangEN},
	}

	for _, tt := range tests {
		if got := Resolve(tt.code); got != tt.want {
			t.Errorf("Resolve(%q) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestDayLabel(t *testing.T) {
	// Monday 2024-01-08.
	ts := time.Date(2024, time.January, 8, 10, 0, 0, 0, time.UTC)

	if got := LangEN.DayLabel(ts); got != "Mon, Jan 8" {
		t.Errorf("en day label = %q", got)
	}
	if got := LangHI.DayLabel(ts); got != "सोम, जन 8" {
		t.Errorf("hi day label = %q", got)
	}
}

func TestWeekdayTime(t *testing.T) {
	ts := time.Date(2024, time.January, 8, 15, 0, 0, 0, time.UTC)
	if got := LangEN.WeekdayTime(ts); got != "Mon, 15:00" {
		t.Errorf("weekday time = %q", got)
	}
	if got := LangEN.HourLabel(ts); got != "15:00" {
		t.Errorf("hour label = %q", got)
	}
}
