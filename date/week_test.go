package date

import (
	"testing"
	"time"
)

func TestWeekOf(t *testing.T) {
	testCases := []struct {
		name     string
		day      string
		wantFrom string
		wantTo   string
	}{
		{
			name:     "Wednesday maps to the preceding Monday",
			day:      "2025-11-19",
			wantFrom: "2025-11-17",
			wantTo:   "2025-11-23",
		},
		{
			name:     "Monday maps to itself",
			day:      "2025-11-17",
			wantFrom: "2025-11-17",
			wantTo:   "2025-11-23",
		},
		{
			name:     "Sunday closes the week started six days earlier",
			day:      "2025-11-23",
			wantFrom: "2025-11-17",
			wantTo:   "2025-11-23",
		},
		{
			name:     "week spanning a month boundary",
			day:      "2025-12-01",
			wantFrom: "2025-12-01",
			wantTo:   "2025-12-07",
		},
		{
			name:     "week spanning a year boundary",
			day:      "2026-01-01",
			wantFrom: "2025-12-29",
			wantTo:   "2026-01-04",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := WeekOf(MustParse(tc.day))
			if w.From.Weekday() != time.Monday {
				t.Errorf("WeekOf(%s).From is a %v, want Monday", tc.day, w.From.Weekday())
			}
			if got := w.From.String(); got != tc.wantFrom {
				t.Errorf("WeekOf(%s).From = %s, want %s", tc.day, got, tc.wantFrom)
			}
			if got := w.To.String(); got != tc.wantTo {
				t.Errorf("WeekOf(%s).To = %s, want %s", tc.day, got, tc.wantTo)
			}
			if !w.Contains(MustParse(tc.day)) {
				t.Errorf("WeekOf(%s) does not contain its own day", tc.day)
			}
		})
	}
}

func TestWeekLabel(t *testing.T) {
	w := WeekOf(MustParse("2025-11-19"))
	if got, want := w.Label(), "17/11/25 al 23/11/25"; got != want {
		t.Fatalf("Label() = %q, want %q", got, want)
	}

	// Two days in the same Monday-Sunday window share the label.
	if a, b := WeekOf(MustParse("2025-11-17")).Label(), WeekOf(MustParse("2025-11-23")).Label(); a != b {
		t.Errorf("same window produced different labels: %q vs %q", a, b)
	}
	// Adjacent windows never do.
	if a, b := WeekOf(MustParse("2025-11-23")).Label(), WeekOf(MustParse("2025-11-24")).Label(); a == b {
		t.Errorf("adjacent windows share the label %q", a)
	}
}

func TestParseWeekLabel(t *testing.T) {
	want := WeekOf(MustParse("2025-11-19"))
	got, err := ParseWeekLabel(want.Label())
	if err != nil {
		t.Fatalf("ParseWeekLabel(%q): %v", want.Label(), err)
	}
	if got != want {
		t.Errorf("ParseWeekLabel round-trip = %+v, want %+v", got, want)
	}

	if _, err := ParseWeekLabel("not a label"); err == nil {
		t.Errorf("ParseWeekLabel accepted garbage")
	}
}
