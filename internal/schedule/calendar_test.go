package schedule

import (
	"testing"
	"time"
)

func flatten(weeks []CalendarWeek) []CalendarDay {
	var days []CalendarDay
	for _, w := range weeks {
		days = append(days, w.Days...)
	}
	return days
}

func TestMonthGrid_MultipleOfSeven(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for month := time.January; month <= time.December; month++ {
		weeks := MonthGrid(2026, month, now, nil)
		days := flatten(weeks)
		if len(days)%7 != 0 {
			t.Fatalf("%s: grid length %d is not a multiple of 7", month, len(days))
		}
		for i, w := range weeks {
			if w.Week != i+1 {
				t.Fatalf("%s: week %d numbered %d", month, i+1, w.Week)
			}
			if len(w.Days) != 7 {
				t.Fatalf("%s: week %d has %d days", month, w.Week, len(w.Days))
			}
		}
	}
}

func TestMonthGrid_PaddingDisabledAndSized(t *testing.T) {
	// September 2026 has 30 days and starts on a Tuesday (weekday 2):
	// 2 leading cells from August, 3 trailing cells from October, 35 total.
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	days := flatten(MonthGrid(2026, time.September, now, nil))

	if len(days) != 35 {
		t.Fatalf("expected 35 cells, got %d", len(days))
	}
	for i := 0; i < 2; i++ {
		if days[i].Date.Month() != time.August || !days[i].Disabled {
			t.Fatalf("leading cell %d: got %s disabled=%v", i, days[i].Date, days[i].Disabled)
		}
	}
	for i := 32; i < 35; i++ {
		if days[i].Date.Month() != time.October || !days[i].Disabled {
			t.Fatalf("trailing cell %d: got %s disabled=%v", i, days[i].Date, days[i].Disabled)
		}
	}
	if days[2].Date.Day() != 1 || days[31].Date.Day() != 30 {
		t.Fatalf("in-month cells misplaced: first=%s last=%s", days[2].Date, days[31].Date)
	}
}

func TestMonthGrid_ThirtyDayMonthStartingWednesday(t *testing.T) {
	// April 2026 has 30 days and starts on Wednesday (weekday 3): 3 leading cells,
	// 33 in total so far, padded to 35 with 2 trailing cells.
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	days := flatten(MonthGrid(2026, time.April, now, nil))

	leading := 0
	for _, d := range days {
		if d.Date.Month() == time.April {
			break
		}
		leading++
	}
	if leading != 3 {
		t.Fatalf("expected 3 leading padding cells, got %d", leading)
	}
	if len(days) != 35 {
		t.Fatalf("expected 35 cells, got %d", len(days))
	}
}

func TestMonthGrid_NoLeadingPaddingWhenMonthStartsSunday(t *testing.T) {
	// February 2026 starts on a Sunday and ends on a Saturday: exactly 4 weeks, no padding.
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	days := flatten(MonthGrid(2026, time.February, now, nil))

	if len(days) != 28 {
		t.Fatalf("expected 28 cells, got %d", len(days))
	}
	if days[0].Date.Month() != time.February || days[0].Date.Day() != 1 {
		t.Fatalf("expected grid to start on Feb 1, got %s", days[0].Date)
	}
	if days[27].Date.Month() != time.February || days[27].Date.Day() != 28 {
		t.Fatalf("expected grid to end on Feb 28, got %s", days[27].Date)
	}
}

func TestMonthGrid_BlockedWeekdaysDisabled(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	blocked := []time.Weekday{time.Saturday, time.Sunday}
	days := flatten(MonthGrid(2026, time.March, now, blocked))

	for _, d := range days {
		if d.Date.Month() != time.March {
			continue
		}
		wd := d.Date.Weekday()
		if (wd == time.Saturday || wd == time.Sunday) && !d.Disabled {
			t.Fatalf("blocked weekday %s on %s should be disabled", wd, d.Date)
		}
		if wd != time.Saturday && wd != time.Sunday && d.Disabled {
			t.Fatalf("open weekday %s on %s should be enabled", wd, d.Date)
		}
	}
}

func TestMonthGrid_PastDaysDisabled(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	days := flatten(MonthGrid(2026, time.March, now, nil))

	for _, d := range days {
		if d.Date.Month() != time.March {
			continue
		}
		switch {
		case d.Date.Day() < 15 && !d.Disabled:
			t.Fatalf("elapsed day %s should be disabled", d.Date)
		case d.Date.Day() >= 15 && d.Disabled:
			// The 15th itself stays enabled: the end-of-day comparison keeps the
			// current day selectable.
			t.Fatalf("day %s should be enabled", d.Date)
		}
	}
}
