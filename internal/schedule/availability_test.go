package schedule

import (
	"testing"
	"time"
)

func mondayPlan(t *testing.T) WeekPlan {
	t.Helper()
	plan, err := NewWeekPlan([]Interval{
		{Weekday: time.Monday, StartMinute: 480, EndMinute: 1080}, // 08:00-18:00
	})
	if err != nil {
		t.Fatalf("NewWeekPlan failed: %v", err)
	}
	return plan
}

func TestDayAvailability_NoBookings(t *testing.T) {
	plan := mondayPlan(t)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	monday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	got := DayAvailability(monday, plan, nil, now)

	want := []int{8, 9, 10, 11, 12, 13, 14, 15, 16, 17}
	if len(got.PossibleTimes) != len(want) {
		t.Fatalf("expected %d possible times, got %v", len(want), got.PossibleTimes)
	}
	for i, h := range want {
		if got.PossibleTimes[i] != h {
			t.Fatalf("possible times mismatch at %d: got %v", i, got.PossibleTimes)
		}
		if got.AvailableTimes[i] != h {
			t.Fatalf("available times mismatch at %d: got %v", i, got.AvailableTimes)
		}
	}
}

func TestDayAvailability_BookedHourRemoved(t *testing.T) {
	plan := mondayPlan(t)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	monday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	booked := []time.Time{monday.Add(10 * time.Hour)}

	got := DayAvailability(monday, plan, booked, now)

	if len(got.AvailableTimes) != len(got.PossibleTimes)-1 {
		t.Fatalf("expected one hour removed, got %v", got.AvailableTimes)
	}
	for _, h := range got.AvailableTimes {
		if h == 10 {
			t.Fatalf("hour 10 should be booked, got %v", got.AvailableTimes)
		}
	}
}

func TestDayAvailability_PastDateEmpty(t *testing.T) {
	plan := mondayPlan(t)
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	pastMonday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	got := DayAvailability(pastMonday, plan, nil, now)
	if len(got.PossibleTimes) != 0 || len(got.AvailableTimes) != 0 {
		t.Fatalf("expected empty availability for past date, got %+v", got)
	}
}

func TestDayPassed(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	if DayPassed(day, day.Add(23*time.Hour+59*time.Minute)) {
		t.Fatal("day should not be passed before its end")
	}
	if !DayPassed(day, day.AddDate(0, 0, 1)) {
		t.Fatal("day should be passed once the next day starts")
	}
}

func TestDayAvailability_TodayNotPast(t *testing.T) {
	// End-of-day comparison: the current day stays computable even late in the day.
	plan := mondayPlan(t)
	monday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	now := monday.Add(23 * time.Hour)

	got := DayAvailability(monday, plan, nil, now)
	if len(got.PossibleTimes) == 0 {
		t.Fatal("expected possible times for the current day")
	}
}

func TestDayAvailability_NoIntervalEmpty(t *testing.T) {
	plan := mondayPlan(t)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tuesday := time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)

	got := DayAvailability(tuesday, plan, nil, now)
	if len(got.PossibleTimes) != 0 || len(got.AvailableTimes) != 0 {
		t.Fatalf("expected empty availability without an interval, got %+v", got)
	}
}

func TestDayAvailability_Subsequence(t *testing.T) {
	plan := mondayPlan(t)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	monday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	booked := []time.Time{
		monday.Add(8 * time.Hour),
		monday.Add(12 * time.Hour),
		monday.Add(17 * time.Hour),
	}

	got := DayAvailability(monday, plan, booked, now)

	// Every available time must appear in possible times, in the same order.
	i := 0
	for _, h := range got.AvailableTimes {
		found := false
		for ; i < len(got.PossibleTimes); i++ {
			if got.PossibleTimes[i] == h {
				found = true
				i++
				break
			}
		}
		if !found {
			t.Fatalf("available %v is not a subsequence of possible %v", got.AvailableTimes, got.PossibleTimes)
		}
	}
}

func TestDayAvailability_Idempotent(t *testing.T) {
	plan := mondayPlan(t)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	monday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	booked := []time.Time{monday.Add(9 * time.Hour)}

	first := DayAvailability(monday, plan, booked, now)
	second := DayAvailability(monday, plan, booked, now)

	if len(first.PossibleTimes) != len(second.PossibleTimes) ||
		len(first.AvailableTimes) != len(second.AvailableTimes) {
		t.Fatalf("identical inputs produced different outputs: %+v vs %+v", first, second)
	}
	for i := range first.AvailableTimes {
		if first.AvailableTimes[i] != second.AvailableTimes[i] {
			t.Fatalf("identical inputs produced different outputs: %+v vs %+v", first, second)
		}
	}
}
