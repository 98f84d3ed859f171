package schedule

import (
	"testing"
	"time"
)

func TestBlockedWeekdays_EmptyPlanBlocksAll(t *testing.T) {
	blocked := BlockedWeekdays(WeekPlan{})
	if len(blocked) != 7 {
		t.Fatalf("expected all 7 weekdays blocked, got %v", blocked)
	}
	for i, wd := range blocked {
		if wd != time.Weekday(i) {
			t.Fatalf("expected ascending weekdays, got %v", blocked)
		}
	}
}

func TestBlockedWeekdays_FullPlanBlocksNone(t *testing.T) {
	var intervals []Interval
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		intervals = append(intervals, Interval{Weekday: wd, StartMinute: 540, EndMinute: 1020})
	}
	plan, err := NewWeekPlan(intervals)
	if err != nil {
		t.Fatalf("NewWeekPlan failed: %v", err)
	}
	if blocked := BlockedWeekdays(plan); len(blocked) != 0 {
		t.Fatalf("expected no blocked weekdays, got %v", blocked)
	}
}

func TestBlockedWeekdays_Complement(t *testing.T) {
	plan, err := NewWeekPlan([]Interval{
		{Weekday: time.Monday, StartMinute: 480, EndMinute: 1080},
		{Weekday: time.Wednesday, StartMinute: 480, EndMinute: 1080},
		{Weekday: time.Friday, StartMinute: 480, EndMinute: 1080},
	})
	if err != nil {
		t.Fatalf("NewWeekPlan failed: %v", err)
	}

	blocked := BlockedWeekdays(plan)
	want := []time.Weekday{time.Sunday, time.Tuesday, time.Thursday, time.Saturday}
	if len(blocked) != len(want) {
		t.Fatalf("expected %v, got %v", want, blocked)
	}
	for i := range want {
		if blocked[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, blocked)
		}
	}
}
