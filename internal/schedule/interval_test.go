package schedule

import (
	"testing"
	"time"
)

func TestIntervalValidate(t *testing.T) {
	cases := []struct {
		name     string
		interval Interval
		wantErr  bool
	}{
		{"valid", Interval{Weekday: time.Monday, StartMinute: 480, EndMinute: 1080}, false},
		{"full day", Interval{Weekday: time.Sunday, StartMinute: 0, EndMinute: 1440}, false},
		{"weekday too large", Interval{Weekday: 7, StartMinute: 480, EndMinute: 1080}, true},
		{"negative start", Interval{Weekday: time.Monday, StartMinute: -10, EndMinute: 60}, true},
		{"end past midnight", Interval{Weekday: time.Monday, StartMinute: 1380, EndMinute: 1500}, true},
		{"start after end", Interval{Weekday: time.Monday, StartMinute: 600, EndMinute: 480}, true},
		{"shorter than an hour", Interval{Weekday: time.Monday, StartMinute: 480, EndMinute: 510}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.interval.Validate()
			if tc.wantErr && err == nil {
				t.Fatal("expected validation error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestIntervalHourConversionRoundsDown(t *testing.T) {
	iv := Interval{Weekday: time.Monday, StartMinute: 510, EndMinute: 1095} // 08:30-18:15
	if iv.StartHour() != 8 {
		t.Fatalf("expected start hour 8, got %d", iv.StartHour())
	}
	if iv.EndHour() != 18 {
		t.Fatalf("expected end hour 18, got %d", iv.EndHour())
	}
}

func TestNewWeekPlan_RejectsDuplicateWeekday(t *testing.T) {
	_, err := NewWeekPlan([]Interval{
		{Weekday: time.Monday, StartMinute: 480, EndMinute: 720},
		{Weekday: time.Monday, StartMinute: 780, EndMinute: 1080},
	})
	if err == nil {
		t.Fatal("expected duplicate weekday error")
	}
}

func TestWeekPlanLookup(t *testing.T) {
	plan, err := NewWeekPlan([]Interval{
		{Weekday: time.Tuesday, StartMinute: 540, EndMinute: 1020},
	})
	if err != nil {
		t.Fatalf("NewWeekPlan failed: %v", err)
	}

	iv, ok := plan.Lookup(time.Tuesday)
	if !ok || iv.StartMinute != 540 || iv.EndMinute != 1020 {
		t.Fatalf("expected configured interval, got %+v ok=%v", iv, ok)
	}
	if _, ok := plan.Lookup(time.Wednesday); ok {
		t.Fatal("expected no interval for Wednesday")
	}
	if _, ok := plan.Lookup(-1); ok {
		t.Fatal("expected no interval for out-of-range weekday")
	}

	days := plan.Weekdays()
	if len(days) != 1 || days[0] != time.Tuesday {
		t.Fatalf("expected [Tuesday], got %v", days)
	}
}
