package schedule

import (
	"fmt"
	"time"
)

// Weekday indices follow time.Weekday: 0 = Sunday .. 6 = Saturday. Every component in
// this package (and the storage layer) shares that convention; host intervals are stored
// with the same numbering.

const minutesPerDay = 24 * 60

// Interval is a host's working-hour window for one weekday, expressed in minutes from
// midnight. A host has at most one interval per weekday.
type Interval struct {
	Weekday     time.Weekday
	StartMinute int
	EndMinute   int
}

// StartHour and EndHour convert the minute bounds to whole hours. Integer division
// truncates, so a window not aligned to hour boundaries rounds both ends down.
func (iv Interval) StartHour() int { return iv.StartMinute / 60 }

func (iv Interval) EndHour() int { return iv.EndMinute / 60 }

func (iv Interval) Validate() error {
	if iv.Weekday < time.Sunday || iv.Weekday > time.Saturday {
		return fmt.Errorf("weekday %d out of range", iv.Weekday)
	}
	if iv.StartMinute < 0 || iv.EndMinute > minutesPerDay {
		return fmt.Errorf("interval %d-%d outside the day", iv.StartMinute, iv.EndMinute)
	}
	if iv.StartMinute >= iv.EndMinute {
		return fmt.Errorf("interval start %d must be before end %d", iv.StartMinute, iv.EndMinute)
	}
	if iv.EndMinute-iv.StartMinute < 60 {
		return fmt.Errorf("interval %d-%d is shorter than one hour", iv.StartMinute, iv.EndMinute)
	}
	return nil
}

// WeekPlan indexes a host's working-hour intervals by weekday. It is loaded wholesale
// before any query and never mutated afterwards.
type WeekPlan struct {
	intervals [7]Interval
	set       [7]bool
}

func NewWeekPlan(intervals []Interval) (WeekPlan, error) {
	var plan WeekPlan
	for _, iv := range intervals {
		if err := iv.Validate(); err != nil {
			return WeekPlan{}, err
		}
		if plan.set[iv.Weekday] {
			return WeekPlan{}, fmt.Errorf("duplicate interval for weekday %d", iv.Weekday)
		}
		plan.intervals[iv.Weekday] = iv
		plan.set[iv.Weekday] = true
	}
	return plan, nil
}

// Lookup returns the interval configured for the given weekday, if any.
func (p WeekPlan) Lookup(weekday time.Weekday) (Interval, bool) {
	if weekday < time.Sunday || weekday > time.Saturday {
		return Interval{}, false
	}
	return p.intervals[weekday], p.set[weekday]
}

// Weekdays returns the configured weekdays in ascending order.
func (p WeekPlan) Weekdays() []time.Weekday {
	var days []time.Weekday
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		if p.set[wd] {
			days = append(days, wd)
		}
	}
	return days
}
