package schedule

import "time"

// BlockedWeekdays returns the weekdays with no configured interval, in ascending order.
// Those days are blocked in every month until the host configures a window; an empty
// plan blocks all seven.
func BlockedWeekdays(plan WeekPlan) []time.Weekday {
	blocked := make([]time.Weekday, 0, 7)
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		if _, ok := plan.Lookup(wd); !ok {
			blocked = append(blocked, wd)
		}
	}
	return blocked
}
