package schedule

import "time"

// CalendarDay is one selectable cell of the month grid. Padding days from adjacent
// months are always disabled; in-month days are disabled once their end of day has
// passed or their weekday is blocked.
type CalendarDay struct {
	Date     time.Time
	Disabled bool
}

// CalendarWeek is a full row of seven days, numbered from 1.
type CalendarWeek struct {
	Week int
	Days []CalendarDay
}

// MonthGrid builds the week-by-week grid for a month: the month's days plus enough
// trailing days of the previous month and leading days of the next month to complete
// the first and last rows. The flattened grid length is always a multiple of 7.
//
// All dates are produced at midnight in now's location.
func MonthGrid(year int, month time.Month, now time.Time, blocked []time.Weekday) []CalendarWeek {
	loc := now.Location()
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	last := first.AddDate(0, 1, -1)

	var blockedSet [7]bool
	for _, wd := range blocked {
		if wd >= time.Sunday && wd <= time.Saturday {
			blockedSet[wd] = true
		}
	}

	daysInMonth := last.Day()
	leading := int(first.Weekday())
	trailing := 6 - int(last.Weekday())

	days := make([]CalendarDay, 0, leading+daysInMonth+trailing)
	for i := leading; i > 0; i-- {
		days = append(days, CalendarDay{Date: first.AddDate(0, 0, -i), Disabled: true})
	}
	for d := 0; d < daysInMonth; d++ {
		date := first.AddDate(0, 0, d)
		disabled := endOfDay(date).Before(now) || blockedSet[date.Weekday()]
		days = append(days, CalendarDay{Date: date, Disabled: disabled})
	}
	for i := 1; i <= trailing; i++ {
		days = append(days, CalendarDay{Date: last.AddDate(0, 0, i), Disabled: true})
	}

	weeks := make([]CalendarWeek, 0, len(days)/7)
	for i := 0; i < len(days); i += 7 {
		weeks = append(weeks, CalendarWeek{Week: i/7 + 1, Days: days[i : i+7]})
	}
	return weeks
}

func endOfDay(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location()).
		AddDate(0, 0, 1).Add(-time.Nanosecond)
}
