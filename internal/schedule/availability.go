package schedule

import "time"

// Availability lists the hourly slots of a single day. AvailableTimes is always an
// order-preserving subsequence of PossibleTimes.
type Availability struct {
	PossibleTimes  []int
	AvailableTimes []int
}

// DayPassed reports whether the date's end of day is already behind now. A day whose
// end has passed is never bookable, so callers can skip loading intervals and bookings
// for it.
func DayPassed(date, now time.Time) bool {
	return endOfDay(date).Before(now)
}

// DayAvailability computes the bookable hours of one date against the host's week plan
// and that day's existing bookings.
//
// Booked is the set of booking instants already fetched for the date; a booking
// occupying hour H removes exactly H from availability. The comparison is on the hour
// component alone, which is sound only while every booking is exactly one hour long and
// hour-aligned.
func DayAvailability(date time.Time, plan WeekPlan, booked []time.Time, now time.Time) Availability {
	empty := Availability{PossibleTimes: []int{}, AvailableTimes: []int{}}

	if DayPassed(date, now) {
		return empty
	}

	interval, ok := plan.Lookup(date.Weekday())
	if !ok {
		return empty
	}

	startHour := interval.StartHour()
	endHour := interval.EndHour()

	possible := make([]int, 0, endHour-startHour)
	for h := startHour; h < endHour; h++ {
		possible = append(possible, h)
	}

	var bookedHours [24]bool
	for _, b := range booked {
		bookedHours[b.Hour()] = true
	}

	available := make([]int, 0, len(possible))
	for _, h := range possible {
		if !bookedHours[h] {
			available = append(available, h)
		}
	}

	return Availability{PossibleTimes: possible, AvailableTimes: available}
}
