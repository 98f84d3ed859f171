package model

import "time"

// Host is the owner of a public scheduling page.
type Host struct {
	ID        string
	Name      string
	Username  string
	CreatedAt time.Time
}

// TimeInterval is a host's stored working-hour window for one weekday.
// Weekday follows time.Weekday numbering (0 = Sunday).
type TimeInterval struct {
	HostID      string
	Weekday     int
	StartMinute int
	EndMinute   int
}

// Booking is a confirmed one-hour appointment. StartTime is hour-aligned; the end is
// StartTime plus one hour by convention. Bookings are immutable once created.
type Booking struct {
	ID            string
	HostID        string
	ObserverName  string
	ObserverEmail string
	Observations  string
	StartTime     time.Time
	CreatedAt     time.Time
}
