package schedule

import (
	"errors"
	"time"
)

var (
	ErrSlotInPast = errors.New("slot is in the past")
	ErrSlotTaken  = errors.New("slot is already booked")
)

// SlotStart normalizes an instant to the start of its hour in UTC. Every booking is
// stored at such an instant.
func SlotStart(t time.Time) time.Time {
	return t.UTC().Truncate(time.Hour)
}

// ClaimSlot decides whether the requested instant can be booked: the instant is
// normalized to the start of its hour, a slot already behind now is rejected, and an
// exact match against any already-booked instant is a conflict. Returns the normalized
// slot on success.
//
// Under concurrency the decision is advisory; the storage layer's unique
// (host_id, start_time) constraint settles races.
func ClaimSlot(requested time.Time, booked []time.Time, now time.Time) (time.Time, error) {
	slot := SlotStart(requested)
	if slot.Before(now) {
		return time.Time{}, ErrSlotInPast
	}
	for _, b := range booked {
		if b.Equal(slot) {
			return time.Time{}, ErrSlotTaken
		}
	}
	return slot, nil
}
