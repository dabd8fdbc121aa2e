package models

import "time"

// User is a requester known to the ledger. A record is created (or its age
// refreshed) at the start of every booking attempt naming the user, and it
// persists for the rest of the run.
type User struct {
	Name string `json:"name"`
	Age  int    `json:"age"`

	// LastCancellation is the instant of the user's most recent
	// cancellation-completing event: an immediate release, a queued deferred
	// request, or a waitlist promotion (which stamps the promoting booking's
	// instant). Zero until the first such event.
	LastCancellation time.Time `json:"-"`

	// BookingHistory holds the instants of the user's successful bookings in
	// chronological order. The most recent entry decides premium eligibility.
	BookingHistory []time.Time `json:"-"`
}

// NewUser creates a ledger record for the named requester.
func NewUser(name string, age int) *User {
	return &User{Name: name, Age: age}
}

// RecordBooking appends a booking instant to the user's history.
func (u *User) RecordBooking(at time.Time) {
	u.BookingHistory = append(u.BookingHistory, at)
}

// RemoveBooking removes the first history entry equal to the instant.
// Called on immediate cancellation; eviction and deferred cancellation leave
// the history untouched.
func (u *User) RemoveBooking(at time.Time) {
	for i, t := range u.BookingHistory {
		if t.Equal(at) {
			u.BookingHistory = append(u.BookingHistory[:i], u.BookingHistory[i+1:]...)
			return
		}
	}
}

// LastBooking returns the most recent booking instant and whether one exists.
func (u *User) LastBooking() (time.Time, bool) {
	if len(u.BookingHistory) == 0 {
		return time.Time{}, false
	}
	return u.BookingHistory[len(u.BookingHistory)-1], true
}
