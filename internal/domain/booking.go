package domain

import "time"

// Booking is the calendar-facing record of a scheduled project
type Booking struct {
	ID                      int64
	ProjectID               int64
	ClientID                int64
	StartDatetime           time.Time
	EndDatetime             time.Time
	ExternalCalendarEventID *string // set after a successful calendar sync

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Interval returns the booked [start, end) interval
func (b *Booking) Interval() Interval {
	return Interval{Start: b.StartDatetime, End: b.EndDatetime}
}

// HasExternalEvent returns true if the booking points to a remote calendar event
func (b *Booking) HasExternalEvent() bool {
	return b.ExternalCalendarEventID != nil && *b.ExternalCalendarEventID != ""
}
