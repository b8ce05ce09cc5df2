package domain

import "time"

// SessionStatus represents the status of a session
type SessionStatus string

const (
	SessionStatusConfirmed SessionStatus = "confirmed"
	SessionStatusTentative SessionStatus = "tentative"
	SessionStatusCompleted SessionStatus = "completed"
	SessionStatusCancelled SessionStatus = "cancelled"
)

// Session mirrors the Booking interval for the downstream studio workflow
type Session struct {
	ID                      int64
	ProjectID               int64
	ClientID                int64
	StartDatetime           time.Time
	EndDatetime             time.Time
	Status                  SessionStatus
	ExternalCalendarEventID *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Interval returns the session [start, end) interval
func (s *Session) Interval() Interval {
	return Interval{Start: s.StartDatetime, End: s.EndDatetime}
}

// HasExternalEvent returns true if the session points to a remote calendar event
func (s *Session) HasExternalEvent() bool {
	return s.ExternalCalendarEventID != nil && *s.ExternalCalendarEventID != ""
}

// IsActive returns true if the session still occupies its interval
func (s *Session) IsActive() bool {
	return s.Status == SessionStatusConfirmed || s.Status == SessionStatusTentative
}
