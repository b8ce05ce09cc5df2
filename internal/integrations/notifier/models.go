package notifier

import "time"

// EventType тип уведомления о бронировании
type EventType string

const (
	EventBookingCreated     EventType = "created"
	EventBookingRescheduled EventType = "rescheduled"
	EventBookingCancelled   EventType = "cancelled"
)

// BookingEvent уведомление об изменении расписания проекта
type BookingEvent struct {
	EventID       string     `json:"event_id"`
	Type          EventType  `json:"event_type"`
	ProjectID     int64      `json:"project_id"`
	ProjectNumber int64      `json:"project_number"`
	ClientID      int64      `json:"client_id"`
	Start         *time.Time `json:"start_datetime,omitempty"`
	End           *time.Time `json:"end_datetime,omitempty"`
	OccurredAt    time.Time  `json:"occurred_at"`
}
