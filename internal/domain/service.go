package domain

// Service is a bookable session type; its duration defines the slot length
type Service struct {
	ID              int64
	Name            string
	DurationMinutes int
	IsActive        bool
}
