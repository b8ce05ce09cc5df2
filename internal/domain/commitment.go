package domain

// CommitmentKind distinguishes booked sessions from explicit blocks
type CommitmentKind string

const (
	CommitmentSession CommitmentKind = "session"
	CommitmentBlock   CommitmentKind = "block"
)

// CommitmentStatus represents the status of a commitment
type CommitmentStatus string

const (
	CommitmentConfirmed CommitmentStatus = "confirmed"
	CommitmentTentative CommitmentStatus = "tentative"
	CommitmentCancelled CommitmentStatus = "cancelled"
)

// Commitment is any existing interval that a new slot must not overlap
type Commitment struct {
	ID        int64
	Kind      CommitmentKind
	ProjectID *int64 // only for sessions
	Interval
	Status CommitmentStatus
	Reason *string // only for blocks
}

// IsConfirmed returns true if the commitment blocks its interval
func (c *Commitment) IsConfirmed() bool {
	return c.Status == CommitmentConfirmed
}
