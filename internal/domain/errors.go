package domain

import "errors"

// Error taxonomy shared by the scheduling use cases.
// Only ErrValidation, ErrSlotUnavailable and ErrHardDependency reach the caller;
// ErrExternalSync and ErrCascadePartialFailure are logged and absorbed.
var (
	ErrValidation            = errors.New("validation error")
	ErrSlotUnavailable       = errors.New("slot no longer available")
	ErrHardDependency        = errors.New("hard dependency failure")
	ErrExternalSync          = errors.New("external calendar sync failed")
	ErrCascadePartialFailure = errors.New("dependent record deletion failed")
	ErrProjectNotFound       = errors.New("project not found")
)

// Outcome labels for operation metrics
const (
	OutcomeSuccess         = "success"
	OutcomeInvalid         = "invalid"
	OutcomeNotFound        = "not_found"
	OutcomeSlotUnavailable = "slot_unavailable"
	OutcomeHardDependency  = "hard_dependency"
	OutcomeError           = "error"
)

// OutcomeOf classifies an operation result for metrics
func OutcomeOf(err error) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, ErrValidation):
		return OutcomeInvalid
	case errors.Is(err, ErrProjectNotFound):
		return OutcomeNotFound
	case errors.Is(err, ErrSlotUnavailable):
		return OutcomeSlotUnavailable
	case errors.Is(err, ErrHardDependency):
		return OutcomeHardDependency
	default:
		return OutcomeError
	}
}
