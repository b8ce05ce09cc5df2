package domain

// SchedulingState is the scheduling aspect of a project
type SchedulingState string

const (
	SchedulingRequested   SchedulingState = "requested"
	SchedulingConfirmed   SchedulingState = "confirmed"
	SchedulingRescheduled SchedulingState = "rescheduled"
	SchedulingCancelled   SchedulingState = "cancelled"
)

var schedulingTransitions = map[SchedulingState][]SchedulingState{
	SchedulingRequested:   {SchedulingConfirmed},
	SchedulingConfirmed:   {SchedulingRescheduled, SchedulingCancelled},
	SchedulingRescheduled: {SchedulingConfirmed},
}

// CanTransitionTo reports whether the state machine allows s -> next
func (s SchedulingState) CanTransitionTo(next SchedulingState) bool {
	for _, allowed := range schedulingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal returns true for states that never move again
func (s SchedulingState) IsTerminal() bool {
	return s == SchedulingCancelled
}
