package domain

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-StudioScheduler/pkg/types"
)

func at(hour, minute int) time.Time {
	return time.Date(2026, 10, 20, hour, minute, 0, 0, time.UTC)
}

func TestInterval_Overlaps(t *testing.T) {
	base := Interval{Start: at(10, 0), End: at(11, 0)}

	tests := []struct {
		name  string
		other Interval
		want  bool
	}{
		{name: "same interval", other: base, want: true},
		{name: "partial overlap at start", other: Interval{Start: at(9, 30), End: at(10, 30)}, want: true},
		{name: "partial overlap at end", other: Interval{Start: at(10, 30), End: at(11, 30)}, want: true},
		{name: "contained", other: Interval{Start: at(10, 15), End: at(10, 45)}, want: true},
		{name: "containing", other: Interval{Start: at(9, 0), End: at(12, 0)}, want: true},
		{name: "back to back after", other: Interval{Start: at(11, 0), End: at(12, 0)}, want: false},
		{name: "back to back before", other: Interval{Start: at(9, 0), End: at(10, 0)}, want: false},
		{name: "disjoint", other: Interval{Start: at(13, 0), End: at(14, 0)}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.Overlaps(tt.other))
			assert.Equal(t, tt.want, tt.other.Overlaps(base))
		})
	}
}

func TestInterval_Within(t *testing.T) {
	window := Interval{Start: at(9, 0), End: at(17, 0)}

	assert.True(t, Interval{Start: at(9, 0), End: at(10, 0)}.Within(window))
	assert.True(t, Interval{Start: at(16, 0), End: at(17, 0)}.Within(window))
	assert.True(t, window.Within(window))
	assert.False(t, Interval{Start: at(8, 30), End: at(9, 30)}.Within(window))
	assert.False(t, Interval{Start: at(16, 30), End: at(17, 30)}.Within(window))
	assert.False(t, Interval{Start: at(3, 0), End: at(4, 0)}.Within(window))
}

func TestSchedulingState_Transitions(t *testing.T) {
	assert.True(t, SchedulingRequested.CanTransitionTo(SchedulingConfirmed))
	assert.True(t, SchedulingConfirmed.CanTransitionTo(SchedulingRescheduled))
	assert.True(t, SchedulingRescheduled.CanTransitionTo(SchedulingConfirmed))
	assert.True(t, SchedulingConfirmed.CanTransitionTo(SchedulingCancelled))

	assert.False(t, SchedulingRequested.CanTransitionTo(SchedulingCancelled))
	assert.False(t, SchedulingCancelled.CanTransitionTo(SchedulingConfirmed))
	assert.True(t, SchedulingCancelled.IsTerminal())
}

func TestAvailabilityWindow_On(t *testing.T) {
	breakStart := types.TimeString("12:00")
	breakEnd := types.TimeString("13:00")
	w := &AvailabilityWindow{
		DayOfWeek:  time.Tuesday,
		StartTime:  "10:00",
		EndTime:    "18:00",
		BreakStart: &breakStart,
		BreakEnd:   &breakEnd,
	}

	day := at(0, 0)
	assert.Equal(t, Interval{Start: at(10, 0), End: at(18, 0)}, w.On(day))

	br, ok := w.BreakOn(day)
	assert.True(t, ok)
	assert.Equal(t, Interval{Start: at(12, 0), End: at(13, 0)}, br)

	def := DefaultAvailabilityWindow(time.Sunday)
	assert.False(t, def.HasBreak())
	assert.Equal(t, Interval{Start: at(9, 0), End: at(17, 0)}, def.On(day))
}

func TestOutcomeOf(t *testing.T) {
	assert.Equal(t, OutcomeSuccess, OutcomeOf(nil))
	assert.Equal(t, OutcomeInvalid, OutcomeOf(fmt.Errorf("create: %w", ErrValidation)))
	assert.Equal(t, OutcomeNotFound, OutcomeOf(ErrProjectNotFound))
	assert.Equal(t, OutcomeSlotUnavailable, OutcomeOf(fmt.Errorf("x: %w", ErrSlotUnavailable)))
	assert.Equal(t, OutcomeHardDependency, OutcomeOf(fmt.Errorf("x: %w: %w", ErrHardDependency, errors.New("db down"))))
	assert.Equal(t, OutcomeError, OutcomeOf(errors.New("other")))
}
