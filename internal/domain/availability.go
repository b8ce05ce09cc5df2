package domain

import (
	"time"

	"github.com/m04kA/SMC-StudioScheduler/pkg/types"
)

// AvailabilityWindow is one row of the weekly working-hour template
type AvailabilityWindow struct {
	DayOfWeek  time.Weekday // 0 = Sunday ... 6 = Saturday
	StartTime  types.TimeString
	EndTime    types.TimeString
	BreakStart *types.TimeString
	BreakEnd   *types.TimeString
}

// DefaultAvailabilityWindow returns the 09:00-17:00 window used when none is configured
func DefaultAvailabilityWindow(day time.Weekday) *AvailabilityWindow {
	return &AvailabilityWindow{
		DayOfWeek: day,
		StartTime: DefaultWindowStart,
		EndTime:   DefaultWindowEnd,
	}
}

// HasBreak returns true if a break window is configured
func (w *AvailabilityWindow) HasBreak() bool {
	return w.BreakStart != nil && w.BreakEnd != nil
}

// On anchors the window to the calendar day of date
func (w *AvailabilityWindow) On(date time.Time) Interval {
	return Interval{Start: w.StartTime.On(date), End: w.EndTime.On(date)}
}

// BreakOn anchors the break window to the calendar day of date
func (w *AvailabilityWindow) BreakOn(date time.Time) (Interval, bool) {
	if !w.HasBreak() {
		return Interval{}, false
	}
	return Interval{Start: w.BreakStart.On(date), End: w.BreakEnd.On(date)}, true
}
