package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioScheduler/internal/domain"
	"github.com/m04kA/SMC-StudioScheduler/pkg/types"
)

var testDay = time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC) // вторник

func clock(hour, minute int) time.Time {
	return testDay.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

func starts(intervals []domain.Interval) []string {
	out := make([]string, len(intervals))
	for i, iv := range intervals {
		out[i] = iv.Start.Format(domain.TimeFormat)
	}
	return out
}

func confirmed(start, end time.Time) domain.Commitment {
	return domain.Commitment{
		Kind:     domain.CommitmentSession,
		Interval: domain.Interval{Start: start, End: end},
		Status:   domain.CommitmentConfirmed,
	}
}

func TestGenerateCandidates_DefaultWindow(t *testing.T) {
	candidates := GenerateCandidates(testDay, 60, nil, 30)

	require.Len(t, candidates, 15)
	assert.Equal(t, clock(9, 0), candidates[0].Start)
	assert.Equal(t, clock(10, 0), candidates[0].End)
	assert.Equal(t, clock(16, 0), candidates[14].Start)
	assert.Equal(t, clock(17, 0), candidates[14].End)
}

func TestGenerateCandidates_StayInsideWindow(t *testing.T) {
	window := &domain.AvailabilityWindow{
		DayOfWeek: time.Tuesday,
		StartTime: "10:00",
		EndTime:   "13:15",
	}

	for _, duration := range []int{15, 45, 60, 90, 195} {
		for _, granularity := range []int{15, 30, 60} {
			candidates := GenerateCandidates(testDay, duration, window, granularity)
			require.NotEmpty(t, candidates)

			for i, c := range candidates {
				assert.False(t, c.Start.Before(clock(10, 0)), "duration=%d start=%s", duration, c.Start)
				assert.False(t, c.End.After(clock(13, 15)), "duration=%d end=%s", duration, c.End)
				assert.Equal(t, time.Duration(duration)*time.Minute, c.Duration())
				if i > 0 {
					assert.Equal(t, time.Duration(granularity)*time.Minute, c.Start.Sub(candidates[i-1].Start))
				}
			}
		}
	}
}

func TestGenerateCandidates_EdgeCases(t *testing.T) {
	window := &domain.AvailabilityWindow{DayOfWeek: time.Tuesday, StartTime: "09:00", EndTime: "10:00"}

	assert.Empty(t, GenerateCandidates(testDay, 0, window, 30))
	assert.Empty(t, GenerateCandidates(testDay, 90, window, 30), "duration longer than window")
	assert.Len(t, GenerateCandidates(testDay, 60, window, 30), 1, "exact fit")
	assert.Len(t, GenerateCandidates(testDay, 30, window, 0), 2, "non-positive granularity falls back to default")
}

func TestGenerateCandidates_IsRestartable(t *testing.T) {
	first := GenerateCandidates(testDay, 60, nil, 30)
	second := GenerateCandidates(testDay, 60, nil, 30)

	assert.Equal(t, first, second)
}

func TestFilterAvailable_ConcreteScenario(t *testing.T) {
	candidates := GenerateCandidates(testDay, 60, nil, 30)
	commitments := []domain.Commitment{confirmed(clock(10, 0), clock(11, 0))}

	accepted := FilterAvailable(candidates, commitments, testDay)

	assert.Equal(t, []string{
		"09:00", "11:00", "11:30", "12:00", "12:30", "13:00",
		"13:30", "14:00", "14:30", "15:00", "15:30", "16:00",
	}, starts(accepted))
}

func TestFilterAvailable_NoOverlapWithConfirmed(t *testing.T) {
	candidates := GenerateCandidates(testDay, 45, nil, 15)
	commitments := []domain.Commitment{
		confirmed(clock(9, 20), clock(9, 40)),
		confirmed(clock(12, 0), clock(14, 0)),
		confirmed(clock(16, 10), clock(16, 20)),
	}

	accepted := FilterAvailable(candidates, commitments, testDay)

	require.NotEmpty(t, accepted)
	for _, a := range accepted {
		for _, m := range commitments {
			assert.False(t, a.Start.Before(m.End) && m.Start.Before(a.End),
				"slot %s overlaps commitment %s", a.Start, m.Start)
		}
	}
}

func TestFilterAvailable_BackToBackAccepted(t *testing.T) {
	candidates := []domain.Interval{
		{Start: clock(9, 0), End: clock(10, 0)},
		{Start: clock(11, 0), End: clock(12, 0)},
	}
	commitments := []domain.Commitment{confirmed(clock(10, 0), clock(11, 0))}

	accepted := FilterAvailable(candidates, commitments, testDay)

	assert.Equal(t, []string{"09:00", "11:00"}, starts(accepted))
}

func TestFilterAvailable_RejectsPastAndNow(t *testing.T) {
	candidates := GenerateCandidates(testDay, 60, nil, 30)
	now := clock(11, 0)

	accepted := FilterAvailable(candidates, nil, now)

	require.NotEmpty(t, accepted)
	assert.Equal(t, "11:30", starts(accepted)[0], "slot starting exactly at now is rejected")
	for _, a := range accepted {
		assert.True(t, a.Start.After(now))
	}
}

func TestFilterAvailable_IgnoresUnconfirmed(t *testing.T) {
	candidates := []domain.Interval{{Start: clock(10, 0), End: clock(11, 0)}}
	commitments := []domain.Commitment{
		{Interval: domain.Interval{Start: clock(10, 0), End: clock(11, 0)}, Status: domain.CommitmentCancelled},
		{Interval: domain.Interval{Start: clock(10, 0), End: clock(11, 0)}, Status: domain.CommitmentTentative},
	}

	accepted := FilterAvailable(candidates, commitments, testDay)

	assert.Len(t, accepted, 1)
}

func TestBreakCommitment(t *testing.T) {
	breakStart := types.TimeString("13:00")
	breakEnd := types.TimeString("14:00")
	window := &domain.AvailabilityWindow{
		DayOfWeek:  time.Tuesday,
		StartTime:  "09:00",
		EndTime:    "17:00",
		BreakStart: &breakStart,
		BreakEnd:   &breakEnd,
	}

	block, ok := BreakCommitment(testDay, window)
	require.True(t, ok)
	assert.Equal(t, domain.CommitmentBlock, block.Kind)
	assert.True(t, block.IsConfirmed())

	accepted := FilterAvailable(GenerateCandidates(testDay, 60, window, 60), []domain.Commitment{block}, testDay)
	assert.Equal(t, []string{"09:00", "10:00", "11:00", "12:00", "14:00", "15:00", "16:00"}, starts(accepted))

	_, ok = BreakCommitment(testDay, domain.DefaultAvailabilityWindow(time.Tuesday))
	assert.False(t, ok)
}
