package lock

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioScheduler/internal/domain"
)

func at(hour, minute int) time.Time {
	return time.Date(2026, 10, 20, hour, minute, 0, 0, time.UTC)
}

func TestKeys_CoverEveryBucket(t *testing.T) {
	l := NewSlotLocker(nil, time.Second, "slot-lock", 30)

	keys := l.Keys(domain.Interval{Start: at(10, 0), End: at(11, 0)})

	assert.Equal(t, []string{
		"{slot-lock}:2026-10-20T10:00:00Z",
		"{slot-lock}:2026-10-20T10:30:00Z",
	}, keys)
}

func TestKeys_OverlappingIntervalsShareBucket(t *testing.T) {
	l := NewSlotLocker(nil, time.Second, "slot-lock", 30)

	pairs := [][2]domain.Interval{
		{{Start: at(9, 0), End: at(10, 0)}, {Start: at(9, 30), End: at(10, 30)}},
		{{Start: at(9, 0), End: at(12, 0)}, {Start: at(10, 15), End: at(10, 45)}},
		{{Start: at(9, 10), End: at(9, 50)}, {Start: at(9, 40), End: at(10, 20)}},
	}

	for _, p := range pairs {
		require.True(t, p[0].Overlaps(p[1]))
		assert.NotEmpty(t, intersect(l.Keys(p[0]), l.Keys(p[1])), "%v / %v", p[0], p[1])
	}
}

func TestKeys_BackToBackDoNotShare(t *testing.T) {
	l := NewSlotLocker(nil, time.Second, "slot-lock", 30)

	a := l.Keys(domain.Interval{Start: at(10, 0), End: at(11, 0)})
	b := l.Keys(domain.Interval{Start: at(11, 0), End: at(12, 0)})

	assert.Empty(t, intersect(a, b))
}

func TestAcquire_RedisUnavailable(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = rdb.Close() })

	l := NewSlotLocker(rdb, time.Second, "slot-lock", 30)

	ctx, cancel := context.WithTimeout(t.Context(), time.Second)
	defer cancel()

	_, err := l.Acquire(ctx, domain.Interval{Start: at(10, 0), End: at(11, 0)})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrSlotLocked)
}

func TestNoop(t *testing.T) {
	lease, err := Noop{}.Acquire(t.Context(), domain.Interval{Start: at(10, 0), End: at(11, 0)})
	require.NoError(t, err)
	assert.NoError(t, lease.Release(t.Context()))
}

func intersect(a, b []string) []string {
	seen := make(map[string]bool, len(a))
	for _, k := range a {
		seen[k] = true
	}
	var out []string
	for _, k := range b {
		if seen[k] {
			out = append(out, k)
		}
	}
	return out
}
