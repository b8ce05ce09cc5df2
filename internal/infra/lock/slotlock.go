package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-StudioScheduler/internal/domain"
)

// Все ключи захватываются одним скриптом: либо свободны все, либо ни один не ставится
var acquireScript = redis.NewScript(`
for i, key in ipairs(KEYS) do
  if redis.call("EXISTS", key) == 1 then
    return 0
  end
end
for i, key in ipairs(KEYS) do
  redis.call("SET", key, ARGV[1], "PX", ARGV[2])
end
return 1
`)

// Удаляются только ключи, которые все еще принадлежат владельцу токена
var releaseScript = redis.NewScript(`
local removed = 0
for i, key in ipairs(KEYS) do
  if redis.call("GET", key) == ARGV[1] then
    removed = removed + redis.call("DEL", key)
  end
end
return removed
`)

// Lease захваченная резервация интервала
type Lease interface {
	Release(ctx context.Context) error
}

// SlotLocker кратковременно резервирует интервал на время записи бронирования.
// Интервал делится на корзины по granularity; пересекающиеся интервалы всегда делят хотя бы одну корзину.
type SlotLocker struct {
	rdb         redis.Scripter
	ttl         time.Duration
	prefix      string
	granularity time.Duration
}

// NewSlotLocker создает блокировку слотов поверх Redis
func NewSlotLocker(rdb redis.Scripter, ttl time.Duration, prefix string, granularityMinutes int) *SlotLocker {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	if granularityMinutes <= 0 {
		granularityMinutes = domain.DefaultGranularityMinutes
	}
	return &SlotLocker{
		rdb:         rdb,
		ttl:         ttl,
		prefix:      prefix,
		granularity: time.Duration(granularityMinutes) * time.Minute,
	}
}

// Acquire резервирует интервал. Возвращает ErrSlotLocked, если его уже держит другой запрос
func (l *SlotLocker) Acquire(ctx context.Context, interval domain.Interval) (Lease, error) {
	keys := l.Keys(interval)
	token := uuid.NewString()

	res, err := acquireScript.Run(ctx, l.rdb, keys, token, l.ttl.Milliseconds()).Int64()
	if err != nil {
		return nil, fmt.Errorf("acquire %d keys: %w", len(keys), err)
	}
	if res != 1 {
		return nil, ErrSlotLocked
	}

	return &lease{locker: l, keys: keys, token: token}, nil
}

// Keys возвращает ключи корзин, покрываемых интервалом, по возрастанию времени
func (l *SlotLocker) Keys(interval domain.Interval) []string {
	// Хэш-тег держит все ключи в одном слоте Redis Cluster
	tag := "{" + l.prefix + "}"

	start := interval.Start.UTC().Truncate(l.granularity)
	end := interval.End.UTC()
	if !end.After(start) {
		return []string{tag + ":" + start.Format(time.RFC3339)}
	}

	keys := make([]string, 0, int(end.Sub(start)/l.granularity)+1)
	for bucket := start; bucket.Before(end); bucket = bucket.Add(l.granularity) {
		keys = append(keys, tag+":"+bucket.Format(time.RFC3339))
	}
	return keys
}

type lease struct {
	locker *SlotLocker
	keys   []string
	token  string
}

func (ls *lease) Release(ctx context.Context) error {
	res, err := releaseScript.Run(ctx, ls.locker.rdb, ls.keys, ls.token).Result()
	if err != nil {
		return fmt.Errorf("release %d keys: %w", len(ls.keys), err)
	}
	if _, ok := res.(int64); !ok {
		return fmt.Errorf("%w: %T", ErrUnexpectedResult, res)
	}
	return nil
}

// Noop используется, когда Redis отключен
type Noop struct{}

// Acquire всегда успешен
func (Noop) Acquire(context.Context, domain.Interval) (Lease, error) {
	return noopLease{}, nil
}

type noopLease struct{}

func (noopLease) Release(context.Context) error { return nil }
