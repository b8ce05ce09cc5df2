package usecasetest

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-StudioScheduler/internal/domain"
	"github.com/m04kA/SMC-StudioScheduler/internal/infra/lock"
	"github.com/m04kA/SMC-StudioScheduler/internal/integrations/calendar"
	"github.com/m04kA/SMC-StudioScheduler/internal/integrations/notifier"
)

// TxManager выполняет fn и при ошибке откатывает Store к состоянию до транзакции
type TxManager struct {
	Store *Store
	Calls int
}

func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) run(ctx context.Context, fn func(ctx context.Context) error) error {
	m.Calls++
	snap := m.Store.snapshot()
	if err := fn(ctx); err != nil {
		m.Store.restore(snap)
		return err
	}
	return nil
}

// Calendar мок внешнего календаря
type Calendar struct {
	mock.Mock
}

func (c *Calendar) CheckAvailability(ctx context.Context, start, end time.Time) (bool, error) {
	args := c.Called(ctx, start, end)
	return args.Bool(0), args.Error(1)
}

func (c *Calendar) CreateEvent(ctx context.Context, meta calendar.EventMeta) (string, error) {
	args := c.Called(ctx, meta)
	return args.String(0), args.Error(1)
}

func (c *Calendar) DeleteEvent(ctx context.Context, eventID string) error {
	args := c.Called(ctx, eventID)
	return args.Error(0)
}

// Notifier запоминает отправленные уведомления
type Notifier struct {
	mu     sync.Mutex
	events []notifier.BookingEvent
}

func (n *Notifier) Notify(_ context.Context, event notifier.BookingEvent) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
}

// Events возвращает отправленные уведомления
func (n *Notifier) Events() []notifier.BookingEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notifier.BookingEvent(nil), n.events...)
}

// Locker in-memory блокировка слотов
type Locker struct {
	mu   sync.Mutex
	held []domain.Interval
	Err  error
}

func (l *Locker) Acquire(_ context.Context, interval domain.Interval) (lock.Lease, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.Err != nil {
		return nil, l.Err
	}
	for _, h := range l.held {
		if h.Overlaps(interval) {
			return nil, lock.ErrSlotLocked
		}
	}
	l.held = append(l.held, interval)
	return &lease{locker: l, interval: interval}, nil
}

// Hold держит интервал, как будто его бронирует параллельный запрос
func (l *Locker) Hold(interval domain.Interval) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.held = append(l.held, interval)
}

// Held возвращает число удерживаемых интервалов
func (l *Locker) Held() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.held)
}

type lease struct {
	locker   *Locker
	interval domain.Interval
}

func (ls *lease) Release(context.Context) error {
	ls.locker.mu.Lock()
	defer ls.locker.mu.Unlock()
	for i, h := range ls.locker.held {
		if h == ls.interval {
			ls.locker.held = append(ls.locker.held[:i], ls.locker.held[i+1:]...)
			break
		}
	}
	return nil
}

// Clock фиксированное время
type Clock struct {
	T time.Time
}

func (c *Clock) Now() time.Time {
	return c.T
}
