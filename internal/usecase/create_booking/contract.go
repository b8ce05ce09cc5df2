package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-StudioScheduler/internal/domain"
	"github.com/m04kA/SMC-StudioScheduler/internal/infra/lock"
	"github.com/m04kA/SMC-StudioScheduler/internal/integrations/calendar"
	"github.com/m04kA/SMC-StudioScheduler/internal/integrations/notifier"
)

// ServiceRepository интерфейс репозитория типов сессий
type ServiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

// ProjectRepository интерфейс репозитория проектов
type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) (*domain.Project, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	SetExternalEventID(ctx context.Context, id int64, eventID string) error
}

// SessionRepository интерфейс репозитория сессий
type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) (*domain.Session, error)
	SetExternalEventID(ctx context.Context, id int64, eventID string) error
}

// CommitmentRepository интерфейс источника занятых интервалов
type CommitmentRepository interface {
	ListOverlapping(ctx context.Context, interval domain.Interval) ([]domain.Commitment, error)
}

// AvailabilityRepository интерфейс репозитория рабочих часов
type AvailabilityRepository interface {
	GetWindow(ctx context.Context, day time.Weekday) (*domain.AvailabilityWindow, error)
}

// SequenceAllocator интерфейс выдачи номеров проектов
type SequenceAllocator interface {
	Next(ctx context.Context) (int64, error)
}

// CalendarAdapter интерфейс внешнего календаря
type CalendarAdapter interface {
	CheckAvailability(ctx context.Context, start, end time.Time) (bool, error)
	CreateEvent(ctx context.Context, meta calendar.EventMeta) (string, error)
}

// SlotLocker интерфейс кратковременной резервации интервала
type SlotLocker interface {
	Acquire(ctx context.Context, interval domain.Interval) (lock.Lease, error)
}

// Notifier интерфейс уведомлений (fire-and-forget)
type Notifier interface {
	Notify(ctx context.Context, event notifier.BookingEvent)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics интерфейс метрик
type Metrics interface {
	ObserveOperation(operation, outcome string)
	ObserveCalendarFailure(operation string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
