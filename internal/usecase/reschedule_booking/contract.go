package reschedule_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-StudioScheduler/internal/domain"
	"github.com/m04kA/SMC-StudioScheduler/internal/infra/lock"
	"github.com/m04kA/SMC-StudioScheduler/internal/integrations/calendar"
	"github.com/m04kA/SMC-StudioScheduler/internal/integrations/notifier"
	"github.com/m04kA/SMC-StudioScheduler/pkg/types"
)

// ServiceRepository интерфейс репозитория типов сессий
type ServiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

// ProjectRepository интерфейс репозитория проектов
type ProjectRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Project, error)
	UpdateSchedule(ctx context.Context, id int64, shootDate time.Time, shootTime types.TimeString, state domain.SchedulingState) error
	UpdateSchedulingState(ctx context.Context, id int64, state domain.SchedulingState) error
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByProjectID(ctx context.Context, projectID int64) (*domain.Booking, error)
	SetExternalEventID(ctx context.Context, id int64, eventID string) error
	DeleteByProjectID(ctx context.Context, projectID int64) (int64, error)
}

// SessionRepository интерфейс репозитория сессий
type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) (*domain.Session, error)
	ListByProjectID(ctx context.Context, projectID int64) ([]*domain.Session, error)
	SetExternalEventID(ctx context.Context, id int64, eventID string) error
	DeleteByProjectID(ctx context.Context, projectID int64) (int64, error)
}

// CommitmentRepository интерфейс источника занятых интервалов
type CommitmentRepository interface {
	ListOverlapping(ctx context.Context, interval domain.Interval) ([]domain.Commitment, error)
}

// AvailabilityRepository интерфейс репозитория рабочих часов
type AvailabilityRepository interface {
	GetWindow(ctx context.Context, day time.Weekday) (*domain.AvailabilityWindow, error)
}

// CalendarAdapter интерфейс внешнего календаря
type CalendarAdapter interface {
	CreateEvent(ctx context.Context, meta calendar.EventMeta) (string, error)
	DeleteEvent(ctx context.Context, eventID string) error
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
