package cancel_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-StudioScheduler/internal/domain"
	"github.com/m04kA/SMC-StudioScheduler/internal/infra/storage/dependents"
	"github.com/m04kA/SMC-StudioScheduler/internal/integrations/notifier"
)

// ProjectRepository интерфейс репозитория проектов
type ProjectRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Project, error)
	Delete(ctx context.Context, id int64) error
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByProjectID(ctx context.Context, projectID int64) (*domain.Booking, error)
	DeleteByProjectID(ctx context.Context, projectID int64) (int64, error)
}

// SessionRepository интерфейс репозитория сессий
type SessionRepository interface {
	ListByProjectID(ctx context.Context, projectID int64) ([]*domain.Session, error)
	DeleteByProjectID(ctx context.Context, projectID int64) (int64, error)
}

// DependentsRepository интерфейс удаления записей, принадлежащих проекту
type DependentsRepository interface {
	DeleteByProject(ctx context.Context, target dependents.Target, projectID int64) (int64, error)
}

// CalendarAdapter интерфейс внешнего календаря
type CalendarAdapter interface {
	DeleteEvent(ctx context.Context, eventID string) error
}

// Notifier интерфейс уведомлений (fire-and-forget)
type Notifier interface {
	Notify(ctx context.Context, event notifier.BookingEvent)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics интерфейс метрик
type Metrics interface {
	ObserveOperation(operation, outcome string)
	ObserveCalendarFailure(operation string)
	ObserveCascadeFailure(target string)
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
