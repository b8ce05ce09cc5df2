package projects

import (
	"context"

	"github.com/m04kA/SMC-StudioScheduler/internal/domain"
)

// ProjectRepository интерфейс репозитория проектов
type ProjectRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Project, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByProjectID(ctx context.Context, projectID int64) (*domain.Booking, error)
}

// SessionRepository интерфейс репозитория сессий
type SessionRepository interface {
	ListByProjectID(ctx context.Context, projectID int64) ([]*domain.Session, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
