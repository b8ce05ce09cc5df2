package availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-StudioScheduler/internal/domain"
)

// AvailabilityRepository интерфейс репозитория рабочих часов
type AvailabilityRepository interface {
	ListAll(ctx context.Context) ([]*domain.AvailabilityWindow, error)
	Upsert(ctx context.Context, window *domain.AvailabilityWindow) error
}

// CommitmentRepository интерфейс репозитория занятых интервалов
type CommitmentRepository interface {
	ListOverlapping(ctx context.Context, interval domain.Interval) ([]domain.Commitment, error)
	CreateBlock(ctx context.Context, block *domain.Commitment) (*domain.Commitment, error)
	DeleteBlock(ctx context.Context, id int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}
