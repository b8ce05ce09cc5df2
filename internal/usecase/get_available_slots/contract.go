package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-StudioScheduler/internal/domain"
)

// ServiceRepository интерфейс репозитория типов сессий
type ServiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

// AvailabilityRepository интерфейс недельного шаблона рабочих часов
type AvailabilityRepository interface {
	GetWindow(ctx context.Context, day time.Weekday) (*domain.AvailabilityWindow, error)
}

// CommitmentRepository интерфейс источника занятых интервалов
type CommitmentRepository interface {
	ListConfirmed(ctx context.Context, from, to time.Time) ([]domain.Commitment, error)
}

// Metrics интерфейс метрик
type Metrics interface {
	ObserveSlotsOffered(serviceID string, count int)
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
