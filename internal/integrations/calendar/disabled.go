package calendar

import (
	"context"
	"time"
)

// Disabled используется, когда внешний календарь не настроен:
// все интервалы свободны, события не создаются
type Disabled struct{}

// CheckAvailability всегда сообщает, что интервал свободен
func (Disabled) CheckAvailability(context.Context, time.Time, time.Time) (bool, error) {
	return true, nil
}

// CreateEvent не создает событие и возвращает пустой идентификатор
func (Disabled) CreateEvent(context.Context, EventMeta) (string, error) {
	return "", nil
}

// DeleteEvent ничего не делает
func (Disabled) DeleteEvent(context.Context, string) error {
	return nil
}
