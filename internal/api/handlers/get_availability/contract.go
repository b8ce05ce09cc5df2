package get_availability

import (
	"context"

	"github.com/m04kA/SMC-StudioScheduler/internal/service/availability/models"
)

type AvailabilityService interface {
	ListWindows(ctx context.Context) (*models.WeekResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
