package update_availability

import (
	"context"

	"github.com/m04kA/SMC-StudioScheduler/internal/service/availability/models"
)

type AvailabilityService interface {
	UpsertWindow(ctx context.Context, req *models.UpsertWindowRequest) (*models.WindowResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
