package get_project

import (
	"context"

	"github.com/m04kA/SMC-StudioScheduler/internal/service/projects/models"
)

type ProjectService interface {
	GetByID(ctx context.Context, id int64) (*models.ProjectResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
