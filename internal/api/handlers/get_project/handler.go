package get_project

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-StudioScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-StudioScheduler/internal/service/projects"
)

const (
	msgInvalidProjectID = "некорректный ID проекта"
	msgProjectNotFound  = "проект не найден"
)

type Handler struct {
	service ProjectService
	logger  Logger
}

func NewHandler(service ProjectService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/projects/{projectId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	projectID, err := handlers.PathInt64(r, "projectId")
	if err != nil {
		h.logger.Warn("GET /projects/{id} - Invalid project ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProjectID)
		return
	}

	result, err := h.service.GetByID(r.Context(), projectID)
	if err != nil {
		switch {
		case errors.Is(err, projects.ErrProjectNotFound):
			h.logger.Warn("GET /projects/%d - Project not found", projectID)
			handlers.RespondNotFound(w, msgProjectNotFound)

		case errors.Is(err, projects.ErrInvalidInput):
			h.logger.Warn("GET /projects/%d - Invalid input: %v", projectID, err)
			handlers.RespondBadRequest(w, msgInvalidProjectID)

		default:
			h.logger.Error("GET /projects/%d - Failed to get project: %v", projectID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /projects/%d - Project retrieved successfully", projectID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
