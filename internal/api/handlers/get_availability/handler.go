package get_availability

import (
	"net/http"

	"github.com/m04kA/SMC-StudioScheduler/internal/api/handlers"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability
// Возвращает все семь дней недели; ненастроенные дни помечены isDefault
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListWindows(r.Context())
	if err != nil {
		h.logger.Error("GET /availability - Failed to list windows: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /availability - Weekly template retrieved successfully")
	handlers.RespondJSON(w, http.StatusOK, result)
}
