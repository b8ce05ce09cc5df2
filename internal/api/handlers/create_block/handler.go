package create_block

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-StudioScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-StudioScheduler/internal/service/availability"
	"github.com/m04kA/SMC-StudioScheduler/internal/service/availability/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidBlock       = "некорректный интервал блокировки"
	msgBlockConflict      = "интервал пересекается с подтвержденной съемкой или другой блокировкой"
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

// Handle POST /api/v1/blocks
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateBlockRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /blocks - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CreateBlock(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrBlockConflict):
			h.logger.Warn("POST /blocks - Block conflict: %v", err)
			handlers.RespondConflict(w, msgBlockConflict)

		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("POST /blocks - Invalid block: %v", err)
			handlers.RespondBadRequest(w, msgInvalidBlock)

		default:
			h.logger.Error("POST /blocks - Failed to create block: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /blocks - Block created successfully: block_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
