package update_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-StudioScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-StudioScheduler/internal/service/availability"
	"github.com/m04kA/SMC-StudioScheduler/internal/service/availability/models"
)

const (
	msgInvalidDay         = "некорректный день недели, ожидается число от 0 (воскресенье) до 6"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidWindow      = "некорректное рабочее окно"
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

// Handle PUT /api/v1/availability/{day}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// 0 - воскресенье, поэтому PathInt64 здесь не подходит
	day, err := strconv.Atoi(mux.Vars(r)["day"])
	if err != nil || day < 0 || day > 6 {
		h.logger.Warn("PUT /availability/{day} - Invalid day: %q", mux.Vars(r)["day"])
		handlers.RespondBadRequest(w, msgInvalidDay)
		return
	}

	var req models.UpsertWindowRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /availability/%d - Invalid request body: %v", day, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.DayOfWeek = day

	result, err := h.service.UpsertWindow(r.Context(), &req)
	if err != nil {
		if errors.Is(err, availability.ErrInvalidInput) {
			h.logger.Warn("PUT /availability/%d - Invalid window: %v", day, err)
			handlers.RespondBadRequest(w, msgInvalidWindow)
			return
		}
		h.logger.Error("PUT /availability/%d - Failed to save window: %v", day, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PUT /availability/%d - Window saved successfully: %s-%s", day, result.StartTime, result.EndTime)
	handlers.RespondJSON(w, http.StatusOK, result)
}
