package reschedule_booking

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-StudioScheduler/internal/api/handlers"
	rescheduleBooking "github.com/m04kA/SMC-StudioScheduler/internal/usecase/reschedule_booking"
)

const (
	msgInvalidProjectID   = "некорректный ID проекта"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты съемки, ожидается YYYY-MM-DD"
	msgInvalidTime        = "некорректный формат времени начала, ожидается HH:MM"
	msgInvalidInput       = "некорректные данные переноса"
	msgProjectNotFound    = "проект не найден"
	msgInvalidState       = "проект нельзя перенести в текущем состоянии"
	msgServiceNotFound    = "тип сессии проекта не найден"
	msgSlotInPast         = "выбранный слот уже начался"
	msgOutsideHours       = "выбранный слот выходит за рабочие часы студии"
	msgSlotNotAvailable   = "выбранный временной слот недоступен"
	msgDependency         = "сервис временно недоступен, повторите попытку позже"
)

type Handler struct {
	useCase  RescheduleBookingUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase RescheduleBookingUseCase, location *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle PUT /api/v1/projects/{projectId}/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	projectID, err := handlers.PathInt64(r, "projectId")
	if err != nil {
		h.logger.Warn("PUT /projects/{id}/schedule - Invalid project ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProjectID)
		return
	}

	var req RescheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /projects/%d/schedule - Invalid request body: %v", projectID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(projectID, h.location)
	if err != nil {
		h.logger.Warn("PUT /projects/%d/schedule - Failed to parse request: %v", projectID, err)
		if errors.Is(err, errParseTime) {
			handlers.RespondBadRequest(w, msgInvalidTime)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, rescheduleBooking.ErrProjectNotFound):
			h.logger.Warn("PUT /projects/%d/schedule - Project not found", projectID)
			handlers.RespondNotFound(w, msgProjectNotFound)

		case errors.Is(err, rescheduleBooking.ErrSlotNotAvailable):
			h.logger.Warn("PUT /projects/%d/schedule - Slot not available: date=%s, start=%s",
				projectID, req.Date, req.StartTime)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, rescheduleBooking.ErrInvalidState):
			h.logger.Warn("PUT /projects/%d/schedule - Invalid state: %v", projectID, err)
			handlers.RespondBadRequest(w, msgInvalidState)

		case errors.Is(err, rescheduleBooking.ErrServiceNotFound):
			h.logger.Warn("PUT /projects/%d/schedule - Service not found", projectID)
			handlers.RespondBadRequest(w, msgServiceNotFound)

		case errors.Is(err, rescheduleBooking.ErrSlotInPast):
			h.logger.Warn("PUT /projects/%d/schedule - Slot in past: date=%s, start=%s",
				projectID, req.Date, req.StartTime)
			handlers.RespondBadRequest(w, msgSlotInPast)

		case errors.Is(err, rescheduleBooking.ErrOutsideWorkingHours):
			h.logger.Warn("PUT /projects/%d/schedule - Slot outside working hours: date=%s, start=%s",
				projectID, req.Date, req.StartTime)
			handlers.RespondBadRequest(w, msgOutsideHours)

		case errors.Is(err, rescheduleBooking.ErrInvalidInput):
			h.logger.Warn("PUT /projects/%d/schedule - Invalid input: %v", projectID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, rescheduleBooking.ErrDependency):
			h.logger.Error("PUT /projects/%d/schedule - Dependency failure: %v", projectID, err)
			handlers.RespondServiceUnavailable(w, msgDependency)

		default:
			h.logger.Error("PUT /projects/%d/schedule - Failed to reschedule: %v", projectID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /projects/%d/schedule - Project rescheduled successfully: start=%s",
		projectID, result.Start.Format(time.RFC3339))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
