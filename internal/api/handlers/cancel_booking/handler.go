package cancel_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-StudioScheduler/internal/api/handlers"
	cancelBooking "github.com/m04kA/SMC-StudioScheduler/internal/usecase/cancel_booking"
)

const (
	msgInvalidProjectID = "некорректный ID проекта"
	msgProjectNotFound  = "проект не найден"
	msgInvalidState     = "проект нельзя отменить в текущем состоянии"
	msgDependency       = "сервис временно недоступен, повторите попытку позже"
)

type Handler struct {
	useCase CancelBookingUseCase
	logger  Logger
}

func NewHandler(useCase CancelBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/projects/{projectId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	projectID, err := handlers.PathInt64(r, "projectId")
	if err != nil {
		h.logger.Warn("DELETE /projects/{id} - Invalid project ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProjectID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &cancelBooking.Request{ProjectID: projectID})
	if err != nil {
		switch {
		case errors.Is(err, cancelBooking.ErrProjectNotFound):
			h.logger.Warn("DELETE /projects/%d - Project not found", projectID)
			handlers.RespondNotFound(w, msgProjectNotFound)

		case errors.Is(err, cancelBooking.ErrInvalidState):
			h.logger.Warn("DELETE /projects/%d - Invalid state: %v", projectID, err)
			handlers.RespondBadRequest(w, msgInvalidState)

		case errors.Is(err, cancelBooking.ErrInvalidInput):
			h.logger.Warn("DELETE /projects/%d - Invalid input: %v", projectID, err)
			handlers.RespondBadRequest(w, msgInvalidProjectID)

		case errors.Is(err, cancelBooking.ErrDependency):
			h.logger.Error("DELETE /projects/%d - Dependency failure: %v", projectID, err)
			handlers.RespondServiceUnavailable(w, msgDependency)

		default:
			h.logger.Error("DELETE /projects/%d - Failed to cancel project: %v", projectID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	if len(result.CascadeFailures) > 0 {
		h.logger.Warn("DELETE /projects/%d - Cancelled with cascade failures: %v", projectID, result.CascadeFailures)
	}
	h.logger.Info("DELETE /projects/%d - Project cancelled successfully: sessions=%d, bookings=%d, dependents=%d",
		projectID, result.SessionsDeleted, result.BookingsDeleted, result.DependentsDeleted)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
