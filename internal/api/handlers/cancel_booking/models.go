package cancel_booking

import (
	cancelBooking "github.com/m04kA/SMC-StudioScheduler/internal/usecase/cancel_booking"
)

// CancelResponse HTTP response model
type CancelResponse struct {
	ProjectID         int64    `json:"projectId"`
	ProjectNumber     int64    `json:"projectNumber"`
	SessionsDeleted   int64    `json:"sessionsDeleted"`
	BookingsDeleted   int64    `json:"bookingsDeleted"`
	DependentsDeleted int64    `json:"dependentsDeleted"`
	CascadeFailures   []string `json:"cascadeFailures,omitempty"` // таблицы с неудаленными записями
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *cancelBooking.Response) *CancelResponse {
	out := &CancelResponse{
		ProjectID:         resp.ProjectID,
		ProjectNumber:     resp.ProjectNumber,
		SessionsDeleted:   resp.SessionsDeleted,
		BookingsDeleted:   resp.BookingsDeleted,
		DependentsDeleted: resp.DependentsDeleted,
	}
	for _, target := range resp.CascadeFailures {
		out.CascadeFailures = append(out.CascadeFailures, string(target))
	}
	return out
}
