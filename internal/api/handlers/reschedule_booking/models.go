package reschedule_booking

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-StudioScheduler/internal/api/handlers"
	rescheduleBooking "github.com/m04kA/SMC-StudioScheduler/internal/usecase/reschedule_booking"
	"github.com/m04kA/SMC-StudioScheduler/pkg/types"
)

var (
	errParseDate = errors.New("parse date")
	errParseTime = errors.New("parse start time")
)

// RescheduleRequest HTTP request model
type RescheduleRequest struct {
	Date      string `json:"date"`      // "2026-10-21"
	StartTime string `json:"startTime"` // "14:00"
}

// RescheduleResponse HTTP response model
type RescheduleResponse struct {
	ProjectID               int64      `json:"projectId"`
	ProjectNumber           int64      `json:"projectNumber"`
	BookingID               int64      `json:"bookingId"`
	SessionID               int64      `json:"sessionId"`
	PreviousStart           *time.Time `json:"previousStart,omitempty"`
	Start                   time.Time  `json:"start"`
	End                     time.Time  `json:"end"`
	SchedulingState         string     `json:"schedulingState"`
	ExternalCalendarEventID *string    `json:"externalCalendarEventId,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleRequest) ToUseCaseRequest(projectID int64, loc *time.Location) (*rescheduleBooking.Request, error) {
	date, err := handlers.ParseDate(r.Date, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errParseDate, err)
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errParseTime, err)
	}

	return &rescheduleBooking.Request{
		ProjectID: projectID,
		Date:      date,
		StartTime: startTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *rescheduleBooking.Response) *RescheduleResponse {
	return &RescheduleResponse{
		ProjectID:               resp.ProjectID,
		ProjectNumber:           resp.ProjectNumber,
		BookingID:               resp.BookingID,
		SessionID:               resp.SessionID,
		PreviousStart:           resp.PreviousStart,
		Start:                   resp.Start,
		End:                     resp.End,
		SchedulingState:         string(resp.SchedulingState),
		ExternalCalendarEventID: resp.ExternalCalendarEventID,
	}
}
