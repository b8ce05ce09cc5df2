package create_booking

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-StudioScheduler/internal/api/handlers"
	createBooking "github.com/m04kA/SMC-StudioScheduler/internal/usecase/create_booking"
	"github.com/m04kA/SMC-StudioScheduler/pkg/types"
)

var (
	errParseDate = errors.New("parse date")
	errParseTime = errors.New("parse start time")
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ClientID  int64  `json:"clientId"`
	ServiceID int64  `json:"serviceId"`
	Date      string `json:"date"`      // "2026-10-20"
	StartTime string `json:"startTime"` // "10:00"
	Address   string `json:"address"`
}

// ProjectResponse HTTP response model
type ProjectResponse struct {
	ProjectID               int64     `json:"projectId"`
	ProjectNumber           int64     `json:"projectNumber"`
	BookingID               int64     `json:"bookingId"`
	SessionID               int64     `json:"sessionId"`
	ClientID                int64     `json:"clientId"`
	ServiceID               int64     `json:"serviceId"`
	Address                 string    `json:"address"`
	Start                   time.Time `json:"start"`
	End                     time.Time `json:"end"`
	SchedulingState         string    `json:"schedulingState"`
	ExternalCalendarEventID *string   `json:"externalCalendarEventId,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case (с парсингом даты и времени)
func (r *CreateBookingRequest) ToUseCaseRequest(loc *time.Location) (*createBooking.Request, error) {
	date, err := handlers.ParseDate(r.Date, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errParseDate, err)
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errParseTime, err)
	}

	return &createBooking.Request{
		ClientID:  r.ClientID,
		ServiceID: r.ServiceID,
		Date:      date,
		StartTime: startTime,
		Address:   r.Address,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *createBooking.Response) *ProjectResponse {
	return &ProjectResponse{
		ProjectID:               resp.ProjectID,
		ProjectNumber:           resp.ProjectNumber,
		BookingID:               resp.BookingID,
		SessionID:               resp.SessionID,
		ClientID:                resp.ClientID,
		ServiceID:               resp.ServiceID,
		Address:                 resp.Address,
		Start:                   resp.Start,
		End:                     resp.End,
		SchedulingState:         string(resp.SchedulingState),
		ExternalCalendarEventID: resp.ExternalCalendarEventID,
	}
}
