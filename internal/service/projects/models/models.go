package models

import (
	"time"

	"github.com/m04kA/SMC-StudioScheduler/internal/domain"
)

// ProjectResponse проект вместе с текущим расписанием
type ProjectResponse struct {
	ID              int64             `json:"id"`
	ProjectNumber   int64             `json:"projectNumber"`
	ClientID        int64             `json:"clientId"`
	ServiceID       int64             `json:"serviceId"`
	Address         string            `json:"address"`
	ShootDate       string            `json:"shootDate"` // YYYY-MM-DD
	ShootTime       string            `json:"shootTime"` // HH:MM
	Status          string            `json:"status"`
	SchedulingState string            `json:"schedulingState"`
	Booking         *BookingResponse  `json:"booking,omitempty"`
	Sessions        []SessionResponse `json:"sessions"`
	CreatedAt       time.Time         `json:"createdAt"`
	UpdatedAt       time.Time         `json:"updatedAt"`
}

// BookingResponse календарная запись проекта
type BookingResponse struct {
	ID                      int64     `json:"id"`
	Start                   time.Time `json:"start"`
	End                     time.Time `json:"end"`
	ExternalCalendarEventID *string   `json:"externalCalendarEventId,omitempty"`
}

// SessionResponse сессия проекта
type SessionResponse struct {
	ID                      int64     `json:"id"`
	Start                   time.Time `json:"start"`
	End                     time.Time `json:"end"`
	Status                  string    `json:"status"`
	ExternalCalendarEventID *string   `json:"externalCalendarEventId,omitempty"`
}

// FromDomainProject собирает DTO из проекта, бронирования (может быть nil) и сессий
func FromDomainProject(p *domain.Project, b *domain.Booking, sessions []*domain.Session) *ProjectResponse {
	if p == nil {
		return nil
	}

	resp := &ProjectResponse{
		ID:              p.ID,
		ProjectNumber:   p.ProjectNumber,
		ClientID:        p.ClientID,
		ServiceID:       p.ServiceID,
		Address:         p.Address,
		ShootDate:       p.ShootDate.Format(domain.DateFormat),
		ShootTime:       p.ShootTime.String(),
		Status:          string(p.Status),
		SchedulingState: string(p.SchedulingState),
		Sessions:        make([]SessionResponse, 0, len(sessions)),
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}

	if b != nil {
		resp.Booking = &BookingResponse{
			ID:                      b.ID,
			Start:                   b.StartDatetime,
			End:                     b.EndDatetime,
			ExternalCalendarEventID: b.ExternalCalendarEventID,
		}
	}

	for _, s := range sessions {
		resp.Sessions = append(resp.Sessions, SessionResponse{
			ID:                      s.ID,
			Start:                   s.StartDatetime,
			End:                     s.EndDatetime,
			Status:                  string(s.Status),
			ExternalCalendarEventID: s.ExternalCalendarEventID,
		})
	}

	return resp
}
