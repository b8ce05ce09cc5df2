package models

import (
	"time"

	"github.com/m04kA/SMC-StudioScheduler/internal/domain"
	"github.com/m04kA/SMC-StudioScheduler/pkg/types"
)

// Request модели

// UpsertWindowRequest рабочее окно дня недели
type UpsertWindowRequest struct {
	DayOfWeek  int               `json:"-"` // из URL: 0 = воскресенье
	StartTime  types.TimeString  `json:"startTime"`
	EndTime    types.TimeString  `json:"endTime"`
	BreakStart *types.TimeString `json:"breakStart,omitempty"`
	BreakEnd   *types.TimeString `json:"breakEnd,omitempty"`
}

// ToDomainWindow конвертирует запрос в domain модель
func (r *UpsertWindowRequest) ToDomainWindow() *domain.AvailabilityWindow {
	return &domain.AvailabilityWindow{
		DayOfWeek:  time.Weekday(r.DayOfWeek),
		StartTime:  r.StartTime,
		EndTime:    r.EndTime,
		BreakStart: r.BreakStart,
		BreakEnd:   r.BreakEnd,
	}
}

// CreateBlockRequest явная блокировка интервала
type CreateBlockRequest struct {
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	Reason *string   `json:"reason,omitempty"`
}

// Response модели

// WindowResponse рабочее окно дня недели
type WindowResponse struct {
	DayOfWeek  int               `json:"dayOfWeek"`
	StartTime  types.TimeString  `json:"startTime"`
	EndTime    types.TimeString  `json:"endTime"`
	BreakStart *types.TimeString `json:"breakStart,omitempty"`
	BreakEnd   *types.TimeString `json:"breakEnd,omitempty"`
	IsDefault  bool              `json:"isDefault"` // окно не настроено, действует значение по умолчанию
}

// WeekResponse шаблон рабочей недели
type WeekResponse struct {
	Windows []WindowResponse `json:"windows"`
}

// BlockResponse явная блокировка интервала
type BlockResponse struct {
	ID     int64     `json:"id"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	Reason *string   `json:"reason,omitempty"`
}

// Методы конвертации

// FromDomainWindow конвертирует domain модель в DTO
func FromDomainWindow(w *domain.AvailabilityWindow, isDefault bool) WindowResponse {
	return WindowResponse{
		DayOfWeek:  int(w.DayOfWeek),
		StartTime:  w.StartTime,
		EndTime:    w.EndTime,
		BreakStart: w.BreakStart,
		BreakEnd:   w.BreakEnd,
		IsDefault:  isDefault,
	}
}

// FromDomainBlock конвертирует domain модель в DTO
func FromDomainBlock(c *domain.Commitment) *BlockResponse {
	if c == nil {
		return nil
	}
	return &BlockResponse{
		ID:     c.ID,
		Start:  c.Start,
		End:    c.End,
		Reason: c.Reason,
	}
}
