package create_booking

import (
	"time"

	"github.com/m04kA/SMC-StudioScheduler/internal/domain"
	"github.com/m04kA/SMC-StudioScheduler/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	ClientID  int64            // ID клиента студии
	ServiceID int64            // ID типа сессии
	Date      time.Time        // Дата съемки в часовом поясе студии
	StartTime types.TimeString // Время начала (например, "10:00")
	Address   string           // Адрес съемки
}

// Response модель ответа с созданным проектом
type Response struct {
	ProjectID               int64
	ProjectNumber           int64
	BookingID               int64
	SessionID               int64
	ClientID                int64
	ServiceID               int64
	Address                 string
	Start                   time.Time
	End                     time.Time
	SchedulingState         domain.SchedulingState
	ExternalCalendarEventID *string // nil, если событие в календаре не создано
}
