package reschedule_booking

import (
	"time"

	"github.com/m04kA/SMC-StudioScheduler/internal/domain"
	"github.com/m04kA/SMC-StudioScheduler/pkg/types"
)

// Request запрос на перенос съемки
type Request struct {
	ProjectID int64
	Date      time.Time
	StartTime types.TimeString
}

// Response результат переноса. ID и номер проекта сохраняются
type Response struct {
	ProjectID               int64
	ProjectNumber           int64
	BookingID               int64
	SessionID               int64
	PreviousStart           *time.Time
	Start                   time.Time
	End                     time.Time
	SchedulingState         domain.SchedulingState
	ExternalCalendarEventID *string
}
