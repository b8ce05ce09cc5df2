package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-StudioScheduler/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	ServiceID int64     // ID типа сессии
	Date      time.Time // Дата в часовом поясе студии (время игнорируется)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date            time.Time // Дата, на которую запрашивались слоты
	ServiceID       int64     // ID типа сессии
	DurationMinutes int       // Длительность сессии
	Slots           []Slot    // Доступные слоты по возрастанию времени начала
}

// Slot модель свободного слота [Start, End)
type Slot struct {
	StartTime types.TimeString // Время начала (например, "10:00")
	Start     time.Time
	End       time.Time
}
