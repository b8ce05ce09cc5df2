package cancel_booking

import "github.com/m04kA/SMC-StudioScheduler/internal/infra/storage/dependents"

// Request запрос на отмену съемки
type Request struct {
	ProjectID int64
}

// Response результат отмены
type Response struct {
	ProjectID         int64
	ProjectNumber     int64
	SessionsDeleted   int64
	BookingsDeleted   int64
	DependentsDeleted int64
	// CascadeFailures таблицы, записи которых удалить не удалось
	CascadeFailures []dependents.Target
}
