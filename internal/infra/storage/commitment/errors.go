package commitment

import "errors"

var (
	// ErrBlockNotFound возвращается, когда блокировка интервала не найдена
	ErrBlockNotFound = errors.New("commitment.repository: block not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("commitment.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("commitment.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("commitment.repository: failed to scan row")
)
