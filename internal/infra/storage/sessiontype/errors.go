package sessiontype

import "errors"

var (
	// ErrServiceNotFound возвращается, когда тип сессии не найден
	ErrServiceNotFound = errors.New("sessiontype.repository: service not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("sessiontype.repository: failed to build query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("sessiontype.repository: failed to scan row")
)
