package dependents

import "errors"

var (
	// ErrUnknownTarget возвращается для таблицы, не входящей в список каскадного удаления
	ErrUnknownTarget = errors.New("dependents.repository: unknown cascade target")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("dependents.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("dependents.repository: failed to execute query")
)
