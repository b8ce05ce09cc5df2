package availability

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-StudioScheduler/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("availability: invalid input data: %w", domain.ErrValidation)

	// ErrBlockNotFound возвращается, когда блокировка интервала не найдена
	ErrBlockNotFound = errors.New("availability: block not found")

	// ErrBlockConflict возвращается, когда блокировка пересекает подтвержденную сессию или другую блокировку
	ErrBlockConflict = fmt.Errorf("availability: block overlaps existing commitment: %w", domain.ErrSlotUnavailable)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("availability: internal error")
)
