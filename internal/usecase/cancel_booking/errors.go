package cancel_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-StudioScheduler/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("cancel_booking: invalid input data: %w", domain.ErrValidation)

	// ErrProjectNotFound возвращается, когда проект не найден
	ErrProjectNotFound = fmt.Errorf("cancel_booking: %w", domain.ErrProjectNotFound)

	// ErrInvalidState возвращается, когда проект нельзя отменить из текущего состояния
	ErrInvalidState = fmt.Errorf("cancel_booking: project cannot be cancelled: %w", domain.ErrValidation)

	// ErrDependency возвращается при отказе удаления локальных записей
	ErrDependency = fmt.Errorf("cancel_booking: %w", domain.ErrHardDependency)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_booking: internal error")
)
