package get_available_slots

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-StudioScheduler/internal/domain"
)

var (
	// ErrServiceNotFound возвращается, когда тип сессии не найден
	ErrServiceNotFound = errors.New("get_available_slots: service not found")

	// ErrServiceInactive возвращается, когда тип сессии снят с продажи
	ErrServiceInactive = fmt.Errorf("get_available_slots: service is not active: %w", domain.ErrValidation)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("get_available_slots: invalid input data: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
