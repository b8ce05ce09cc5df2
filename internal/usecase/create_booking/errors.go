package create_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-StudioScheduler/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("create_booking: invalid input data: %w", domain.ErrValidation)

	// ErrServiceNotFound возвращается, когда тип сессии не найден
	ErrServiceNotFound = fmt.Errorf("create_booking: service not found: %w", domain.ErrValidation)

	// ErrServiceInactive возвращается, когда тип сессии снят с продажи
	ErrServiceInactive = fmt.Errorf("create_booking: service is not active: %w", domain.ErrValidation)

	// ErrSlotInPast возвращается, когда начало слота уже наступило
	ErrSlotInPast = fmt.Errorf("create_booking: slot starts in the past: %w", domain.ErrValidation)

	// ErrOutsideWorkingHours возвращается, когда слот выходит за рабочее окно дня
	ErrOutsideWorkingHours = fmt.Errorf("create_booking: slot is outside working hours: %w", domain.ErrValidation)

	// ErrSlotNotAvailable возвращается, когда слот занят
	ErrSlotNotAvailable = fmt.Errorf("create_booking: %w", domain.ErrSlotUnavailable)

	// ErrDependency возвращается при отказе аллокатора номеров или записи в БД
	ErrDependency = fmt.Errorf("create_booking: %w", domain.ErrHardDependency)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
