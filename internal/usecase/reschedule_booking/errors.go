package reschedule_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-StudioScheduler/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("reschedule_booking: invalid input data: %w", domain.ErrValidation)

	// ErrProjectNotFound возвращается, когда проект не найден
	ErrProjectNotFound = fmt.Errorf("reschedule_booking: %w", domain.ErrProjectNotFound)

	// ErrInvalidState возвращается, когда проект нельзя перенести из текущего состояния
	ErrInvalidState = fmt.Errorf("reschedule_booking: project cannot be rescheduled: %w", domain.ErrValidation)

	// ErrServiceNotFound возвращается, когда тип сессии проекта больше не существует
	ErrServiceNotFound = fmt.Errorf("reschedule_booking: service not found: %w", domain.ErrValidation)

	// ErrSlotInPast возвращается, когда начало нового слота уже наступило
	ErrSlotInPast = fmt.Errorf("reschedule_booking: slot starts in the past: %w", domain.ErrValidation)

	// ErrOutsideWorkingHours возвращается, когда слот выходит за рабочее окно дня
	ErrOutsideWorkingHours = fmt.Errorf("reschedule_booking: slot is outside working hours: %w", domain.ErrValidation)

	// ErrSlotNotAvailable возвращается, когда новый слот занят
	ErrSlotNotAvailable = fmt.Errorf("reschedule_booking: %w", domain.ErrSlotUnavailable)

	// ErrDependency возвращается при отказе записи в БД
	ErrDependency = fmt.Errorf("reschedule_booking: %w", domain.ErrHardDependency)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_booking: internal error")
)
