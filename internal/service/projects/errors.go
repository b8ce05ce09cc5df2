package projects

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-StudioScheduler/internal/domain"
)

var (
	// ErrProjectNotFound возвращается, когда проект не найден (в том числе после отмены)
	ErrProjectNotFound = fmt.Errorf("projects: %w", domain.ErrProjectNotFound)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("projects: invalid input data: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("projects: internal error")
)
