package projects

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-StudioScheduler/internal/domain"
	bookingRepo "github.com/m04kA/SMC-StudioScheduler/internal/infra/storage/booking"
	"github.com/m04kA/SMC-StudioScheduler/internal/service/projects/models"
)

// Service сервис чтения проектов вместе с расписанием
type Service struct {
	projectRepo ProjectRepository
	bookingRepo BookingRepository
	sessionRepo SessionRepository
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса проектов
func NewService(
	projectRepo ProjectRepository,
	bookingRepo BookingRepository,
	sessionRepo SessionRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		projectRepo: projectRepo,
		bookingRepo: bookingRepo,
		sessionRepo: sessionRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// GetByID получает проект, его бронирование и сессии одним согласованным чтением
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ProjectResponse, error) {
	s.logger.Info("GetByID: fetching project id=%d", id)

	if id <= 0 {
		return nil, fmt.Errorf("%w: project id must be positive", ErrInvalidInput)
	}

	var (
		project  *domain.Project
		booking  *domain.Booking
		sessions []*domain.Session
	)

	err := s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error

		project, err = s.projectRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}

		booking, err = s.bookingRepo.GetByProjectID(txCtx, id)
		if err != nil && !errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return err
		}

		sessions, err = s.sessionRepo.ListByProjectID(txCtx, id)
		return err
	})
	if err != nil {
		if errors.Is(err, domain.ErrProjectNotFound) {
			s.logger.Warn("GetByID: project id=%d not found", id)
			return nil, ErrProjectNotFound
		}
		s.logger.Error("GetByID: repository error for project id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetByID: successfully fetched project id=%d with %d session(s)", id, len(sessions))
	return models.FromDomainProject(project, booking, sessions), nil
}
