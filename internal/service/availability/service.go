package availability

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-StudioScheduler/internal/domain"
	commitmentRepo "github.com/m04kA/SMC-StudioScheduler/internal/infra/storage/commitment"
	"github.com/m04kA/SMC-StudioScheduler/internal/service/availability/models"
)

// Service сервис управления рабочими часами и явными блокировками
type Service struct {
	availabilityRepo AvailabilityRepository
	commitmentRepo   CommitmentRepository
	txManager        TransactionManager
	timeProvider     TimeProvider
	logger           Logger
}

// NewService создает новый экземпляр сервиса
func NewService(
	availabilityRepo AvailabilityRepository,
	commitmentRepo CommitmentRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		availabilityRepo: availabilityRepo,
		commitmentRepo:   commitmentRepo,
		txManager:        txManager,
		timeProvider:     realTimeProvider{},
		logger:           logger,
	}
}

type realTimeProvider struct{}

func (realTimeProvider) Now() time.Time { return time.Now() }

// ListWindows возвращает шаблон недели; для ненастроенных дней подставляется окно по умолчанию
func (s *Service) ListWindows(ctx context.Context) (*models.WeekResponse, error) {
	s.logger.Info("ListWindows: fetching weekly template")

	windows, err := s.availabilityRepo.ListAll(ctx)
	if err != nil {
		s.logger.Error("ListWindows: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListWindows - repository error: %v", ErrInternal, err)
	}

	byDay := make(map[time.Weekday]*domain.AvailabilityWindow, len(windows))
	for _, w := range windows {
		byDay[w.DayOfWeek] = w
	}

	resp := &models.WeekResponse{Windows: make([]models.WindowResponse, 0, 7)}
	for day := time.Sunday; day <= time.Saturday; day++ {
		if w, ok := byDay[day]; ok {
			resp.Windows = append(resp.Windows, models.FromDomainWindow(w, false))
			continue
		}
		resp.Windows = append(resp.Windows, models.FromDomainWindow(domain.DefaultAvailabilityWindow(day), true))
	}

	s.logger.Info("ListWindows: %d configured day(s)", len(windows))
	return resp, nil
}

// UpsertWindow создает или заменяет рабочее окно дня недели
func (s *Service) UpsertWindow(ctx context.Context, req *models.UpsertWindowRequest) (*models.WindowResponse, error) {
	s.logger.Info("UpsertWindow: day=%d, %s-%s", req.DayOfWeek, req.StartTime, req.EndTime)

	// 1. Валидируем окно
	if err := validateWindow(req); err != nil {
		s.logger.Warn("UpsertWindow: validation failed: %v", err)
		return nil, err
	}

	// 2. Сохраняем
	window := req.ToDomainWindow()
	if err := s.availabilityRepo.Upsert(ctx, window); err != nil {
		s.logger.Error("UpsertWindow: repository error for day=%d: %v", req.DayOfWeek, err)
		return nil, fmt.Errorf("%w: UpsertWindow - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpsertWindow: successfully saved window for day=%d", req.DayOfWeek)
	resp := models.FromDomainWindow(window, false)
	return &resp, nil
}

// CreateBlock блокирует интервал. Пересечение с подтвержденными сессиями и блокировками запрещено
func (s *Service) CreateBlock(ctx context.Context, req *models.CreateBlockRequest) (*models.BlockResponse, error) {
	s.logger.Info("CreateBlock: %s - %s", req.Start, req.End)

	// 1. Валидируем интервал
	if err := s.validateBlock(req); err != nil {
		s.logger.Warn("CreateBlock: validation failed: %v", err)
		return nil, err
	}

	interval := domain.Interval{Start: req.Start, End: req.End}
	var created *domain.Commitment

	// 2. Проверка пересечений и вставка в одной транзакции
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		conflicts, err := s.commitmentRepo.ListOverlapping(txCtx, interval)
		if err != nil {
			return err
		}
		if len(conflicts) > 0 {
			return fmt.Errorf("%w: %d commitment(s)", ErrBlockConflict, len(conflicts))
		}

		created, err = s.commitmentRepo.CreateBlock(txCtx, &domain.Commitment{
			Kind:     domain.CommitmentBlock,
			Interval: interval,
			Status:   domain.CommitmentConfirmed,
			Reason:   req.Reason,
		})
		return err
	})
	if err != nil {
		if errors.Is(err, ErrBlockConflict) {
			s.logger.Warn("CreateBlock: %v", err)
			return nil, err
		}
		s.logger.Error("CreateBlock: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateBlock - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateBlock: successfully created block id=%d", created.ID)
	return models.FromDomainBlock(created), nil
}

// DeleteBlock удаляет явную блокировку
func (s *Service) DeleteBlock(ctx context.Context, id int64) error {
	s.logger.Info("DeleteBlock: deleting block id=%d", id)

	if id <= 0 {
		return fmt.Errorf("%w: block id must be positive", ErrInvalidInput)
	}

	if err := s.commitmentRepo.DeleteBlock(ctx, id); err != nil {
		if errors.Is(err, commitmentRepo.ErrBlockNotFound) {
			s.logger.Warn("DeleteBlock: block id=%d not found", id)
			return ErrBlockNotFound
		}
		s.logger.Error("DeleteBlock: repository error for block id=%d: %v", id, err)
		return fmt.Errorf("%w: DeleteBlock - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteBlock: successfully deleted block id=%d", id)
	return nil
}

// Вспомогательные методы

// validateWindow проверяет, что start < end и перерыв лежит внутри окна
func validateWindow(req *models.UpsertWindowRequest) error {
	if req.DayOfWeek < int(time.Sunday) || req.DayOfWeek > int(time.Saturday) {
		return fmt.Errorf("%w: dayOfWeek must be between 0 and 6", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}
	if err := req.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid endTime: %v", ErrInvalidInput, err)
	}
	if req.StartTime.Minutes() >= req.EndTime.Minutes() {
		return fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
	}

	if (req.BreakStart == nil) != (req.BreakEnd == nil) {
		return fmt.Errorf("%w: breakStart and breakEnd must be set together", ErrInvalidInput)
	}
	if req.BreakStart == nil {
		return nil
	}

	if err := req.BreakStart.Validate(); err != nil {
		return fmt.Errorf("%w: invalid breakStart: %v", ErrInvalidInput, err)
	}
	if err := req.BreakEnd.Validate(); err != nil {
		return fmt.Errorf("%w: invalid breakEnd: %v", ErrInvalidInput, err)
	}

	breakStart, breakEnd := req.BreakStart.Minutes(), req.BreakEnd.Minutes()
	if breakStart >= breakEnd {
		return fmt.Errorf("%w: breakStart must be before breakEnd", ErrInvalidInput)
	}
	if breakStart < req.StartTime.Minutes() || breakEnd > req.EndTime.Minutes() {
		return fmt.Errorf("%w: break must lie inside the working window", ErrInvalidInput)
	}

	return nil
}

// validateBlock проверяет интервал и причину блокировки
func (s *Service) validateBlock(req *models.CreateBlockRequest) error {
	if req.Start.IsZero() || req.End.IsZero() {
		return fmt.Errorf("%w: start and end are required", ErrInvalidInput)
	}
	if !req.Start.Before(req.End) {
		return fmt.Errorf("%w: start must be before end", ErrInvalidInput)
	}
	if !req.End.After(s.timeProvider.Now()) {
		return fmt.Errorf("%w: block must end in the future", ErrInvalidInput)
	}

	if req.Reason != nil {
		reason := strings.TrimSpace(*req.Reason)
		if utf8.RuneCountInString(reason) > domain.MaxBlockReasonLength {
			return fmt.Errorf("%w: reason must be at most %d characters", ErrInvalidInput, domain.MaxBlockReasonLength)
		}
		req.Reason = &reason
	}

	return nil
}
