package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/m04kA/SMC-StudioScheduler/internal/domain"
	sessiontypeRepo "github.com/m04kA/SMC-StudioScheduler/internal/infra/storage/sessiontype"
	"github.com/m04kA/SMC-StudioScheduler/internal/scheduling"
	"github.com/m04kA/SMC-StudioScheduler/pkg/tracing"
	"github.com/m04kA/SMC-StudioScheduler/pkg/types"
)

var tracer = otel.Tracer("github.com/m04kA/SMC-StudioScheduler/internal/usecase/get_available_slots")

// Options настройки генерации слотов
type Options struct {
	GranularityMinutes int
	ApplyBreakWindow   bool // перерыв рабочего окна блокирует слоты
}

// UseCase use case для получения доступных слотов
type UseCase struct {
	serviceRepo      ServiceRepository
	availabilityRepo AvailabilityRepository
	commitmentRepo   CommitmentRepository
	metrics          Metrics
	opts             Options
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	serviceRepo ServiceRepository,
	availabilityRepo AvailabilityRepository,
	commitmentRepo CommitmentRepository,
	metrics Metrics,
	opts Options,
	logger Logger,
) *UseCase {
	return &UseCase{
		serviceRepo:      serviceRepo,
		availabilityRepo: availabilityRepo,
		commitmentRepo:   commitmentRepo,
		metrics:          metrics,
		opts:             opts,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (resp *Response, err error) {
	ctx, span := tracer.Start(ctx, "GetAvailableSlots")
	defer func() { tracing.Finish(span, err) }()

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	date := startOfDay(req.Date)
	span.SetAttributes(
		attribute.Int64("service.id", req.ServiceID),
		attribute.String("date", date.Format(domain.DateFormat)),
	)
	uc.logger.Info("GetAvailableSlots: service=%d, date=%s", req.ServiceID, date.Format(domain.DateFormat))

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем тип сессии: его длительность задает длину слота
	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, sessiontypeRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if !service.IsActive {
		uc.logger.Warn("GetAvailableSlots: service id=%d is not active", req.ServiceID)
		return nil, ErrServiceInactive
	}

	// 4. Получаем рабочее окно дня недели (или окно по умолчанию)
	window, err := uc.availabilityRepo.GetWindow(ctx, date.Weekday())
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get window for %s: %v", date.Weekday(), err)
		return nil, fmt.Errorf("%w: failed to get availability window: %v", ErrInternal, err)
	}
	if window == nil {
		window = domain.DefaultAvailabilityWindow(date.Weekday())
	}

	// 5. Генерируем кандидатов
	candidates := scheduling.GenerateCandidates(date, service.DurationMinutes, window, uc.opts.GranularityMinutes)

	// 6. Получаем подтвержденные интервалы за день
	commitments, err := uc.commitmentRepo.ListConfirmed(ctx, date, date.AddDate(0, 0, 1))
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list commitments: %v", err)
		return nil, fmt.Errorf("%w: failed to list commitments: %v", ErrInternal, err)
	}

	if uc.opts.ApplyBreakWindow {
		if block, ok := scheduling.BreakCommitment(date, window); ok {
			commitments = append(commitments, block)
		}
	}

	// 7. Отсеиваем прошедшие и пересекающиеся слоты
	accepted := scheduling.FilterAvailable(candidates, commitments, now)

	slots := make([]Slot, 0, len(accepted))
	for _, interval := range accepted {
		slots = append(slots, Slot{
			StartTime: types.NewTimeString(interval.Start),
			Start:     interval.Start,
			End:       interval.End,
		})
	}

	uc.metrics.ObserveSlotsOffered(strconv.FormatInt(service.ID, 10), len(slots))
	uc.logger.Info("GetAvailableSlots: %d of %d candidates available, commitments=%d",
		len(slots), len(candidates), len(commitments))

	return &Response{
		Date:            date,
		ServiceID:       service.ID,
		DurationMinutes: service.DurationMinutes,
		Slots:           slots,
	}, nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
