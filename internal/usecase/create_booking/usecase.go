package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/m04kA/SMC-StudioScheduler/internal/domain"
	"github.com/m04kA/SMC-StudioScheduler/internal/infra/lock"
	sessiontypeRepo "github.com/m04kA/SMC-StudioScheduler/internal/infra/storage/sessiontype"
	"github.com/m04kA/SMC-StudioScheduler/internal/integrations/calendar"
	"github.com/m04kA/SMC-StudioScheduler/internal/integrations/notifier"
	"github.com/m04kA/SMC-StudioScheduler/pkg/ptr"
	"github.com/m04kA/SMC-StudioScheduler/pkg/tracing"
)

const operation = "create"

var tracer = otel.Tracer("github.com/m04kA/SMC-StudioScheduler/internal/usecase/create_booking")

// UseCase use case для создания бронирования: проект, бронирование и сессия
type UseCase struct {
	serviceRepo    ServiceRepository
	projectRepo    ProjectRepository
	bookingRepo    BookingRepository
	sessionRepo    SessionRepository
	commitmentRepo CommitmentRepository
	availability   AvailabilityRepository
	sequence       SequenceAllocator
	calendar       CalendarAdapter
	locker         SlotLocker
	notifier       Notifier
	txManager      TransactionManager
	metrics        Metrics
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	serviceRepo ServiceRepository,
	projectRepo ProjectRepository,
	bookingRepo BookingRepository,
	sessionRepo SessionRepository,
	commitmentRepo CommitmentRepository,
	availability AvailabilityRepository,
	sequence SequenceAllocator,
	calendar CalendarAdapter,
	locker SlotLocker,
	notifier Notifier,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		serviceRepo:    serviceRepo,
		projectRepo:    projectRepo,
		bookingRepo:    bookingRepo,
		sessionRepo:    sessionRepo,
		commitmentRepo: commitmentRepo,
		availability:   availability,
		sequence:       sequence,
		calendar:       calendar,
		locker:         locker,
		notifier:       notifier,
		txManager:      txManager,
		metrics:        metrics,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute выполняет use case создания бронирования.
// Шаги строго последовательны: номер проекта, проверка календаря, запись в БД, синхронизация, уведомление
func (uc *UseCase) Execute(ctx context.Context, req *Request) (resp *Response, err error) {
	ctx, span := tracer.Start(ctx, "CreateBooking")
	defer func() {
		uc.metrics.ObserveOperation(operation, domain.OutcomeOf(err))
		tracing.Finish(span, err)
	}()

	uc.logger.Info("CreateBooking: client=%d, service=%d, date=%s, time=%s",
		req.ClientID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем тип сессии
	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, sessiontypeRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.IsActive {
		uc.logger.Warn("CreateBooking: service id=%d is not active", req.ServiceID)
		return nil, ErrServiceInactive
	}

	// 3. Вычисляем интервал и проверяем, что он не в прошлом
	interval := domain.NewInterval(req.StartTime.On(req.Date), service.DurationMinutes)
	if !interval.Start.After(uc.timeProvider.Now()) {
		uc.logger.Warn("CreateBooking: slot %s is in the past", interval.Start)
		return nil, ErrSlotInPast
	}
	if err := uc.checkWorkingHours(ctx, req.Date, interval); err != nil {
		return nil, err
	}

	span.SetAttributes(
		attribute.Int64("client.id", req.ClientID),
		attribute.Int64("service.id", req.ServiceID),
		attribute.String("slot.start", interval.Start.Format(time.RFC3339)),
	)

	// 4. Выделяем номер проекта (жесткая зависимость)
	projectNumber, err := uc.sequence.Next(ctx)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to allocate project number: %v", err)
		return nil, fmt.Errorf("%w: allocate project number: %w", ErrDependency, err)
	}

	// 5. Предварительная проверка во внешнем календаре
	if err := uc.checkCalendar(ctx, interval); err != nil {
		return nil, err
	}

	// 6. Резервируем интервал на время записи
	lease, err := uc.locker.Acquire(ctx, interval)
	switch {
	case errors.Is(err, lock.ErrSlotLocked):
		uc.logger.Warn("CreateBooking: slot %s is being booked by another request", interval.Start)
		return nil, fmt.Errorf("%w: %v", ErrSlotNotAvailable, err)
	case err != nil:
		uc.logger.Warn("CreateBooking: slot lock unavailable, continuing without it: %v", err)
	default:
		defer func() {
			if err := lease.Release(context.WithoutCancel(ctx)); err != nil {
				uc.logger.Warn("CreateBooking: failed to release slot lock: %v", err)
			}
		}()
	}

	// 7. Записываем проект, бронирование и сессию в одной транзакции
	var (
		project *domain.Project
		booking *domain.Booking
		session *domain.Session
	)

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 7.1. Повторная проверка пересечений под блокировкой строк
		conflicts, err := uc.commitmentRepo.ListOverlapping(txCtx, interval)
		if err != nil {
			return fmt.Errorf("%w: list overlapping commitments: %w", ErrDependency, err)
		}
		if len(conflicts) > 0 {
			uc.logger.Warn("CreateBooking: slot %s overlaps %d commitment(s)", interval.Start, len(conflicts))
			return ErrSlotNotAvailable
		}

		// 7.2. Проект
		if !domain.SchedulingRequested.CanTransitionTo(domain.SchedulingConfirmed) {
			return fmt.Errorf("%w: scheduling state machine rejects confirmation", ErrInternal)
		}
		project, err = uc.projectRepo.Create(txCtx, &domain.Project{
			ProjectNumber:   projectNumber,
			ClientID:        req.ClientID,
			ServiceID:       service.ID,
			Address:         req.Address,
			ShootDate:       req.Date,
			ShootTime:       req.StartTime,
			Status:          domain.ProjectStatusBooked,
			SchedulingState: domain.SchedulingConfirmed,
		})
		if err != nil {
			return fmt.Errorf("%w: create project: %w", ErrDependency, err)
		}

		// 7.3. Бронирование
		booking, err = uc.bookingRepo.Create(txCtx, &domain.Booking{
			ProjectID:     project.ID,
			ClientID:      req.ClientID,
			StartDatetime: interval.Start,
			EndDatetime:   interval.End,
		})
		if err != nil {
			return fmt.Errorf("%w: create booking: %w", ErrDependency, err)
		}

		// 7.4. Сессия с тем же интервалом
		session, err = uc.sessionRepo.Create(txCtx, &domain.Session{
			ProjectID:     project.ID,
			ClientID:      req.ClientID,
			StartDatetime: booking.StartDatetime,
			EndDatetime:   booking.EndDatetime,
			Status:        domain.SessionStatusConfirmed,
		})
		if err != nil {
			return fmt.Errorf("%w: create session: %w", ErrDependency, err)
		}

		return nil
	})
	if err != nil {
		if !errors.Is(err, domain.ErrSlotUnavailable) && !errors.Is(err, domain.ErrHardDependency) {
			err = fmt.Errorf("%w: %w", ErrDependency, err)
		}
		uc.logger.Error("CreateBooking: transaction failed: %v", err)
		return nil, err
	}

	uc.logger.Info("CreateBooking: created project id=%d number=%d, booking id=%d, session id=%d",
		project.ID, project.ProjectNumber, booking.ID, session.ID)

	// 8. Создаем событие во внешнем календаре (best-effort)
	eventID := uc.syncCalendar(ctx, project, booking, session, service)

	// 9. Уведомление (fire-and-forget)
	uc.notifier.Notify(ctx, notifier.BookingEvent{
		Type:          notifier.EventBookingCreated,
		ProjectID:     project.ID,
		ProjectNumber: project.ProjectNumber,
		ClientID:      project.ClientID,
		Start:         ptr.Ptr(booking.StartDatetime),
		End:           ptr.Ptr(booking.EndDatetime),
		OccurredAt:    uc.timeProvider.Now(),
	})

	return &Response{
		ProjectID:               project.ID,
		ProjectNumber:           project.ProjectNumber,
		BookingID:               booking.ID,
		SessionID:               session.ID,
		ClientID:                project.ClientID,
		ServiceID:               project.ServiceID,
		Address:                 project.Address,
		Start:                   booking.StartDatetime,
		End:                     booking.EndDatetime,
		SchedulingState:         project.SchedulingState,
		ExternalCalendarEventID: eventID,
	}, nil
}

// checkWorkingHours отклоняет интервал вне рабочего окна дня (по умолчанию 09:00-17:00)
func (uc *UseCase) checkWorkingHours(ctx context.Context, date time.Time, interval domain.Interval) error {
	window, err := uc.availability.GetWindow(ctx, date.Weekday())
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get window for %s: %v", date.Weekday(), err)
		return fmt.Errorf("%w: get availability window: %w", ErrDependency, err)
	}
	if window == nil {
		window = domain.DefaultAvailabilityWindow(date.Weekday())
	}

	if !interval.Within(window.On(date)) {
		uc.logger.Warn("CreateBooking: slot %s-%s is outside working hours %s-%s",
			interval.Start.Format("15:04"), interval.End.Format("15:04"), window.StartTime, window.EndTime)
		return ErrOutsideWorkingHours
	}

	return nil
}

// checkCalendar применяет политику предварительной проверки:
// ошибка календаря пропускает бронирование дальше, явный отказ - нет
func (uc *UseCase) checkCalendar(ctx context.Context, interval domain.Interval) error {
	available, err := uc.calendar.CheckAvailability(ctx, interval.Start, interval.End)
	if err != nil {
		uc.metrics.ObserveCalendarFailure("check")
		uc.logger.Warn("CreateBooking: %v: availability check failed, treating slot as available: %v",
			domain.ErrExternalSync, err)
		return nil
	}

	if !available {
		uc.logger.Warn("CreateBooking: calendar reports slot %s as busy", interval.Start)
		return ErrSlotNotAvailable
	}

	return nil
}

// syncCalendar создает событие и сохраняет его ID в бронировании и сессии.
// Любая ошибка только логируется: локальные записи остаются источником истины
func (uc *UseCase) syncCalendar(
	ctx context.Context,
	project *domain.Project,
	booking *domain.Booking,
	session *domain.Session,
	service *domain.Service,
) *string {
	eventID, err := uc.calendar.CreateEvent(ctx, calendar.EventMeta{
		ProjectID:     project.ID,
		ProjectNumber: project.ProjectNumber,
		ClientID:      project.ClientID,
		Title:         service.Name,
		Address:       project.Address,
		Start:         booking.StartDatetime,
		End:           booking.EndDatetime,
	})
	if err != nil {
		uc.metrics.ObserveCalendarFailure("create")
		uc.logger.Warn("CreateBooking: %v: failed to create event for project id=%d: %v",
			domain.ErrExternalSync, project.ID, err)
		return nil
	}
	if eventID == "" {
		return nil
	}

	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := uc.bookingRepo.SetExternalEventID(txCtx, booking.ID, eventID); err != nil {
			return err
		}
		return uc.sessionRepo.SetExternalEventID(txCtx, session.ID, eventID)
	})
	if err != nil {
		uc.logger.Error("CreateBooking: failed to store event id=%s for project id=%d: %v", eventID, project.ID, err)
		return nil
	}

	booking.ExternalCalendarEventID = &eventID
	session.ExternalCalendarEventID = &eventID
	return &eventID
}
