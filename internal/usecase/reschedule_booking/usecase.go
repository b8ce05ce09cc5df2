package reschedule_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/m04kA/SMC-StudioScheduler/internal/domain"
	"github.com/m04kA/SMC-StudioScheduler/internal/infra/lock"
	bookingRepo "github.com/m04kA/SMC-StudioScheduler/internal/infra/storage/booking"
	sessiontypeRepo "github.com/m04kA/SMC-StudioScheduler/internal/infra/storage/sessiontype"
	"github.com/m04kA/SMC-StudioScheduler/internal/integrations/calendar"
	"github.com/m04kA/SMC-StudioScheduler/internal/integrations/notifier"
	"github.com/m04kA/SMC-StudioScheduler/pkg/ptr"
	"github.com/m04kA/SMC-StudioScheduler/pkg/tracing"
)

const operation = "reschedule"

var tracer = otel.Tracer("github.com/m04kA/SMC-StudioScheduler/internal/usecase/reschedule_booking")

// UseCase use case для переноса съемки на другой слот
type UseCase struct {
	serviceRepo    ServiceRepository
	projectRepo    ProjectRepository
	bookingRepo    BookingRepository
	sessionRepo    SessionRepository
	commitmentRepo CommitmentRepository
	availability   AvailabilityRepository
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
		calendar:       calendar,
		locker:         locker,
		notifier:       notifier,
		txManager:      txManager,
		metrics:        metrics,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute выполняет use case переноса съемки.
// Старые бронирование и сессия заменяются новыми в одной транзакции, проект сохраняет ID и номер
func (uc *UseCase) Execute(ctx context.Context, req *Request) (resp *Response, err error) {
	ctx, span := tracer.Start(ctx, "RescheduleBooking")
	defer func() {
		uc.metrics.ObserveOperation(operation, domain.OutcomeOf(err))
		tracing.Finish(span, err)
	}()

	uc.logger.Info("RescheduleBooking: project=%d, date=%s, time=%s",
		req.ProjectID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Загружаем проект и проверяем переход состояния
	project, err := uc.projectRepo.GetByID(ctx, req.ProjectID)
	if err != nil {
		if errors.Is(err, domain.ErrProjectNotFound) {
			uc.logger.Warn("RescheduleBooking: project id=%d not found", req.ProjectID)
			return nil, ErrProjectNotFound
		}
		uc.logger.Error("RescheduleBooking: failed to get project id=%d: %v", req.ProjectID, err)
		return nil, fmt.Errorf("%w: get project: %w", ErrDependency, err)
	}
	if !project.SchedulingState.CanTransitionTo(domain.SchedulingRescheduled) {
		uc.logger.Warn("RescheduleBooking: project id=%d is in state %s", project.ID, project.SchedulingState)
		return nil, fmt.Errorf("%w: state %s", ErrInvalidState, project.SchedulingState)
	}

	// 3. Длительность берется из типа сессии проекта
	service, err := uc.serviceRepo.GetByID(ctx, project.ServiceID)
	if err != nil {
		if errors.Is(err, sessiontypeRepo.ErrServiceNotFound) {
			uc.logger.Warn("RescheduleBooking: service id=%d of project id=%d not found", project.ServiceID, project.ID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("RescheduleBooking: failed to get service id=%d: %v", project.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	interval := domain.NewInterval(req.StartTime.On(req.Date), service.DurationMinutes)
	if !interval.Start.After(uc.timeProvider.Now()) {
		uc.logger.Warn("RescheduleBooking: slot %s is in the past", interval.Start)
		return nil, ErrSlotInPast
	}
	if err := uc.checkWorkingHours(ctx, req.Date, interval); err != nil {
		return nil, err
	}

	span.SetAttributes(
		attribute.Int64("project.id", project.ID),
		attribute.String("slot.start", interval.Start.Format(time.RFC3339)),
	)

	// 4. Текущие бронирование и сессии
	booking, err := uc.bookingRepo.GetByProjectID(ctx, project.ID)
	if err != nil && !errors.Is(err, bookingRepo.ErrBookingNotFound) {
		uc.logger.Error("RescheduleBooking: failed to get booking of project id=%d: %v", project.ID, err)
		return nil, fmt.Errorf("%w: get booking: %w", ErrDependency, err)
	}
	sessions, err := uc.sessionRepo.ListByProjectID(ctx, project.ID)
	if err != nil {
		uc.logger.Error("RescheduleBooking: failed to list sessions of project id=%d: %v", project.ID, err)
		return nil, fmt.Errorf("%w: list sessions: %w", ErrDependency, err)
	}

	// 5. Резервируем новый интервал
	lease, err := uc.locker.Acquire(ctx, interval)
	switch {
	case errors.Is(err, lock.ErrSlotLocked):
		uc.logger.Warn("RescheduleBooking: slot %s is being booked by another request", interval.Start)
		return nil, fmt.Errorf("%w: %v", ErrSlotNotAvailable, err)
	case err != nil:
		uc.logger.Warn("RescheduleBooking: slot lock unavailable, continuing without it: %v", err)
	default:
		defer func() {
			if err := lease.Release(context.WithoutCancel(ctx)); err != nil {
				uc.logger.Warn("RescheduleBooking: failed to release slot lock: %v", err)
			}
		}()
	}

	// 6. Предварительная проверка пересечений без учета собственных сессий проекта,
	// чтобы не удалять внешние события ради заведомо занятого слота
	if err := uc.precheck(ctx, project.ID, interval); err != nil {
		return nil, err
	}

	// 7. Удаляем старые события во внешнем календаре (best-effort)
	deletedEvents := uc.deleteEvents(ctx, project.ID, booking, sessions)

	// 8. Заменяем бронирование и сессию в одной транзакции
	var (
		newBooking *domain.Booking
		newSession *domain.Session
	)

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 8.1. Повторно читаем проект под блокировкой строки
		current, err := uc.projectRepo.GetByID(txCtx, project.ID)
		if errors.Is(err, domain.ErrProjectNotFound) {
			return ErrProjectNotFound
		}
		if err != nil {
			return fmt.Errorf("get project for update: %w", err)
		}
		if !current.SchedulingState.CanTransitionTo(domain.SchedulingRescheduled) {
			return fmt.Errorf("%w: state %s", ErrInvalidState, current.SchedulingState)
		}

		// 8.2. Удаляем старые сессии и бронирование
		if _, err := uc.sessionRepo.DeleteByProjectID(txCtx, project.ID); err != nil {
			return fmt.Errorf("delete sessions: %w", err)
		}
		if _, err := uc.bookingRepo.DeleteByProjectID(txCtx, project.ID); err != nil {
			return fmt.Errorf("delete booking: %w", err)
		}

		// 8.3. Новые дата и время съемки
		if err := uc.projectRepo.UpdateSchedule(txCtx, project.ID, req.Date, req.StartTime, domain.SchedulingRescheduled); err != nil {
			return fmt.Errorf("update project schedule: %w", err)
		}

		// 8.4. Проверка пересечений под блокировкой строк
		conflicts, err := uc.commitmentRepo.ListOverlapping(txCtx, interval)
		if err != nil {
			return fmt.Errorf("list overlapping commitments: %w", err)
		}
		if len(conflicts) > 0 {
			uc.logger.Warn("RescheduleBooking: slot %s overlaps %d commitment(s)", interval.Start, len(conflicts))
			return ErrSlotNotAvailable
		}

		// 8.5. Новые бронирование и сессия с одинаковым интервалом
		newBooking, err = uc.bookingRepo.Create(txCtx, &domain.Booking{
			ProjectID:     project.ID,
			ClientID:      project.ClientID,
			StartDatetime: interval.Start,
			EndDatetime:   interval.End,
		})
		if err != nil {
			return fmt.Errorf("create booking: %w", err)
		}

		newSession, err = uc.sessionRepo.Create(txCtx, &domain.Session{
			ProjectID:     project.ID,
			ClientID:      project.ClientID,
			StartDatetime: newBooking.StartDatetime,
			EndDatetime:   newBooking.EndDatetime,
			Status:        domain.SessionStatusConfirmed,
		})
		if err != nil {
			return fmt.Errorf("create session: %w", err)
		}

		// 8.6. rescheduled -> confirmed
		if err := uc.projectRepo.UpdateSchedulingState(txCtx, project.ID, domain.SchedulingConfirmed); err != nil {
			return fmt.Errorf("confirm project schedule: %w", err)
		}

		return nil
	})
	if err != nil {
		if !errors.Is(err, domain.ErrSlotUnavailable) &&
			!errors.Is(err, domain.ErrValidation) &&
			!errors.Is(err, domain.ErrProjectNotFound) {
			err = fmt.Errorf("%w: %w", ErrDependency, err)
		}
		uc.logger.Error("RescheduleBooking: transaction failed for project id=%d: %v", project.ID, err)
		if len(deletedEvents) > 0 {
			uc.logger.Warn("RescheduleBooking: %v: project id=%d kept old schedule but events [%s] already deleted",
				domain.ErrExternalSync, project.ID, strings.Join(deletedEvents, ","))
		}
		return nil, err
	}

	uc.logger.Info("RescheduleBooking: project id=%d moved to %s, booking id=%d, session id=%d",
		project.ID, interval.Start, newBooking.ID, newSession.ID)

	// 9. Создаем событие для нового интервала (best-effort)
	eventID := uc.syncCalendar(ctx, project, newBooking, newSession, service)

	// 10. Уведомление (fire-and-forget)
	uc.notifier.Notify(ctx, notifier.BookingEvent{
		Type:          notifier.EventBookingRescheduled,
		ProjectID:     project.ID,
		ProjectNumber: project.ProjectNumber,
		ClientID:      project.ClientID,
		Start:         ptr.Ptr(newBooking.StartDatetime),
		End:           ptr.Ptr(newBooking.EndDatetime),
		OccurredAt:    uc.timeProvider.Now(),
	})

	var previousStart *time.Time
	if booking != nil {
		previousStart = ptr.Ptr(booking.StartDatetime)
	}

	return &Response{
		ProjectID:               project.ID,
		ProjectNumber:           project.ProjectNumber,
		BookingID:               newBooking.ID,
		SessionID:               newSession.ID,
		PreviousStart:           previousStart,
		Start:                   newBooking.StartDatetime,
		End:                     newBooking.EndDatetime,
		SchedulingState:         domain.SchedulingConfirmed,
		ExternalCalendarEventID: eventID,
	}, nil
}

// checkWorkingHours отклоняет интервал вне рабочего окна дня (по умолчанию 09:00-17:00)
func (uc *UseCase) checkWorkingHours(ctx context.Context, date time.Time, interval domain.Interval) error {
	window, err := uc.availability.GetWindow(ctx, date.Weekday())
	if err != nil {
		uc.logger.Error("RescheduleBooking: failed to get window for %s: %v", date.Weekday(), err)
		return fmt.Errorf("%w: get availability window: %w", ErrDependency, err)
	}
	if window == nil {
		window = domain.DefaultAvailabilityWindow(date.Weekday())
	}

	if !interval.Within(window.On(date)) {
		uc.logger.Warn("RescheduleBooking: slot %s-%s is outside working hours %s-%s",
			interval.Start.Format("15:04"), interval.End.Format("15:04"), window.StartTime, window.EndTime)
		return ErrOutsideWorkingHours
	}

	return nil
}

// precheck отклоняет слот, если он пересекается с чужими обязательствами
func (uc *UseCase) precheck(ctx context.Context, projectID int64, interval domain.Interval) error {
	conflicts, err := uc.commitmentRepo.ListOverlapping(ctx, interval)
	if err != nil {
		uc.logger.Error("RescheduleBooking: failed to list overlapping commitments: %v", err)
		return fmt.Errorf("%w: list overlapping commitments: %w", ErrDependency, err)
	}

	for _, c := range conflicts {
		if c.ProjectID != nil && *c.ProjectID == projectID {
			continue
		}
		uc.logger.Warn("RescheduleBooking: slot %s overlaps %s id=%d", interval.Start, c.Kind, c.ID)
		return ErrSlotNotAvailable
	}

	return nil
}

// deleteEvents удаляет каждое внешнее событие проекта один раз и возвращает удаленные ID.
// Ошибки только логируются
func (uc *UseCase) deleteEvents(ctx context.Context, projectID int64, booking *domain.Booking, sessions []*domain.Session) []string {
	seen := make(map[string]struct{})
	ids := make([]string, 0, len(sessions)+1)

	collect := func(id *string) {
		if id == nil || *id == "" {
			return
		}
		if _, ok := seen[*id]; ok {
			return
		}
		seen[*id] = struct{}{}
		ids = append(ids, *id)
	}

	if booking != nil {
		collect(booking.ExternalCalendarEventID)
	}
	for _, s := range sessions {
		collect(s.ExternalCalendarEventID)
	}

	deleted := make([]string, 0, len(ids))
	for _, id := range ids {
		if err := uc.calendar.DeleteEvent(ctx, id); err != nil {
			uc.metrics.ObserveCalendarFailure("delete")
			uc.logger.Warn("RescheduleBooking: %v: failed to delete event id=%s of project id=%d: %v",
				domain.ErrExternalSync, id, projectID, err)
			continue
		}
		deleted = append(deleted, id)
	}
	return deleted
}

// syncCalendar создает событие для нового интервала и сохраняет его ID
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
		uc.logger.Warn("RescheduleBooking: %v: failed to create event for project id=%d: %v",
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
		uc.logger.Error("RescheduleBooking: failed to store event id=%s for project id=%d: %v", eventID, project.ID, err)
		return nil
	}

	return &eventID
}
