package cancel_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/m04kA/SMC-StudioScheduler/internal/domain"
	bookingRepo "github.com/m04kA/SMC-StudioScheduler/internal/infra/storage/booking"
	"github.com/m04kA/SMC-StudioScheduler/internal/infra/storage/dependents"
	"github.com/m04kA/SMC-StudioScheduler/internal/integrations/notifier"
	"github.com/m04kA/SMC-StudioScheduler/pkg/ptr"
	"github.com/m04kA/SMC-StudioScheduler/pkg/tracing"
)

const operation = "cancel"

var tracer = otel.Tracer("github.com/m04kA/SMC-StudioScheduler/internal/usecase/cancel_booking")

// UseCase use case для отмены съемки и удаления проекта
type UseCase struct {
	projectRepo    ProjectRepository
	bookingRepo    BookingRepository
	sessionRepo    SessionRepository
	dependentsRepo DependentsRepository
	targets        []dependents.Target
	calendar       CalendarAdapter
	notifier       Notifier
	txManager      TransactionManager
	metrics        Metrics
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	projectRepo ProjectRepository,
	bookingRepo BookingRepository,
	sessionRepo SessionRepository,
	dependentsRepo DependentsRepository,
	calendar CalendarAdapter,
	notifier Notifier,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		projectRepo:    projectRepo,
		bookingRepo:    bookingRepo,
		sessionRepo:    sessionRepo,
		dependentsRepo: dependentsRepo,
		targets:        dependents.Targets,
		calendar:       calendar,
		notifier:       notifier,
		txManager:      txManager,
		metrics:        metrics,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute выполняет use case отмены.
// Внешние события удаляются до транзакции; локальные записи удаляются вместе или не удаляются вовсе,
// кроме зависимых записей: их удаление best-effort по каждой таблице
func (uc *UseCase) Execute(ctx context.Context, req *Request) (resp *Response, err error) {
	ctx, span := tracer.Start(ctx, "CancelBooking")
	defer func() {
		uc.metrics.ObserveOperation(operation, domain.OutcomeOf(err))
		tracing.Finish(span, err)
	}()

	uc.logger.Info("CancelBooking: project=%d", req.ProjectID)

	// 1. Валидация входных данных
	if req.ProjectID <= 0 {
		uc.logger.Warn("CancelBooking: invalid project id=%d", req.ProjectID)
		return nil, fmt.Errorf("%w: projectID must be positive", ErrInvalidInput)
	}
	span.SetAttributes(attribute.Int64("project.id", req.ProjectID))

	// 2. Загружаем проект и проверяем переход состояния
	project, err := uc.projectRepo.GetByID(ctx, req.ProjectID)
	if err != nil {
		if errors.Is(err, domain.ErrProjectNotFound) {
			uc.logger.Warn("CancelBooking: project id=%d not found", req.ProjectID)
			return nil, ErrProjectNotFound
		}
		uc.logger.Error("CancelBooking: failed to get project id=%d: %v", req.ProjectID, err)
		return nil, fmt.Errorf("%w: get project: %w", ErrDependency, err)
	}
	if !project.SchedulingState.CanTransitionTo(domain.SchedulingCancelled) {
		uc.logger.Warn("CancelBooking: project id=%d is in state %s", project.ID, project.SchedulingState)
		return nil, fmt.Errorf("%w: state %s", ErrInvalidState, project.SchedulingState)
	}

	// 3. Бронирование и сессии проекта
	booking, err := uc.bookingRepo.GetByProjectID(ctx, project.ID)
	if err != nil && !errors.Is(err, bookingRepo.ErrBookingNotFound) {
		uc.logger.Error("CancelBooking: failed to get booking of project id=%d: %v", project.ID, err)
		return nil, fmt.Errorf("%w: get booking: %w", ErrDependency, err)
	}
	sessions, err := uc.sessionRepo.ListByProjectID(ctx, project.ID)
	if err != nil {
		uc.logger.Error("CancelBooking: failed to list sessions of project id=%d: %v", project.ID, err)
		return nil, fmt.Errorf("%w: list sessions: %w", ErrDependency, err)
	}

	// 4. Удаляем события во внешнем календаре (best-effort, по одному на сессию)
	deletedEvents := uc.deleteEvents(ctx, project.ID, booking, sessions)

	// 5. Удаляем локальные записи в одной транзакции
	resp = &Response{ProjectID: project.ID, ProjectNumber: project.ProjectNumber}

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		resp.CascadeFailures = nil
		resp.DependentsDeleted = 0

		// 5.1. Сессии
		sessionsDeleted, err := uc.sessionRepo.DeleteByProjectID(txCtx, project.ID)
		if err != nil {
			return fmt.Errorf("delete sessions: %w", err)
		}
		resp.SessionsDeleted = sessionsDeleted

		// 5.2. Бронирование
		bookingsDeleted, err := uc.bookingRepo.DeleteByProjectID(txCtx, project.ID)
		if err != nil {
			return fmt.Errorf("delete booking: %w", err)
		}
		resp.BookingsDeleted = bookingsDeleted

		// 5.3. Зависимые записи: отказ одной таблицы не останавливает остальные
		for _, target := range uc.targets {
			n, err := uc.dependentsRepo.DeleteByProject(txCtx, target, project.ID)
			if err != nil {
				uc.metrics.ObserveCascadeFailure(string(target))
				uc.logger.Warn("CancelBooking: %v: %s of project id=%d: %v",
					domain.ErrCascadePartialFailure, target, project.ID, err)
				resp.CascadeFailures = append(resp.CascadeFailures, target)
				continue
			}
			resp.DependentsDeleted += n
		}

		// 5.4. Проект
		if err := uc.projectRepo.Delete(txCtx, project.ID); err != nil {
			if errors.Is(err, domain.ErrProjectNotFound) {
				return ErrProjectNotFound
			}
			return fmt.Errorf("delete project: %w", err)
		}

		return nil
	})
	if err != nil {
		if !errors.Is(err, domain.ErrProjectNotFound) {
			err = fmt.Errorf("%w: %w", ErrDependency, err)
		}
		uc.logger.Error("CancelBooking: transaction failed for project id=%d: %v", project.ID, err)
		if len(deletedEvents) > 0 {
			uc.logger.Warn("CancelBooking: %v: project id=%d kept but events [%s] already deleted",
				domain.ErrExternalSync, project.ID, strings.Join(deletedEvents, ","))
		}
		return nil, err
	}

	uc.logger.Info("CancelBooking: project id=%d deleted: sessions=%d, bookings=%d, dependents=%d, cascade failures=%d",
		project.ID, resp.SessionsDeleted, resp.BookingsDeleted, resp.DependentsDeleted, len(resp.CascadeFailures))

	// 6. Уведомление (fire-and-forget)
	event := notifier.BookingEvent{
		Type:          notifier.EventBookingCancelled,
		ProjectID:     project.ID,
		ProjectNumber: project.ProjectNumber,
		ClientID:      project.ClientID,
		OccurredAt:    uc.timeProvider.Now(),
	}
	if booking != nil {
		event.Start = ptr.Ptr(booking.StartDatetime)
		event.End = ptr.Ptr(booking.EndDatetime)
	}
	uc.notifier.Notify(ctx, event)

	return resp, nil
}

// deleteEvents удаляет внешние события сессий и бронирования, каждое не более одного раза.
// Возвращает идентификаторы успешно удаленных событий
func (uc *UseCase) deleteEvents(ctx context.Context, projectID int64, booking *domain.Booking, sessions []*domain.Session) []string {
	seen := make(map[string]struct{})
	var deleted []string

	deleteOnce := func(id *string) {
		if id == nil || *id == "" {
			return
		}
		if _, ok := seen[*id]; ok {
			return
		}
		seen[*id] = struct{}{}

		if err := uc.calendar.DeleteEvent(ctx, *id); err != nil {
			uc.metrics.ObserveCalendarFailure("delete")
			uc.logger.Warn("CancelBooking: %v: failed to delete event id=%s of project id=%d: %v",
				domain.ErrExternalSync, *id, projectID, err)
			return
		}
		deleted = append(deleted, *id)
	}

	for _, s := range sessions {
		deleteOnce(s.ExternalCalendarEventID)
	}
	if booking != nil {
		deleteOnce(booking.ExternalCalendarEventID)
	}
	return deleted
}
