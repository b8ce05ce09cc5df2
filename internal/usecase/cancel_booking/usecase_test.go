package cancel_booking

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioScheduler/internal/domain"
	"github.com/m04kA/SMC-StudioScheduler/internal/infra/storage/dependents"
	"github.com/m04kA/SMC-StudioScheduler/internal/integrations/notifier"
	"github.com/m04kA/SMC-StudioScheduler/internal/usecase/usecasetest"
	"github.com/m04kA/SMC-StudioScheduler/pkg/logger"
	"github.com/m04kA/SMC-StudioScheduler/pkg/metrics"
	"github.com/m04kA/SMC-StudioScheduler/pkg/ptr"
)

var shootStart = time.Date(2030, 6, 4, 10, 0, 0, 0, time.UTC)

type fixture struct {
	store    *usecasetest.Store
	calendar *usecasetest.Calendar
	notifier *usecasetest.Notifier
	uc       *UseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := usecasetest.NewStore()
	f := &fixture{
		store:    store,
		calendar: &usecasetest.Calendar{},
		notifier: &usecasetest.Notifier{},
	}

	f.uc = NewUseCase(
		store.Projects(),
		store.Bookings(),
		store.Sessions(),
		store.Dependents(),
		f.calendar,
		f.notifier,
		&usecasetest.TxManager{Store: store},
		(*metrics.Metrics)(nil),
		logger.Nop(),
	)
	f.uc.timeProvider = &usecasetest.Clock{T: shootStart.AddDate(0, 0, -3)}

	t.Cleanup(func() { f.calendar.AssertExpectations(t) })
	return f
}

func (f *fixture) seed(t *testing.T, eventID *string, extraSessions ...*string) *domain.Project {
	t.Helper()
	ctx := context.Background()
	interval := domain.NewInterval(shootStart, 60)

	project, err := f.store.Projects().Create(ctx, &domain.Project{
		ProjectNumber:   3001,
		ClientID:        7,
		ServiceID:       1,
		Address:         "Main st. 1",
		ShootDate:       shootStart.Truncate(24 * time.Hour),
		ShootTime:       "10:00",
		Status:          domain.ProjectStatusBooked,
		SchedulingState: domain.SchedulingConfirmed,
	})
	require.NoError(t, err)

	_, err = f.store.Bookings().Create(ctx, &domain.Booking{
		ProjectID:               project.ID,
		ClientID:                7,
		StartDatetime:           interval.Start,
		EndDatetime:             interval.End,
		ExternalCalendarEventID: eventID,
	})
	require.NoError(t, err)

	for _, id := range append([]*string{eventID}, extraSessions...) {
		_, err = f.store.Sessions().Create(ctx, &domain.Session{
			ProjectID:               project.ID,
			ClientID:                7,
			StartDatetime:           interval.Start,
			EndDatetime:             interval.End,
			Status:                  domain.SessionStatusConfirmed,
			ExternalCalendarEventID: id,
		})
		require.NoError(t, err)
	}

	return project
}

func TestExecute_DeletesEverything(t *testing.T) {
	f := newFixture(t)
	project := f.seed(t, ptr.Ptr("evt-1"))
	f.store.AddDependent(dependents.TargetFiles, project.ID, 3)
	f.store.AddDependent(dependents.TargetInvoices, project.ID, 1)

	f.calendar.On("DeleteEvent", mock.Anything, "evt-1").Return(nil).Once()

	resp, err := f.uc.Execute(t.Context(), &Request{ProjectID: project.ID})
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.SessionsDeleted)
	assert.Equal(t, int64(1), resp.BookingsDeleted)
	assert.Equal(t, int64(4), resp.DependentsDeleted)
	assert.Empty(t, resp.CascadeFailures)

	projects, bookings, sessions := f.store.Counts()
	assert.Zero(t, projects+bookings+sessions)
	assert.Zero(t, f.store.DependentCount(dependents.TargetFiles, project.ID))

	events := f.notifier.Events()
	require.Len(t, events, 1)
	assert.Equal(t, notifier.EventBookingCancelled, events[0].Type)
	assert.Equal(t, int64(3001), events[0].ProjectNumber)
	require.NotNil(t, events[0].Start)
	assert.Equal(t, shootStart, *events[0].Start)

	_, err = f.uc.Execute(t.Context(), &Request{ProjectID: project.ID})
	assert.ErrorIs(t, err, domain.ErrProjectNotFound, "cancelled project is gone")
}

func TestExecute_DeletesEachEventOnce(t *testing.T) {
	f := newFixture(t)
	project := f.seed(t, ptr.Ptr("evt-1"), ptr.Ptr("evt-2"), ptr.Ptr("evt-1"), nil)

	f.calendar.On("DeleteEvent", mock.Anything, "evt-1").Return(nil).Once()
	f.calendar.On("DeleteEvent", mock.Anything, "evt-2").Return(nil).Once()

	resp, err := f.uc.Execute(t.Context(), &Request{ProjectID: project.ID})

	require.NoError(t, err)
	assert.Equal(t, int64(4), resp.SessionsDeleted)
	f.calendar.AssertNumberOfCalls(t, "DeleteEvent", 2)
}

func TestExecute_CalendarFailureDoesNotBlock(t *testing.T) {
	f := newFixture(t)
	project := f.seed(t, ptr.Ptr("evt-1"))
	f.calendar.On("DeleteEvent", mock.Anything, "evt-1").Return(errors.New("calendar down")).Once()

	_, err := f.uc.Execute(t.Context(), &Request{ProjectID: project.ID})

	require.NoError(t, err)
	projects, _, _ := f.store.Counts()
	assert.Zero(t, projects)
}

func TestExecute_CascadeFailureIsPartial(t *testing.T) {
	f := newFixture(t)
	project := f.seed(t, nil)
	f.store.AddDependent(dependents.TargetFiles, project.ID, 2)
	f.store.AddDependent(dependents.TargetInvoices, project.ID, 5)
	f.store.AddDependent(dependents.TargetDocuments, project.ID, 1)
	f.store.Fail("dependents."+string(dependents.TargetInvoices), nil)

	resp, err := f.uc.Execute(t.Context(), &Request{ProjectID: project.ID})

	require.NoError(t, err)
	assert.Equal(t, []dependents.Target{dependents.TargetInvoices}, resp.CascadeFailures)
	assert.Equal(t, int64(3), resp.DependentsDeleted)
	assert.Zero(t, f.store.DependentCount(dependents.TargetDocuments, project.ID), "later targets still processed")
	assert.Zero(t, f.store.DependentCount(dependents.TargetInvoices, project.ID))
	assert.Equal(t, 5, f.store.OrphanedCount(dependents.TargetInvoices), "failed target keeps rows with project_id set to NULL")
	assert.Zero(t, f.store.OrphanedCount(dependents.TargetFiles))

	_, ok := f.store.ProjectByID(project.ID)
	assert.False(t, ok)
}

func TestExecute_SessionDeleteFailureKeepsDependents(t *testing.T) {
	f := newFixture(t)
	project := f.seed(t, nil)
	f.store.AddDependent(dependents.TargetFiles, project.ID, 2)
	f.store.Fail("sessions.DeleteByProjectID", nil)

	_, err := f.uc.Execute(t.Context(), &Request{ProjectID: project.ID})

	require.ErrorIs(t, err, ErrDependency)
	_, ok := f.store.ProjectByID(project.ID)
	assert.True(t, ok, "transaction rolled back")
	assert.Equal(t, 2, f.store.DependentCount(dependents.TargetFiles, project.ID))
	assert.Zero(t, f.store.OrphanedCount(dependents.TargetFiles))
}

func TestExecute_TransactionFailureLogsDeletedEvents(t *testing.T) {
	var buf bytes.Buffer
	f := newFixture(t)
	f.uc.logger = logger.NewWithWriter(&buf, "debug")
	project := f.seed(t, ptr.Ptr("evt-1"))
	f.calendar.On("DeleteEvent", mock.Anything, "evt-1").Return(nil).Once()
	f.store.Fail("projects.Delete", nil)

	_, err := f.uc.Execute(t.Context(), &Request{ProjectID: project.ID})

	require.ErrorIs(t, err, ErrDependency)
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "events [evt-1] already deleted")
	_, ok := f.store.ProjectByID(project.ID)
	assert.True(t, ok)
}

func TestExecute_LocalDeleteFailureRollsBack(t *testing.T) {
	f := newFixture(t)
	project := f.seed(t, nil)
	f.store.AddDependent(dependents.TargetFiles, project.ID, 2)
	f.store.Fail("projects.Delete", nil)

	_, err := f.uc.Execute(t.Context(), &Request{ProjectID: project.ID})

	assert.ErrorIs(t, err, domain.ErrHardDependency)
	projects, bookings, sessions := f.store.Counts()
	assert.Equal(t, 1, projects)
	assert.Equal(t, 1, bookings)
	assert.Equal(t, 1, sessions)
	assert.Equal(t, 2, f.store.DependentCount(dependents.TargetFiles, project.ID))
	assert.Empty(t, f.notifier.Events())
}

func TestExecute_Errors(t *testing.T) {
	t.Run("invalid id", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.uc.Execute(t.Context(), &Request{ProjectID: 0})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.uc.Execute(t.Context(), &Request{ProjectID: 42})
		assert.ErrorIs(t, err, ErrProjectNotFound)
	})

	t.Run("state does not allow cancel", func(t *testing.T) {
		f := newFixture(t)
		project := f.seed(t, nil)
		require.NoError(t, f.store.Projects().UpdateSchedulingState(t.Context(), project.ID, domain.SchedulingRescheduled))

		_, err := f.uc.Execute(t.Context(), &Request{ProjectID: project.ID})
		assert.ErrorIs(t, err, ErrInvalidState)
	})
}
