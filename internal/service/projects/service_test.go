package projects

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioScheduler/internal/domain"
	"github.com/m04kA/SMC-StudioScheduler/internal/usecase/usecasetest"
	"github.com/m04kA/SMC-StudioScheduler/pkg/logger"
	"github.com/m04kA/SMC-StudioScheduler/pkg/ptr"
)

func newService(store *usecasetest.Store) *Service {
	return NewService(
		store.Projects(),
		store.Bookings(),
		store.Sessions(),
		&usecasetest.TxManager{Store: store},
		logger.Nop(),
	)
}

func TestGetByID(t *testing.T) {
	store := usecasetest.NewStore()
	ctx := context.Background()
	start := time.Date(2030, 6, 4, 10, 0, 0, 0, time.UTC)

	project, err := store.Projects().Create(ctx, &domain.Project{
		ProjectNumber:   1001,
		ClientID:        7,
		ServiceID:       1,
		Address:         "Main st. 1",
		ShootDate:       time.Date(2030, 6, 4, 0, 0, 0, 0, time.UTC),
		ShootTime:       "10:00",
		Status:          domain.ProjectStatusBooked,
		SchedulingState: domain.SchedulingConfirmed,
	})
	require.NoError(t, err)
	_, err = store.Bookings().Create(ctx, &domain.Booking{
		ProjectID: project.ID, ClientID: 7, StartDatetime: start, EndDatetime: start.Add(time.Hour),
		ExternalCalendarEventID: ptr.Ptr("evt-1"),
	})
	require.NoError(t, err)
	_, err = store.Sessions().Create(ctx, &domain.Session{
		ProjectID: project.ID, ClientID: 7, StartDatetime: start, EndDatetime: start.Add(time.Hour),
		Status: domain.SessionStatusConfirmed,
	})
	require.NoError(t, err)

	resp, err := newService(store).GetByID(ctx, project.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(1001), resp.ProjectNumber)
	assert.Equal(t, "2030-06-04", resp.ShootDate)
	assert.Equal(t, "10:00", resp.ShootTime)
	assert.Equal(t, "confirmed", resp.SchedulingState)
	require.NotNil(t, resp.Booking)
	assert.Equal(t, start, resp.Booking.Start)
	assert.Equal(t, "evt-1", *resp.Booking.ExternalCalendarEventID)
	require.Len(t, resp.Sessions, 1)
	assert.Equal(t, resp.Booking.End, resp.Sessions[0].End)
}

func TestGetByID_NotFound(t *testing.T) {
	_, err := newService(usecasetest.NewStore()).GetByID(context.Background(), 404)

	assert.ErrorIs(t, err, ErrProjectNotFound)
	assert.ErrorIs(t, err, domain.ErrProjectNotFound)
}

func TestGetByID_InvalidID(t *testing.T) {
	_, err := newService(usecasetest.NewStore()).GetByID(context.Background(), 0)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestGetByID_RepositoryError(t *testing.T) {
	store := usecasetest.NewStore()
	store.Fail("projects.GetByID", nil)

	_, err := newService(store).GetByID(context.Background(), 1)

	assert.ErrorIs(t, err, ErrInternal)
}
