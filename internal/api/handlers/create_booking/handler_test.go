package create_booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioScheduler/internal/domain"
	createBooking "github.com/m04kA/SMC-StudioScheduler/internal/usecase/create_booking"
	"github.com/m04kA/SMC-StudioScheduler/pkg/logger"
	"github.com/m04kA/SMC-StudioScheduler/pkg/ptr"
)

const validBody = `{"clientId":5,"serviceId":1,"date":"2030-06-04","startTime":"10:00","address":"Studio A"}`

type useCaseFunc func(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error)

func (f useCaseFunc) Execute(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	return f(ctx, req)
}

func post(uc useCaseFunc, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(body))
	NewHandler(uc, time.UTC, logger.Nop()).Handle(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	var got *createBooking.Request
	uc := useCaseFunc(func(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
		got = req
		start := req.StartTime.On(req.Date)
		return &createBooking.Response{
			ProjectID:               101,
			ProjectNumber:           1001,
			BookingID:               102,
			SessionID:               103,
			ClientID:                req.ClientID,
			ServiceID:               req.ServiceID,
			Address:                 req.Address,
			Start:                   start,
			End:                     start.Add(time.Hour),
			SchedulingState:         domain.SchedulingConfirmed,
			ExternalCalendarEventID: ptr.Ptr("evt-1"),
		}, nil
	})

	rec := post(uc, validBody)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, got)
	assert.Equal(t, int64(5), got.ClientID)
	assert.Equal(t, "10:00", got.StartTime.String())
	assert.Equal(t, time.Date(2030, 6, 4, 0, 0, 0, 0, time.UTC), got.Date)

	var body ProjectResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(1001), body.ProjectNumber)
	assert.Equal(t, "confirmed", body.SchedulingState)
	assert.Equal(t, "evt-1", ptr.Value(body.ExternalCalendarEventID))
}

func TestHandle_BadPayload(t *testing.T) {
	never := useCaseFunc(func(context.Context, *createBooking.Request) (*createBooking.Response, error) {
		t.Fatal("use case must not be called")
		return nil, nil
	})

	tests := []struct {
		name    string
		body    string
		message string
	}{
		{"not json", `{`, msgInvalidRequestBody},
		{"unknown field", `{"clientId":5,"roomId":1}`, msgInvalidRequestBody},
		{"bad date", `{"clientId":5,"serviceId":1,"date":"04/06/2030","startTime":"10:00"}`, msgInvalidDate},
		{"bad time", `{"clientId":5,"serviceId":1,"date":"2030-06-04","startTime":"25:00"}`, msgInvalidTime},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(never, tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.message)
		})
	}
}

func TestHandle_UseCaseErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"slot taken", createBooking.ErrSlotNotAvailable, http.StatusConflict},
		{"service not found", createBooking.ErrServiceNotFound, http.StatusBadRequest},
		{"service inactive", createBooking.ErrServiceInactive, http.StatusBadRequest},
		{"slot in past", createBooking.ErrSlotInPast, http.StatusBadRequest},
		{"outside working hours", createBooking.ErrOutsideWorkingHours, http.StatusBadRequest},
		{"invalid input", fmt.Errorf("%w: address too long", createBooking.ErrInvalidInput), http.StatusBadRequest},
		{"sequence down", fmt.Errorf("%w: sequence timeout", createBooking.ErrDependency), http.StatusServiceUnavailable},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := useCaseFunc(func(context.Context, *createBooking.Request) (*createBooking.Response, error) {
				return nil, tt.err
			})

			rec := post(uc, validBody)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
