package reschedule_booking

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

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioScheduler/internal/domain"
	rescheduleBooking "github.com/m04kA/SMC-StudioScheduler/internal/usecase/reschedule_booking"
	"github.com/m04kA/SMC-StudioScheduler/pkg/logger"
	"github.com/m04kA/SMC-StudioScheduler/pkg/ptr"
)

const validBody = `{"date":"2030-06-05","startTime":"14:00"}`

type useCaseFunc func(ctx context.Context, req *rescheduleBooking.Request) (*rescheduleBooking.Response, error)

func (f useCaseFunc) Execute(ctx context.Context, req *rescheduleBooking.Request) (*rescheduleBooking.Response, error) {
	return f(ctx, req)
}

func put(uc useCaseFunc, target, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/projects/{projectId}/schedule", NewHandler(uc, time.UTC, logger.Nop()).Handle).Methods(http.MethodPut)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, target, strings.NewReader(body)))
	return rec
}

func TestHandle_Rescheduled(t *testing.T) {
	previous := time.Date(2030, 6, 4, 10, 0, 0, 0, time.UTC)
	var got *rescheduleBooking.Request
	uc := useCaseFunc(func(_ context.Context, req *rescheduleBooking.Request) (*rescheduleBooking.Response, error) {
		got = req
		start := req.StartTime.On(req.Date)
		return &rescheduleBooking.Response{
			ProjectID:       req.ProjectID,
			ProjectNumber:   1001,
			BookingID:       110,
			SessionID:       111,
			PreviousStart:   ptr.Ptr(previous),
			Start:           start,
			End:             start.Add(time.Hour),
			SchedulingState: domain.SchedulingConfirmed,
		}, nil
	})

	rec := put(uc, "/projects/101/schedule", validBody)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got)
	assert.Equal(t, int64(101), got.ProjectID)
	assert.Equal(t, "14:00", got.StartTime.String())

	var body RescheduleResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(1001), body.ProjectNumber)
	require.NotNil(t, body.PreviousStart)
	assert.True(t, previous.Equal(*body.PreviousStart))
	assert.Nil(t, body.ExternalCalendarEventID)
}

func TestHandle_BadRequest(t *testing.T) {
	never := useCaseFunc(func(context.Context, *rescheduleBooking.Request) (*rescheduleBooking.Response, error) {
		t.Fatal("use case must not be called")
		return nil, nil
	})

	tests := []struct {
		name    string
		target  string
		body    string
		message string
	}{
		{"zero project id", "/projects/0/schedule", validBody, msgInvalidProjectID},
		{"broken body", "/projects/101/schedule", `{"date":`, msgInvalidRequestBody},
		{"bad date", "/projects/101/schedule", `{"date":"tomorrow","startTime":"14:00"}`, msgInvalidDate},
		{"bad time", "/projects/101/schedule", `{"date":"2030-06-05","startTime":"2pm"}`, msgInvalidTime},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := put(never, tt.target, tt.body)

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
		{"not found", rescheduleBooking.ErrProjectNotFound, http.StatusNotFound},
		{"slot taken", rescheduleBooking.ErrSlotNotAvailable, http.StatusConflict},
		{"invalid state", rescheduleBooking.ErrInvalidState, http.StatusBadRequest},
		{"service gone", rescheduleBooking.ErrServiceNotFound, http.StatusBadRequest},
		{"slot in past", rescheduleBooking.ErrSlotInPast, http.StatusBadRequest},
		{"outside working hours", rescheduleBooking.ErrOutsideWorkingHours, http.StatusBadRequest},
		{"db down", fmt.Errorf("%w: tx aborted", rescheduleBooking.ErrDependency), http.StatusServiceUnavailable},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := useCaseFunc(func(context.Context, *rescheduleBooking.Request) (*rescheduleBooking.Response, error) {
				return nil, tt.err
			})

			rec := put(uc, "/projects/101/schedule", validBody)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
