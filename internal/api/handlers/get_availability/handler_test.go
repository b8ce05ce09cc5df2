package get_availability

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioScheduler/internal/service/availability/models"
	"github.com/m04kA/SMC-StudioScheduler/pkg/logger"
)

type serviceFunc func(ctx context.Context) (*models.WeekResponse, error)

func (f serviceFunc) ListWindows(ctx context.Context) (*models.WeekResponse, error) {
	return f(ctx)
}

func TestHandle_ReturnsWeek(t *testing.T) {
	svc := serviceFunc(func(context.Context) (*models.WeekResponse, error) {
		return &models.WeekResponse{Windows: []models.WindowResponse{
			{DayOfWeek: 0, StartTime: "09:00", EndTime: "17:00", IsDefault: true},
			{DayOfWeek: 1, StartTime: "10:00", EndTime: "18:00"},
		}}, nil
	})

	rec := httptest.NewRecorder()
	NewHandler(svc, logger.Nop()).Handle(rec, httptest.NewRequest(http.MethodGet, "/availability", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body models.WeekResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Windows, 2)
	assert.True(t, body.Windows[0].IsDefault)
	assert.Equal(t, "10:00", body.Windows[1].StartTime.String())
}

func TestHandle_ServiceError(t *testing.T) {
	svc := serviceFunc(func(context.Context) (*models.WeekResponse, error) {
		return nil, errors.New("db down")
	})

	rec := httptest.NewRecorder()
	NewHandler(svc, logger.Nop()).Handle(rec, httptest.NewRequest(http.MethodGet, "/availability", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
