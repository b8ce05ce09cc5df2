package get_project

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioScheduler/internal/service/projects"
	"github.com/m04kA/SMC-StudioScheduler/internal/service/projects/models"
	"github.com/m04kA/SMC-StudioScheduler/pkg/logger"
)

type serviceFunc func(ctx context.Context, id int64) (*models.ProjectResponse, error)

func (f serviceFunc) GetByID(ctx context.Context, id int64) (*models.ProjectResponse, error) {
	return f(ctx, id)
}

func get(svc serviceFunc, target string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/projects/{projectId}", NewHandler(svc, logger.Nop()).Handle).Methods(http.MethodGet)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandle_Found(t *testing.T) {
	svc := serviceFunc(func(_ context.Context, id int64) (*models.ProjectResponse, error) {
		return &models.ProjectResponse{
			ID:              id,
			ProjectNumber:   1001,
			SchedulingState: "confirmed",
			Sessions:        []models.SessionResponse{},
		}, nil
	})

	rec := get(svc, "/projects/101")

	require.Equal(t, http.StatusOK, rec.Code)

	var body models.ProjectResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(101), body.ID)
	assert.Equal(t, int64(1001), body.ProjectNumber)
	assert.Nil(t, body.Booking)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		err    error
		status int
	}{
		{"bad id", "/projects/x", nil, http.StatusBadRequest},
		{"not found", "/projects/101", projects.ErrProjectNotFound, http.StatusNotFound},
		{"internal", "/projects/101", projects.ErrInternal, http.StatusInternalServerError},
		{"unknown", "/projects/101", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := serviceFunc(func(context.Context, int64) (*models.ProjectResponse, error) {
				return nil, tt.err
			})

			assert.Equal(t, tt.status, get(svc, tt.target).Code)
		})
	}
}
