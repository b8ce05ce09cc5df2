package delete_block

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-StudioScheduler/internal/service/availability"
	"github.com/m04kA/SMC-StudioScheduler/pkg/logger"
)

type serviceFunc func(ctx context.Context, id int64) error

func (f serviceFunc) DeleteBlock(ctx context.Context, id int64) error {
	return f(ctx, id)
}

func del(svc serviceFunc, target string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/blocks/{blockId}", NewHandler(svc, logger.Nop()).Handle).Methods(http.MethodDelete)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, target, nil))
	return rec
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name   string
		target string
		err    error
		status int
	}{
		{"deleted", "/blocks/42", nil, http.StatusNoContent},
		{"bad id", "/blocks/zero", nil, http.StatusBadRequest},
		{"not found", "/blocks/42", availability.ErrBlockNotFound, http.StatusNotFound},
		{"repository", "/blocks/42", errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got int64
			svc := serviceFunc(func(_ context.Context, id int64) error {
				got = id
				return tt.err
			})

			rec := del(svc, tt.target)

			assert.Equal(t, tt.status, rec.Code)
			if tt.status != http.StatusBadRequest {
				assert.Equal(t, int64(42), got)
			}
		})
	}
}
