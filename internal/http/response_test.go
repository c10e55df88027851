package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/dkenzh/buildops/internal/service"
)

func TestHandleErrorStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := &Handler{log: zerolog.Nop()}

	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"invalid input", fmt.Errorf("%w: amount is required", service.ErrInvalidInput), http.StatusBadRequest},
		{"conflict", fmt.Errorf("%w: already approved", service.ErrConflict), http.StatusBadRequest},
		{"not found", service.ErrNotFound, http.StatusNotFound},
		{"unauthorized", fmt.Errorf("%w: invalid credentials", service.ErrUnauthorized), http.StatusUnauthorized},
		{"permission denied", service.ErrPermissionDenied, http.StatusForbidden},
		{"unknown", errors.New("database exploded"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			h.handleError(c, tc.err)

			assert.Equal(t, tc.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), `"success":false`)
			if tc.wantStatus == http.StatusInternalServerError {
				// Internal detail must not leak to the client.
				assert.NotContains(t, rec.Body.String(), "exploded")
			}
		})
	}
}
