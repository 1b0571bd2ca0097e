package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/emarabot/plaza-os/internal/core/domain"
)

func TestHTTPErrorHandler_Mapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
		{"not authenticated", domain.ErrNotAuthenticated, http.StatusUnauthorized, "not logged in"},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, "access forbidden"},
		{"unknown session", domain.ErrSessionNotFound, http.StatusNotFound, domain.ErrSessionNotFound.Error()},
		{"booting", domain.ErrSessionBooting, http.StatusConflict, domain.ErrSessionBooting.Error()},
		{"session limit", domain.ErrSessionLimit, http.StatusServiceUnavailable, domain.ErrSessionLimit.Error()},
		{"pending", domain.ErrRequestPending, http.StatusConflict, domain.ErrRequestPending.Error()},
		{"unsupported image", domain.ErrUnsupportedImage, http.StatusUnprocessableEntity, domain.ErrUnsupportedImage.Error()},
		{"wrapped configuration", fmt.Errorf("concierge: %w", domain.ErrConfiguration), http.StatusServiceUnavailable, domain.ErrConfiguration.Error()},
		{"echo error", echo.NewHTTPError(http.StatusBadRequest, "bad body"), http.StatusBadRequest, "bad body"},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, "internal server error"},
	}

	e := echo.New()
	handle := NewHTTPErrorHandler(zerolog.Nop())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			handle(tt.err, c)

			if rec.Code != tt.wantCode {
				t.Errorf("expected %d, got %d", tt.wantCode, rec.Code)
			}
			var body errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Error != tt.wantMsg {
				t.Errorf("expected message %q, got %q", tt.wantMsg, body.Error)
			}
		})
	}
}
