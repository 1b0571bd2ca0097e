package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/emarabot/plaza-os/internal/core/domain"
)

func runRBAC(t *testing.T, kind domain.LoginKind, allowed ...domain.Role) (bool, error) {
	t.Helper()
	sessions := newTestSessions(t)
	sess := newSession(t, sessions, kind)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.Set(SessionKey, sess)

	called := false
	err := RBAC(allowed...)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})(c)
	return called, err
}

func TestRBAC_Allows(t *testing.T) {
	called, err := runRBAC(t, domain.LoginGuest, domain.RoleResident, domain.RoleGuest)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
}

func TestRBAC_ForbidsOtherRoles(t *testing.T) {
	called, err := runRBAC(t, domain.LoginAdmin, domain.RoleResident)
	if called {
		t.Fatalf("should not reach next handler")
	}
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestRBAC_RequiresLogin(t *testing.T) {
	called, err := runRBAC(t, "", domain.RoleResident)
	if called {
		t.Fatalf("should not reach next handler")
	}
	if !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
}

func TestRBAC_MissingSession(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	err := RBAC(domain.RoleResident)(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})(c)
	if err == nil {
		t.Fatal("expected an error without a session")
	}
}
