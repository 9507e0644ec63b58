package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func roleRequest(t *testing.T, role string, allowed ...string) int {
	t.Helper()
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	if role != "" {
		c.Set("role", role)
	}
	h := RequireRole(allowed...)(func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	if err := h(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	return c.Response().Status
}

func TestRequireRole(t *testing.T) {
	if got := roleRequest(t, "ADMIN", "ADMIN"); got != http.StatusOK {
		t.Fatalf("admin on admin route: %d", got)
	}
	if got := roleRequest(t, "USER", "ADMIN"); got != http.StatusForbidden {
		t.Fatalf("user on admin route: %d", got)
	}
	if got := roleRequest(t, "USER", "USER", "ADMIN"); got != http.StatusOK {
		t.Fatalf("user on shared route: %d", got)
	}
	if got := roleRequest(t, "", "USER"); got != http.StatusForbidden {
		t.Fatalf("missing role: %d", got)
	}
}
