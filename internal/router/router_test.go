package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/UniversityOfGdanskProjects/projektprogramistyczny-Wikator-sub000/internal/handler"
)

func testHandlers() *Handlers {
	return &Handlers{
		Auth:          &handler.AuthHandler{},
		Movies:        &handler.MovieHandler{},
		Reviews:       &handler.ReviewHandler{},
		Relations:     &handler.RelationHandler{},
		Comments:      &handler.CommentHandler{},
		Notifications: &handler.NotificationHandler{},
		Actors:        &handler.ActorHandler{},
		Genres:        &handler.GenreHandler{},
		Users:         &handler.UserHandler{},
	}
}

func newTestRouter(cacheMW echo.MiddlewareFunc) *echo.Echo {
	e := echo.New()
	e.Use(echomw.Recover())
	Register(e, testHandlers(), "secret", cacheMW)
	return e
}

// The cache stand-in answers every wrapped request itself, so any route
// it covers never reaches its handler.
func shortCircuitCache(seen *[]string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			*seen = append(*seen, c.Path())
			return c.String(http.StatusOK, "cached")
		}
	}
}

func TestCacheWrapsOnlySideEffectFreeRoutes(t *testing.T) {
	var seen []string
	e := newTestRouter(shortCircuitCache(&seen))

	for _, path := range []string{"/v1/movies", "/v1/movies/most-popular", "/v1/actors", "/v1/genres"} {
		rw := httptest.NewRecorder()
		e.ServeHTTP(rw, httptest.NewRequest(http.MethodGet, path, nil))
		if rw.Code != http.StatusOK || rw.Body.String() != "cached" {
			t.Fatalf("%s not served from cache: %d %q", path, rw.Code, rw.Body.String())
		}
	}

	// The detail fetch bumps the popularity counter, so an anonymous
	// view must reach the store instead of being answered from cache.
	rw := httptest.NewRecorder()
	e.ServeHTTP(rw, httptest.NewRequest(http.MethodGet, "/v1/movies/m1", nil))
	if rw.Body.String() == "cached" {
		t.Fatalf("movie detail must not be served from the response cache")
	}
	for _, p := range seen {
		if p == "/v1/movies/:id" {
			t.Fatalf("cache middleware wrapped the detail route")
		}
	}
}

func TestRegisterWithoutCache(t *testing.T) {
	e := newTestRouter(nil)
	rw := httptest.NewRecorder()
	e.ServeHTTP(rw, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rw.Code != http.StatusOK {
		t.Fatalf("healthz = %d", rw.Code)
	}
}

func TestAllRelationRoutesRegistered(t *testing.T) {
	e := newTestRouter(nil)
	want := map[string]bool{
		"POST /v1/movies/:id/watchlist":   false,
		"DELETE /v1/movies/:id/watchlist": false,
		"GET /v1/me/watchlist":            false,
		"POST /v1/movies/:id/favourite":   false,
		"DELETE /v1/movies/:id/favourite": false,
		"GET /v1/me/favourites":           false,
		"POST /v1/movies/:id/ignores":     false,
		"DELETE /v1/movies/:id/ignores":   false,
		"GET /v1/me/ignored":              false,
	}
	for _, r := range e.Routes() {
		key := r.Method + " " + r.Path
		if _, ok := want[key]; ok {
			want[key] = true
		}
	}
	for key, found := range want {
		if !found {
			t.Fatalf("route %s not registered", key)
		}
	}
}
