// Package handler contains the HTTP layer: thin wrappers that open a
// graph transaction per request, call into the repositories and translate
// sentinel errors into status codes. All query logic lives in the
// repository package.
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/UniversityOfGdanskProjects/projektprogramistyczny-Wikator-sub000/internal/database"
	"github.com/UniversityOfGdanskProjects/projektprogramistyczny-Wikator-sub000/internal/model"
	"github.com/UniversityOfGdanskProjects/projektprogramistyczny-Wikator-sub000/internal/repository"
)

// executeRead runs work inside a read transaction on a fresh session.
// Every statement issued through the runner observes the same snapshot,
// which is what keeps a listing's count query and page query in agreement.
func executeRead(ctx context.Context, driver neo4j.DriverWithContext, work func(run database.Runner) (any, error)) (any, error) {
	session := driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)
	return session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		return work(database.NewTxRunner(tx))
	})
}

// executeWrite runs work inside a write transaction. The transaction
// commits only when work returns nil; mutations and their side effects
// (fan-out, cascades, popularity bumps) land atomically or not at all.
func executeWrite(ctx context.Context, driver neo4j.DriverWithContext, work func(run database.Runner) (any, error)) (any, error) {
	session := driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)
	return session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		return work(database.NewTxRunner(tx))
	})
}

// viewerID returns the authenticated user's id, or "" for guests.
func viewerID(c echo.Context) string {
	s, _ := c.Get("user_id").(string)
	return s
}

// viewerRole returns the authenticated user's role, or "" for guests.
func viewerRole(c echo.Context) string {
	s, _ := c.Get("role").(string)
	return s
}

// bindMovieQuery parses the listing query parameters. Unparseable
// numbers fall back to the defaults applied by MovieQuery.Normalize.
func bindMovieQuery(c echo.Context) model.MovieQuery {
	q := model.MovieQuery{
		Title:     c.QueryParam("title"),
		ActorID:   c.QueryParam("actor"),
		GenreName: c.QueryParam("genre"),
		SortBy:    c.QueryParam("sortBy"),
		SortOrder: c.QueryParam("sortOrder"),
	}
	if v := c.QueryParam("inTheaters"); v != "" {
		b := strings.EqualFold(v, "true") || v == "1"
		q.InTheaters = &b
	}
	if n, err := strconv.Atoi(c.QueryParam("pageNumber")); err == nil {
		q.PageNumber = n
	}
	if n, err := strconv.Atoi(c.QueryParam("pageSize")); err == nil {
		q.PageSize = n
	}
	return q
}

// httpError maps repository sentinels onto HTTP responses. Store faults
// and invariant violations become opaque 500s after logging.
func httpError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	case errors.Is(err, repository.ErrEmailExists):
		return c.JSON(http.StatusConflict, echo.Map{"error": "email already exists"})
	case errors.Is(err, repository.ErrConflict):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	default:
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}
