package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/UniversityOfGdanskProjects/projektprogramistyczny-Wikator-sub000/internal/database"
	"github.com/UniversityOfGdanskProjects/projektprogramistyczny-Wikator-sub000/internal/repository"
)

// RelationHandler exposes the watchlist/favourite/ignores toggles and the
// corresponding "my movies" listings. All three relation kinds share the
// same handler bodies, parameterized by kind at route registration.
type RelationHandler struct {
	Driver    neo4j.DriverWithContext
	Relations *repository.RelationRepo
	Movies    *repository.MovieRepo
	Users     *repository.UserRepo
}

// NewRelationHandler constructs a RelationHandler.
func NewRelationHandler(driver neo4j.DriverWithContext, relations *repository.RelationRepo, movies *repository.MovieRepo, users *repository.UserRepo) *RelationHandler {
	return &RelationHandler{Driver: driver, Relations: relations, Movies: movies, Users: users}
}

// Add returns the handler for POST /v1/movies/:id/<kind>.
func (h *RelationHandler) Add(kind string) echo.HandlerFunc {
	return func(c echo.Context) error {
		caller := viewerID(c)
		movieID := c.Param("id")
		_, err := executeWrite(c.Request().Context(), h.Driver, func(run database.Runner) (any, error) {
			if err := h.Relations.Add(c.Request().Context(), run, caller, movieID, kind); err != nil {
				return nil, err
			}
			return nil, h.Users.TouchActivity(c.Request().Context(), run, caller)
		})
		if err != nil {
			return httpError(c, err)
		}
		return c.NoContent(http.StatusCreated)
	}
}

// Remove returns the handler for DELETE /v1/movies/:id/<kind>.
func (h *RelationHandler) Remove(kind string) echo.HandlerFunc {
	return func(c echo.Context) error {
		caller := viewerID(c)
		movieID := c.Param("id")
		_, err := executeWrite(c.Request().Context(), h.Driver, func(run database.Runner) (any, error) {
			if err := h.Relations.Remove(c.Request().Context(), run, caller, movieID, kind); err != nil {
				return nil, err
			}
			return nil, h.Users.TouchActivity(c.Request().Context(), run, caller)
		})
		if err != nil {
			return httpError(c, err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}

// ListMine returns the handler for GET /v1/me/<kind>: the caller's
// movies on that list, run through the same filter/aggregate/paginate
// pipeline as the main listing.
func (h *RelationHandler) ListMine(kind string) echo.HandlerFunc {
	return func(c echo.Context) error {
		caller := viewerID(c)
		q := bindMovieQuery(c)
		res, err := executeRead(c.Request().Context(), h.Driver, func(run database.Runner) (any, error) {
			return h.Movies.ListByRelation(c.Request().Context(), run, caller, kind, q)
		})
		if err != nil {
			return httpError(c, err)
		}
		return c.JSON(http.StatusOK, res)
	}
}
