package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/UniversityOfGdanskProjects/projektprogramistyczny-Wikator-sub000/internal/database"
	"github.com/UniversityOfGdanskProjects/projektprogramistyczny-Wikator-sub000/internal/model"
	"github.com/UniversityOfGdanskProjects/projektprogramistyczny-Wikator-sub000/internal/repository"
)

// MovieHandler exposes the catalog listing, detail and admin mutations.
type MovieHandler struct {
	Driver neo4j.DriverWithContext
	Movies *repository.MovieRepo
	Users  *repository.UserRepo
}

// NewMovieHandler constructs a MovieHandler.
func NewMovieHandler(driver neo4j.DriverWithContext, movies *repository.MovieRepo, users *repository.UserRepo) *MovieHandler {
	if driver == nil || movies == nil || users == nil {
		panic("nil dependency passed to NewMovieHandler")
	}
	return &MovieHandler{Driver: driver, Movies: movies, Users: users}
}

type movieReq struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	ReleaseDate string   `json:"releaseDate"`
	MinimumAge  int      `json:"minimumAge"`
	InTheaters  bool     `json:"inTheaters"`
	TrailerURI  *string  `json:"trailerUri"`
	ActorIDs    []string `json:"actorIds"`
	Genres      []string `json:"genres"`
}

// List serves GET /v1/movies. With a valid token the listing is
// personalized (ignore-list exclusion plus viewer overlays); without one
// it is anonymous. Both variants run in a read transaction.
func (h *MovieHandler) List(c echo.Context) error {
	q := bindMovieQuery(c)
	viewer := viewerID(c)
	res, err := executeRead(c.Request().Context(), h.Driver, func(run database.Runner) (any, error) {
		if viewer == "" {
			return h.Movies.List(c.Request().Context(), run, q)
		}
		return h.Movies.ListForUser(c.Request().Context(), run, viewer, q)
	})
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

// Get serves GET /v1/movies/:id. The popularity counter is incremented
// as a side effect of the read, so this runs in a write transaction.
func (h *MovieHandler) Get(c echo.Context) error {
	id := c.Param("id")
	viewer := viewerID(c)
	res, err := executeWrite(c.Request().Context(), h.Driver, func(run database.Runner) (any, error) {
		return h.Movies.GetDetail(c.Request().Context(), run, id, viewer)
	})
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

// MostPopular serves GET /v1/movies/most-popular.
func (h *MovieHandler) MostPopular(c echo.Context) error {
	res, err := executeRead(c.Request().Context(), h.Driver, func(run database.Runner) (any, error) {
		return h.Movies.MostPopular(c.Request().Context(), run)
	})
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

// Create serves POST /v1/movies (admin). Unresolvable actor ids or genre
// names are skipped, never rejected.
func (h *MovieHandler) Create(c echo.Context) error {
	var req movieReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title required"})
	}
	m := &model.Movie{
		Title:       req.Title,
		Description: req.Description,
		ReleaseDate: req.ReleaseDate,
		MinimumAge:  req.MinimumAge,
		InTheaters:  req.InTheaters,
		TrailerURI:  req.TrailerURI,
	}
	caller := viewerID(c)
	_, err := executeWrite(c.Request().Context(), h.Driver, func(run database.Runner) (any, error) {
		if err := h.Movies.Create(c.Request().Context(), run, m, req.ActorIDs, req.Genres); err != nil {
			return nil, err
		}
		return nil, h.Users.TouchActivity(c.Request().Context(), run, caller)
	})
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusCreated, m)
}

// Update serves PUT /v1/movies/:id (admin). The supplied actor id and
// genre name sets are reconciled against the stored edges: missing edges
// are created, extra ones removed. Reapplying the same sets is a no-op.
func (h *MovieHandler) Update(c echo.Context) error {
	var req movieReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title required"})
	}
	m := &model.Movie{
		ID:          c.Param("id"),
		Title:       req.Title,
		Description: req.Description,
		ReleaseDate: req.ReleaseDate,
		MinimumAge:  req.MinimumAge,
		InTheaters:  req.InTheaters,
		TrailerURI:  req.TrailerURI,
	}
	caller := viewerID(c)
	_, err := executeWrite(c.Request().Context(), h.Driver, func(run database.Runner) (any, error) {
		if err := h.Movies.Update(c.Request().Context(), run, m, req.ActorIDs, req.Genres); err != nil {
			return nil, err
		}
		return nil, h.Users.TouchActivity(c.Request().Context(), run, caller)
	})
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, m)
}

// UpdatePicture serves PUT /v1/movies/:id/picture (admin). A null
// pictureUri clears the stored picture.
func (h *MovieHandler) UpdatePicture(c echo.Context) error {
	var req struct {
		PictureURI      *string `json:"pictureUri"`
		PicturePublicID *string `json:"picturePublicId"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	id := c.Param("id")
	caller := viewerID(c)
	_, err := executeWrite(c.Request().Context(), h.Driver, func(run database.Runner) (any, error) {
		if err := h.Movies.UpdatePicture(c.Request().Context(), run, id, req.PictureURI, req.PicturePublicID); err != nil {
			return nil, err
		}
		return nil, h.Users.TouchActivity(c.Request().Context(), run, caller)
	})
	if err != nil {
		return httpError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete serves DELETE /v1/movies/:id (admin). All incident
// relationships, including comments and the notifications fanned out for
// them, go with the movie.
func (h *MovieHandler) Delete(c echo.Context) error {
	id := c.Param("id")
	caller := viewerID(c)
	_, err := executeWrite(c.Request().Context(), h.Driver, func(run database.Runner) (any, error) {
		if err := h.Movies.Delete(c.Request().Context(), run, id); err != nil {
			return nil, err
		}
		return nil, h.Users.TouchActivity(c.Request().Context(), run, caller)
	})
	if err != nil {
		return httpError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
