package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/UniversityOfGdanskProjects/projektprogramistyczny-Wikator-sub000/internal/database"
	"github.com/UniversityOfGdanskProjects/projektprogramistyczny-Wikator-sub000/internal/repository"
)

// GenreHandler exposes the pre-seeded genre set.
type GenreHandler struct {
	Driver neo4j.DriverWithContext
	Genres *repository.GenreRepo
}

// NewGenreHandler constructs a GenreHandler.
func NewGenreHandler(driver neo4j.DriverWithContext, genres *repository.GenreRepo) *GenreHandler {
	return &GenreHandler{Driver: driver, Genres: genres}
}

// List serves GET /v1/genres.
func (h *GenreHandler) List(c echo.Context) error {
	res, err := executeRead(c.Request().Context(), h.Driver, func(run database.Runner) (any, error) {
		return h.Genres.List(c.Request().Context(), run)
	})
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}
