package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/UniversityOfGdanskProjects/projektprogramistyczny-Wikator-sub000/internal/database"
	"github.com/UniversityOfGdanskProjects/projektprogramistyczny-Wikator-sub000/internal/repository"
)

// UserHandler exposes the admin user views.
type UserHandler struct {
	Driver neo4j.DriverWithContext
	Users  *repository.UserRepo
}

// NewUserHandler constructs a UserHandler.
func NewUserHandler(driver neo4j.DriverWithContext, users *repository.UserRepo) *UserHandler {
	return &UserHandler{Driver: driver, Users: users}
}

// MostActive serves GET /v1/users/most-active (admin): the user with the
// highest activity score.
func (h *UserHandler) MostActive(c echo.Context) error {
	res, err := executeRead(c.Request().Context(), h.Driver, func(run database.Runner) (any, error) {
		return h.Users.MostActive(c.Request().Context(), run)
	})
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}
