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

// ActorHandler exposes the actor catalog. Reads are public; mutations
// are admin-only (enforced at route registration).
type ActorHandler struct {
	Driver neo4j.DriverWithContext
	Actors *repository.ActorRepo
	Users  *repository.UserRepo
}

// NewActorHandler constructs an ActorHandler.
func NewActorHandler(driver neo4j.DriverWithContext, actors *repository.ActorRepo, users *repository.UserRepo) *ActorHandler {
	return &ActorHandler{Driver: driver, Actors: actors, Users: users}
}

type actorReq struct {
	FirstName   string  `json:"firstName"`
	LastName    string  `json:"lastName"`
	DateOfBirth string  `json:"dateOfBirth"`
	Biography   string  `json:"biography"`
	PictureURI  *string `json:"pictureUri"`
}

// List serves GET /v1/actors.
func (h *ActorHandler) List(c echo.Context) error {
	res, err := executeRead(c.Request().Context(), h.Driver, func(run database.Runner) (any, error) {
		return h.Actors.List(c.Request().Context(), run)
	})
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

// Get serves GET /v1/actors/:id.
func (h *ActorHandler) Get(c echo.Context) error {
	id := c.Param("id")
	res, err := executeRead(c.Request().Context(), h.Driver, func(run database.Runner) (any, error) {
		return h.Actors.GetByID(c.Request().Context(), run, id)
	})
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

// Create serves POST /v1/actors (admin).
func (h *ActorHandler) Create(c echo.Context) error {
	var req actorReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.FirstName) == "" || strings.TrimSpace(req.LastName) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "firstName/lastName required"})
	}
	a := &model.Actor{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		DateOfBirth: req.DateOfBirth,
		Biography:   req.Biography,
		PictureURI:  req.PictureURI,
	}
	caller := viewerID(c)
	_, err := executeWrite(c.Request().Context(), h.Driver, func(run database.Runner) (any, error) {
		if err := h.Actors.Create(c.Request().Context(), run, a); err != nil {
			return nil, err
		}
		return nil, h.Users.TouchActivity(c.Request().Context(), run, caller)
	})
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusCreated, a)
}

// Update serves PUT /v1/actors/:id (admin).
func (h *ActorHandler) Update(c echo.Context) error {
	var req actorReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	a := &model.Actor{
		ID:          c.Param("id"),
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		DateOfBirth: req.DateOfBirth,
		Biography:   req.Biography,
	}
	caller := viewerID(c)
	_, err := executeWrite(c.Request().Context(), h.Driver, func(run database.Runner) (any, error) {
		if err := h.Actors.Update(c.Request().Context(), run, a); err != nil {
			return nil, err
		}
		return nil, h.Users.TouchActivity(c.Request().Context(), run, caller)
	})
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, a)
}

// UpdatePicture serves PUT /v1/actors/:id/picture (admin). A null
// pictureUri clears the stored picture.
func (h *ActorHandler) UpdatePicture(c echo.Context) error {
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
		if err := h.Actors.UpdatePicture(c.Request().Context(), run, id, req.PictureURI, req.PicturePublicID); err != nil {
			return nil, err
		}
		return nil, h.Users.TouchActivity(c.Request().Context(), run, caller)
	})
	if err != nil {
		return httpError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete serves DELETE /v1/actors/:id (admin).
func (h *ActorHandler) Delete(c echo.Context) error {
	id := c.Param("id")
	caller := viewerID(c)
	_, err := executeWrite(c.Request().Context(), h.Driver, func(run database.Runner) (any, error) {
		if err := h.Actors.Delete(c.Request().Context(), run, id); err != nil {
			return nil, err
		}
		return nil, h.Users.TouchActivity(c.Request().Context(), run, caller)
	})
	if err != nil {
		return httpError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
