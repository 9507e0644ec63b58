package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/UniversityOfGdanskProjects/projektprogramistyczny-Wikator-sub000/internal/database"
	"github.com/UniversityOfGdanskProjects/projektprogramistyczny-Wikator-sub000/internal/repository"
)

// ReviewHandler exposes the review operations. A user holds at most one
// review per movie; duplicates are rejected with a conflict.
type ReviewHandler struct {
	Driver  neo4j.DriverWithContext
	Reviews *repository.ReviewRepo
	Users   *repository.UserRepo
}

// NewReviewHandler constructs a ReviewHandler.
func NewReviewHandler(driver neo4j.DriverWithContext, reviews *repository.ReviewRepo, users *repository.UserRepo) *ReviewHandler {
	return &ReviewHandler{Driver: driver, Reviews: reviews, Users: users}
}

type reviewReq struct {
	Score int `json:"score"`
}

func validScore(s int) bool { return s >= 1 && s <= 5 }

// Add serves POST /v1/movies/:id/reviews.
func (h *ReviewHandler) Add(c echo.Context) error {
	var req reviewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if !validScore(req.Score) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "score must be between 1 and 5"})
	}
	caller := viewerID(c)
	movieID := c.Param("id")
	res, err := executeWrite(c.Request().Context(), h.Driver, func(run database.Runner) (any, error) {
		rev, err := h.Reviews.Add(c.Request().Context(), run, caller, movieID, req.Score)
		if err != nil {
			return nil, err
		}
		return rev, h.Users.TouchActivity(c.Request().Context(), run, caller)
	})
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusCreated, res)
}

// Update serves PUT /v1/reviews/:id. Only the review's owner can change
// the score; anyone else sees a 404.
func (h *ReviewHandler) Update(c echo.Context) error {
	var req reviewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if !validScore(req.Score) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "score must be between 1 and 5"})
	}
	caller := viewerID(c)
	reviewID := c.Param("id")
	_, err := executeWrite(c.Request().Context(), h.Driver, func(run database.Runner) (any, error) {
		if err := h.Reviews.Update(c.Request().Context(), run, caller, reviewID, req.Score); err != nil {
			return nil, err
		}
		return nil, h.Users.TouchActivity(c.Request().Context(), run, caller)
	})
	if err != nil {
		return httpError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete serves DELETE /v1/reviews/:id. Admins may delete any review.
func (h *ReviewHandler) Delete(c echo.Context) error {
	caller := viewerID(c)
	reviewID := c.Param("id")
	_, err := executeWrite(c.Request().Context(), h.Driver, func(run database.Runner) (any, error) {
		if err := h.Reviews.Delete(c.Request().Context(), run, caller, viewerRole(c), reviewID); err != nil {
			return nil, err
		}
		return nil, h.Users.TouchActivity(c.Request().Context(), run, caller)
	})
	if err != nil {
		return httpError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
