package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/UniversityOfGdanskProjects/projektprogramistyczny-Wikator-sub000/internal/database"
	"github.com/UniversityOfGdanskProjects/projektprogramistyczny-Wikator-sub000/internal/queue"
	"github.com/UniversityOfGdanskProjects/projektprogramistyczny-Wikator-sub000/internal/repository"
	queue_publisher "github.com/UniversityOfGdanskProjects/projektprogramistyczny-Wikator-sub000/internal/service"
)

// CommentHandler exposes comment posting, editing and deletion. Posting
// fans out notification edges inside the write transaction; the broker
// payloads are published only after the transaction committed, one per
// recipient, and transport failures never fail the request.
type CommentHandler struct {
	Driver   neo4j.DriverWithContext
	Comments *repository.CommentRepo
	Users    *repository.UserRepo
}

// NewCommentHandler constructs a CommentHandler.
func NewCommentHandler(driver neo4j.DriverWithContext, comments *repository.CommentRepo, users *repository.UserRepo) *CommentHandler {
	return &CommentHandler{Driver: driver, Comments: comments, Users: users}
}

type commentReq struct {
	Text string `json:"text"`
}

// Post serves POST /v1/movies/:id/comments.
func (h *CommentHandler) Post(c echo.Context) error {
	var req commentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Text = strings.TrimSpace(req.Text)
	if req.Text == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "text required"})
	}
	caller := viewerID(c)
	movieID := c.Param("id")

	res, err := executeWrite(c.Request().Context(), h.Driver, func(run database.Runner) (any, error) {
		fanout, err := h.Comments.Post(c.Request().Context(), run, caller, movieID, req.Text)
		if err != nil {
			return nil, err
		}
		return fanout, h.Users.TouchActivity(c.Request().Context(), run, caller)
	})
	if err != nil {
		return httpError(c, err)
	}
	fanout := res.(*repository.CommentFanout)

	events := make([]queue.CommentPostedEvent, 0, len(fanout.Recipients))
	for _, rid := range fanout.Recipients {
		events = append(events, queue.CommentPostedEvent{
			RecipientID:     rid,
			CommentID:       fanout.Comment.ID,
			CommentUsername: fanout.Comment.Username,
			CommentText:     fanout.Comment.Text,
			MovieID:         fanout.Comment.MovieID,
			MovieTitle:      fanout.MovieTitle,
			PostedAt:        fanout.Comment.CreatedAt,
		})
	}
	// Best effort: the notifications are already committed to the graph.
	_ = queue_publisher.PublishCommentPosted(c.Request().Context(), events)

	return c.JSON(http.StatusCreated, fanout.Comment)
}

// Update serves PUT /v1/comments/:id. Author or admin only; anyone else
// sees a 404.
func (h *CommentHandler) Update(c echo.Context) error {
	var req commentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Text = strings.TrimSpace(req.Text)
	if req.Text == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "text required"})
	}
	caller := viewerID(c)
	commentID := c.Param("id")
	res, err := executeWrite(c.Request().Context(), h.Driver, func(run database.Runner) (any, error) {
		cm, err := h.Comments.Edit(c.Request().Context(), run, caller, viewerRole(c), commentID, req.Text)
		if err != nil {
			return nil, err
		}
		return cm, h.Users.TouchActivity(c.Request().Context(), run, caller)
	})
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

// Delete serves DELETE /v1/comments/:id. Author or admin only. The
// comment's notifications are removed in the same transaction.
func (h *CommentHandler) Delete(c echo.Context) error {
	caller := viewerID(c)
	commentID := c.Param("id")
	_, err := executeWrite(c.Request().Context(), h.Driver, func(run database.Runner) (any, error) {
		if err := h.Comments.Delete(c.Request().Context(), run, caller, viewerRole(c), commentID); err != nil {
			return nil, err
		}
		return nil, h.Users.TouchActivity(c.Request().Context(), run, caller)
	})
	if err != nil {
		return httpError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
