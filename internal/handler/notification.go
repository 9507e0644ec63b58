package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/UniversityOfGdanskProjects/projektprogramistyczny-Wikator-sub000/internal/database"
	"github.com/UniversityOfGdanskProjects/projektprogramistyczny-Wikator-sub000/internal/repository"
)

// NotificationHandler exposes the caller's notification inbox.
type NotificationHandler struct {
	Driver        neo4j.DriverWithContext
	Notifications *repository.NotificationRepo
}

// NewNotificationHandler constructs a NotificationHandler.
func NewNotificationHandler(driver neo4j.DriverWithContext, notifications *repository.NotificationRepo) *NotificationHandler {
	return &NotificationHandler{Driver: driver, Notifications: notifications}
}

// List serves GET /v1/me/notifications.
func (h *NotificationHandler) List(c echo.Context) error {
	caller := viewerID(c)
	res, err := executeRead(c.Request().Context(), h.Driver, func(run database.Runner) (any, error) {
		return h.Notifications.ListForUser(c.Request().Context(), run, caller)
	})
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

// MarkRead serves PUT /v1/me/notifications/:id/read.
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	caller := viewerID(c)
	id := c.Param("id")
	_, err := executeWrite(c.Request().Context(), h.Driver, func(run database.Runner) (any, error) {
		return nil, h.Notifications.MarkRead(c.Request().Context(), run, caller, id)
	})
	if err != nil {
		return httpError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// MarkAllRead serves PUT /v1/me/notifications/read.
func (h *NotificationHandler) MarkAllRead(c echo.Context) error {
	caller := viewerID(c)
	_, err := executeWrite(c.Request().Context(), h.Driver, func(run database.Runner) (any, error) {
		return nil, h.Notifications.MarkAllRead(c.Request().Context(), run, caller)
	})
	if err != nil {
		return httpError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete serves DELETE /v1/me/notifications/:id.
func (h *NotificationHandler) Delete(c echo.Context) error {
	caller := viewerID(c)
	id := c.Param("id")
	_, err := executeWrite(c.Request().Context(), h.Driver, func(run database.Runner) (any, error) {
		return nil, h.Notifications.Delete(c.Request().Context(), run, caller, id)
	})
	if err != nil {
		return httpError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteAll serves DELETE /v1/me/notifications.
func (h *NotificationHandler) DeleteAll(c echo.Context) error {
	caller := viewerID(c)
	_, err := executeWrite(c.Request().Context(), h.Driver, func(run database.Runner) (any, error) {
		return nil, h.Notifications.DeleteAll(c.Request().Context(), run, caller)
	})
	if err != nil {
		return httpError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
