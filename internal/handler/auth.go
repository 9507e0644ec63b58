package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/UniversityOfGdanskProjects/projektprogramistyczny-Wikator-sub000/internal/config"
	"github.com/UniversityOfGdanskProjects/projektprogramistyczny-Wikator-sub000/internal/database"
	"github.com/UniversityOfGdanskProjects/projektprogramistyczny-Wikator-sub000/internal/model"
	"github.com/UniversityOfGdanskProjects/projektprogramistyczny-Wikator-sub000/internal/repository"
	"github.com/UniversityOfGdanskProjects/projektprogramistyczny-Wikator-sub000/internal/utils"
)

// AuthHandler bundles dependencies for the auth endpoints.
type AuthHandler struct {
	Cfg    config.Config
	Driver neo4j.DriverWithContext
	Users  *repository.UserRepo
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(cfg config.Config, driver neo4j.DriverWithContext, users *repository.UserRepo) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Driver: driver, Users: users}
}

type registerReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResp struct {
	User   *model.User       `json:"user"`
	Access utils.AccessToken `json:"access"`
}

// Register creates a USER account and returns a token immediately.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name/email/password required"})
	}

	res, err := executeWrite(c.Request().Context(), h.Driver, func(run database.Runner) (any, error) {
		return h.Users.Create(c.Request().Context(), run, req.Name, req.Email, req.Password, h.Cfg.BcryptCost)
	})
	if err != nil {
		return httpError(c, err)
	}
	u := res.(*model.User)

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, u.Name, u.Role, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue access failed"})
	}
	return c.JSON(http.StatusCreated, authResp{User: u, Access: access})
}

// Login verifies credentials and returns a token.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	res, err := executeRead(c.Request().Context(), h.Driver, func(run database.Runner) (any, error) {
		return h.Users.GetByEmail(c.Request().Context(), run, req.Email)
	})
	if err != nil || !utils.VerifyPassword(res.(*model.User).PasswordHash, req.Password) {
		// Same response for unknown email and wrong password.
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}
	u := res.(*model.User)
	u.PasswordHash = ""

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, u.Name, u.Role, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue access failed"})
	}
	return c.JSON(http.StatusOK, authResp{User: u, Access: access})
}

// Me returns the authenticated user's record.
func (h *AuthHandler) Me(c echo.Context) error {
	id := viewerID(c)
	res, err := executeRead(c.Request().Context(), h.Driver, func(run database.Runner) (any, error) {
		return h.Users.GetByID(c.Request().Context(), run, id)
	})
	if err != nil {
		return httpError(c, err)
	}
	u := res.(*model.User)
	u.PasswordHash = ""
	return c.JSON(http.StatusOK, u)
}
