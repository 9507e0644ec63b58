package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireRole enforces that the authenticated user holds one of the given
// roles (the values stored in the JWT "role" claim). Requests with a
// missing or disallowed role are rejected with 403. Assumes JWTAuth ran
// earlier and stored the role under "role".
func RequireRole(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get("role").(string)
			if !ok || !allowed[role] {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
