// Package middleware provides reusable HTTP middleware: JWT validation,
// optional viewer identity, role enforcement and Redis response caching.
package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// JWTAuth returns middleware that validates a Bearer access token and
// injects the subject, name and role claims into the request context
// under "user_id", "username" and "role". Protected routes must be
// wrapped with it; handlers then read the viewer via c.Get.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			claims, err := parseClaims(strings.TrimPrefix(auth, "Bearer "), secret)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}
			storeClaims(c, claims)
			return next(c)
		}
	}
}

// OptionalJWT is the identity middleware for public listing routes: when
// a valid Bearer token is present the viewer claims are injected exactly
// as JWTAuth does, so the listing is personalized; when the header is
// missing or invalid the request proceeds anonymously instead of failing.
func OptionalJWT(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if strings.HasPrefix(auth, "Bearer ") {
				if claims, err := parseClaims(strings.TrimPrefix(auth, "Bearer "), secret); err == nil {
					storeClaims(c, claims)
				}
			}
			return next(c)
		}
	}
}

// parseClaims validates an HS256 token and returns its claims.
func parseClaims(raw, secret string) (jwt.MapClaims, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, echo.ErrUnauthorized
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return nil, echo.ErrUnauthorized
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, echo.ErrUnauthorized
	}
	return claims, nil
}

func storeClaims(c echo.Context, claims jwt.MapClaims) {
	if sub, ok := claims["sub"].(string); ok {
		c.Set("user_id", sub)
	}
	if name, ok := claims["name"].(string); ok {
		c.Set("username", name)
	}
	if role, ok := claims["role"].(string); ok {
		c.Set("role", role)
	}
}
