package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/clinicflow/auth-service/internal/pkg/token"
)

// Auth validates the bearer JWT and injects the caller's user id into context.
// Only access tokens are accepted, verified by any of the signers.
func Auth(signers ...*token.Signer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			for _, s := range signers {
				claims, err := s.Parse(parts[1])
				if err != nil || claims.Type != token.TypeAccess || claims.UserID == "" {
					continue
				}
				c.Set("user_id", claims.UserID)
				return next(c)
			}
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
		}
	}
}
