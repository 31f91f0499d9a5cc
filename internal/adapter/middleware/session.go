package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"disaster-intake-api/internal/usecase/auth"
)

// codeContextKey is where RequireSession stashes the administrative
// code of the caller for downstream handlers.
const codeContextKey = "administrative_code"

// RequireSession guards privileged routes with the opaque bearer token
// issued at login.
func RequireSession(sessions auth.SessionStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if token == "" {
				return c.JSON(http.StatusUnauthorized, map[string]any{
					"success": false,
					"error":   "unauthorized",
				})
			}
			code, err := sessions.Code(c.Request().Context(), token)
			if err != nil {
				if errors.Is(err, auth.ErrNoSession) {
					return c.JSON(http.StatusUnauthorized, map[string]any{
						"success": false,
						"error":   "unauthorized",
					})
				}
				return c.JSON(http.StatusServiceUnavailable, map[string]any{
					"success": false,
					"error":   "session store unavailable",
				})
			}
			c.Set(codeContextKey, code)
			return next(c)
		}
	}
}

// AdministrativeCode reads the caller's code set by RequireSession.
func AdministrativeCode(c echo.Context) (int, bool) {
	code, ok := c.Get(codeContextKey).(int)
	return code, ok
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}
