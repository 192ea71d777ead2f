package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/olympicapp/country-comments/internal/core/domain"
	"github.com/olympicapp/country-comments/internal/core/ports"
	"github.com/olympicapp/country-comments/internal/session"
)

// RequireAdmin rejects callers whose session does not resolve to an admin
// before the route parses its path or body, so a non-admin gets 403 even for
// malformed requests. The admin services repeat the check.
func RequireAdmin(gate ports.AuthGate) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, ok := c.Get(session.ContextKey).(ports.Session)
			if !ok || !gate.IsAdmin(c.Request().Context(), sess) {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
