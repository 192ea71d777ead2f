package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/olympicapp/country-comments/internal/core/ports"
	"github.com/olympicapp/country-comments/internal/session"
)

// sessionFrom returns the session handle injected by the Session middleware.
// A missing handle means the route was registered without the middleware.
func sessionFrom(c echo.Context) (ports.Session, error) {
	sess, ok := c.Get(session.ContextKey).(ports.Session)
	if !ok || sess == nil {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "session unavailable")
	}
	return sess, nil
}

// pathID parses the :id path parameter.
func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}
