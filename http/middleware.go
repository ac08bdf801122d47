package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/lithammer/shortuuid/v3"
	"github.com/sirupsen/logrus"

	"bookings/entity"
	"bookings/pkg/log"
)

// CorrelationID attaches a correlation id and a request-scoped logger to the
// request context, reusing the caller's Correlation-ID header when present.
func CorrelationID(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		correlationID := c.Request().Header.Get("Correlation-ID")
		if correlationID == "" {
			correlationID = shortuuid.New()
		}

		ctx := log.ContextWithCorrelationID(c.Request().Context(), correlationID)
		ctx = log.ToContext(ctx, logrus.WithField("correlation_id", correlationID))
		c.SetRequest(c.Request().WithContext(ctx))
		c.Response().Header().Set("Correlation-ID", correlationID)

		return next(c)
	}
}

// RequireAdmin rejects the request before any business logic runs unless it
// carries a valid admin session cookie.
func (s *Server) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := c.Cookie(sessionCookieName)
		if err != nil || cookie.Value == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "admin session required")
		}

		username, err := s.sessions.Get(c.Request().Context(), cookie.Value)
		if err != nil {
			if errors.Is(err, entity.ErrNotFound) {
				return echo.NewHTTPError(http.StatusUnauthorized, "admin session required")
			}
			return err
		}

		c.Set(adminUserContextKey, username)
		return next(c)
	}
}
