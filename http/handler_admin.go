package http

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"bookings/entity"
	"bookings/metrics"
	"bookings/pkg/log"
)

const (
	sessionCookieName   = "admin_session"
	adminUserContextKey = "admin_user"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Success bool   `json:"success"`
	User    string `json:"user"`
}

type checkResponse struct {
	Authenticated bool   `json:"authenticated"`
	User          string `json:"user,omitempty"`
}

func (s *Server) PostLogin(c echo.Context) error {
	var request loginRequest
	if err := c.Bind(&request); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	usernameMatches := subtle.ConstantTimeCompare([]byte(request.Username), []byte(s.admin.Username)) == 1
	passwordErr := bcrypt.CompareHashAndPassword([]byte(s.admin.PasswordHash), []byte(request.Password))
	if !usernameMatches || passwordErr != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}

	sessionID, err := s.sessions.Create(c.Request().Context(), request.Username)
	if err != nil {
		return fmt.Errorf("could not create session: %w", err)
	}

	c.SetCookie(&http.Cookie{
		Name:     sessionCookieName,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return c.JSON(http.StatusOK, loginResponse{Success: true, User: request.Username})
}

func (s *Server) PostLogout(c echo.Context) error {
	if cookie, err := c.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		if err := s.sessions.Delete(c.Request().Context(), cookie.Value); err != nil {
			log.FromContext(c.Request().Context()).WithError(err).Error("could not delete session")
		}
	}

	c.SetCookie(&http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) GetCheck(c echo.Context) error {
	cookie, err := c.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		return c.JSON(http.StatusOK, checkResponse{Authenticated: false})
	}

	username, err := s.sessions.Get(c.Request().Context(), cookie.Value)
	if err != nil {
		return c.JSON(http.StatusOK, checkResponse{Authenticated: false})
	}

	return c.JSON(http.StatusOK, checkResponse{Authenticated: true, User: username})
}

func (s *Server) GetBookings(c echo.Context) error {
	bookings, err := s.bookingsRepo.FindAll(c.Request().Context())
	if err != nil {
		return fmt.Errorf("could not list bookings: %w", err)
	}
	return c.JSON(http.StatusOK, bookings)
}

type patchStatusRequest struct {
	Status string `json:"status"`
}

func (s *Server) PatchBookingStatus(c echo.Context) error {
	reference := c.Param("reference")

	var request patchStatusRequest
	if err := c.Bind(&request); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	status, err := entity.ParseStatus(request.Status)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	updated, err := s.bookingsRepo.UpdateStatus(c.Request().Context(), reference, status)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "booking not found")
		}
		return fmt.Errorf("could not update booking status: %w", err)
	}

	metrics.StatusUpdates.WithLabelValues(string(status)).Inc()

	// Same policy as creation: the status is durable, the email is best
	// effort.
	err = s.eventBus.Publish(c.Request().Context(), entity.BookingStatusChanged{
		Header:           entity.NewEventHeader(),
		BookingReference: updated.BookingReference,
		CustomerName:     updated.CustomerName,
		CustomerEmail:    updated.CustomerEmail,
		Activities:       updated.Activities,
		CheckInDate:      updated.CheckInDate,
		CheckOutDate:     updated.CheckOutDate,
		Status:           updated.Status,
	})
	if err != nil {
		log.FromContext(c.Request().Context()).
			WithError(err).
			WithField("booking_reference", updated.BookingReference).
			Error("could not publish BookingStatusChanged event")
	}

	return c.JSON(http.StatusOK, updated)
}
