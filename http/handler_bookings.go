package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"bookings/entity"
	"bookings/metrics"
	"bookings/pkg/log"
)

type postBookingRequest struct {
	CustomerName  string   `json:"customerName"`
	CustomerEmail string   `json:"customerEmail"`
	CustomerPhone string   `json:"customerPhone"`
	Activities    []string `json:"activities"`
	// ActivityType is what the single-activity booking forms post instead
	// of an activities list.
	ActivityType    string  `json:"activityType"`
	Accommodation   string  `json:"accommodation"`
	CheckInDate     string  `json:"checkInDate"`
	CheckOutDate    string  `json:"checkOutDate"`
	NumberOfGuests  int     `json:"numberOfGuests"`
	SpecialRequests *string `json:"specialRequests"`
}

type postBookingResponse struct {
	BookingReference string `json:"bookingReference"`
}

func (s *Server) PostBooking(c echo.Context) error {
	var request postBookingRequest
	if err := c.Bind(&request); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	activities := request.Activities
	if len(activities) == 0 && request.ActivityType != "" {
		activities = []string{request.ActivityType}
	}

	booking := entity.Booking{
		ID:               uuid.NewString(),
		BookingReference: entity.NewBookingReference(),
		CustomerName:     request.CustomerName,
		CustomerEmail:    request.CustomerEmail,
		CustomerPhone:    request.CustomerPhone,
		Activities:       activities,
		Accommodation:    request.Accommodation,
		CheckInDate:      request.CheckInDate,
		CheckOutDate:     request.CheckOutDate,
		NumberOfGuests:   request.NumberOfGuests,
		SpecialRequests:  request.SpecialRequests,
		// Status is always pending at creation; anything the client sent
		// is ignored.
		Status: entity.StatusPending,
	}

	if err := booking.Validate(); err != nil {
		var validationErr entity.ValidationError
		if errors.As(err, &validationErr) {
			return echo.NewHTTPError(http.StatusBadRequest, validationErr.Error())
		}
		return err
	}

	stored, err := s.bookingsRepo.Insert(c.Request().Context(), booking)
	if err != nil {
		return fmt.Errorf("could not store booking: %w", err)
	}

	metrics.BookingsCreated.Inc()

	// The booking is durable at this point; notification fan-out must not
	// fail the request, so a publish failure is only logged.
	err = s.eventBus.Publish(c.Request().Context(), entity.BookingCreated{
		Header:           entity.NewEventHeader(),
		BookingReference: stored.BookingReference,
		CustomerName:     stored.CustomerName,
		CustomerEmail:    stored.CustomerEmail,
		Activities:       stored.Activities,
		CheckInDate:      stored.CheckInDate,
		CheckOutDate:     stored.CheckOutDate,
		NumberOfGuests:   stored.NumberOfGuests,
	})
	if err != nil {
		log.FromContext(c.Request().Context()).
			WithError(err).
			WithField("booking_reference", stored.BookingReference).
			Error("could not publish BookingCreated event")
	}

	return c.JSON(http.StatusOK, postBookingResponse{
		BookingReference: stored.BookingReference,
	})
}

// GetBooking is the public status lookup. The reference is the only
// credential: anyone holding it can read the booking.
func (s *Server) GetBooking(c echo.Context) error {
	reference := c.Param("reference")

	booking, err := s.bookingsRepo.FindByReference(c.Request().Context(), reference)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "booking not found")
		}
		return fmt.Errorf("could not find booking: %w", err)
	}

	return c.JSON(http.StatusOK, booking)
}
