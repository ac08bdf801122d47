package entity

import (
	"time"

	"github.com/google/uuid"
)

type EventHeader struct {
	ID          string    `json:"id"`
	PublishedAt time.Time `json:"published_at"`
}

func NewEventHeader() EventHeader {
	return EventHeader{
		ID:          uuid.NewString(),
		PublishedAt: time.Now().UTC(),
	}
}

// BookingCreated is published after a booking has been durably stored. It
// carries everything the notification sinks need so they never have to read
// the store.
type BookingCreated struct {
	Header           EventHeader `json:"header"`
	BookingReference string      `json:"booking_reference"`
	CustomerName     string      `json:"customer_name"`
	CustomerEmail    string      `json:"customer_email"`
	Activities       []string    `json:"activities"`
	CheckInDate      string      `json:"check_in_date"`
	CheckOutDate     string      `json:"check_out_date"`
	NumberOfGuests   int         `json:"number_of_guests"`
}

type BookingStatusChanged struct {
	Header           EventHeader `json:"header"`
	BookingReference string      `json:"booking_reference"`
	CustomerName     string      `json:"customer_name"`
	CustomerEmail    string      `json:"customer_email"`
	Activities       []string    `json:"activities"`
	CheckInDate      string      `json:"check_in_date"`
	CheckOutDate     string      `json:"check_out_date"`
	Status           Status      `json:"status"`
}
