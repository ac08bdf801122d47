package entity

import (
	"fmt"
	"net/mail"
	"time"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusRejected  Status = "rejected"
)

// ParseStatus validates a status supplied by a caller.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusConfirmed, StatusRejected:
		return Status(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

// knownActivities is the vocabulary the booking form offers. "package" and
// "complete" are the two names the site uses for the all-inclusive option.
var knownActivities = map[string]struct{}{
	"rafting":  {},
	"safari":   {},
	"trekking": {},
	"kayaking": {},
	"package":  {},
	"complete": {},
}

type Booking struct {
	// ID is the storage key. It is never exposed to customers; the
	// booking reference is the only identifier they ever see.
	ID               string    `json:"-"`
	BookingReference string    `json:"bookingReference"`
	CustomerName     string    `json:"customerName"`
	CustomerEmail    string    `json:"customerEmail"`
	CustomerPhone    string    `json:"customerPhone"`
	Activities       []string  `json:"activities"`
	Accommodation    string    `json:"accommodation"`
	CheckInDate      string    `json:"checkInDate"`
	CheckOutDate     string    `json:"checkOutDate"`
	NumberOfGuests   int       `json:"numberOfGuests"`
	SpecialRequests  *string   `json:"specialRequests"`
	Status           Status    `json:"status"`
	CreatedAt        time.Time `json:"createdAt"`
}

const (
	minGuests = 1
	maxGuests = 20
)

// Validate checks the customer-supplied fields and reports the first failure.
// Check-in/check-out ordering is deliberately not validated: the booking form
// already enforces it, and the back office corrects the rest by hand.
func (b Booking) Validate() error {
	if len(b.CustomerName) < 2 {
		return validationErrorf("customer name must be at least 2 characters")
	}
	if _, err := mail.ParseAddress(b.CustomerEmail); err != nil {
		return validationErrorf("invalid email address: %s", b.CustomerEmail)
	}
	if len(b.CustomerPhone) < 10 {
		return validationErrorf("phone number must be at least 10 characters")
	}
	if len(b.Activities) == 0 {
		return validationErrorf("at least one activity must be selected")
	}
	for _, activity := range b.Activities {
		if _, ok := knownActivities[activity]; !ok {
			return validationErrorf("unknown activity: %q", activity)
		}
	}
	if b.NumberOfGuests < minGuests || b.NumberOfGuests > maxGuests {
		return validationErrorf("number of guests must be between %d and %d", minGuests, maxGuests)
	}
	if b.CheckInDate == "" {
		return validationErrorf("check-in date is required")
	}
	if b.CheckOutDate == "" {
		return validationErrorf("check-out date is required")
	}
	return nil
}
