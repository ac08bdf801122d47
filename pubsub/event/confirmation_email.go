package event

import (
	"context"
	"fmt"
	"strings"

	"github.com/ThreeDotsLabs/watermill/components/cqrs"

	"bookings/entity"
	"bookings/pkg/log"
)

func (h Handler) SendBookingConfirmationHandler() cqrs.EventHandler {
	return cqrs.NewEventHandler(
		"SendBookingConfirmationHandler",
		func(ctx context.Context, event *entity.BookingCreated) error {
			logger := log.FromContext(ctx).WithField("booking_reference", event.BookingReference)
			logger.Info("Sending booking confirmation email")

			subject := fmt.Sprintf("Booking %s received", event.BookingReference)
			body := confirmationEmailBody(event)

			// Delivery is best effort: the booking is already durable and
			// the customer can always poll by reference. Failed sends are
			// logged and dropped, never retried.
			if err := h.emailSender.Send(ctx, event.CustomerEmail, subject, body); err != nil {
				logger.WithError(err).Error("could not send confirmation email")
			}
			return nil
		},
	)
}

func confirmationEmailBody(event *entity.BookingCreated) string {
	return fmt.Sprintf(
		`<p>Dear %s,</p>
<p>Thank you for booking with us! Your booking reference is <b>%s</b>.</p>
<ul>
<li>Activity: %s</li>
<li>Check-in: %s</li>
<li>Check-out: %s</li>
<li>Guests: %d</li>
</ul>
<p>You can check the status of your booking any time using your reference.</p>`,
		event.CustomerName,
		event.BookingReference,
		strings.Join(event.Activities, ", "),
		event.CheckInDate,
		event.CheckOutDate,
		event.NumberOfGuests,
	)
}
