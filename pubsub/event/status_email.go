package event

import (
	"context"
	"fmt"
	"strings"

	"github.com/ThreeDotsLabs/watermill/components/cqrs"

	"bookings/entity"
	"bookings/pkg/log"
)

func (h Handler) SendStatusUpdateHandler() cqrs.EventHandler {
	return cqrs.NewEventHandler(
		"SendStatusUpdateHandler",
		func(ctx context.Context, event *entity.BookingStatusChanged) error {
			logger := log.FromContext(ctx).WithFields(map[string]any{
				"booking_reference": event.BookingReference,
				"status":            event.Status,
			})
			logger.Info("Sending booking status email")

			subject := fmt.Sprintf("Booking %s is now %s", event.BookingReference, event.Status)
			body := statusEmailBody(event)

			if err := h.emailSender.Send(ctx, event.CustomerEmail, subject, body); err != nil {
				logger.WithError(err).Error("could not send status email")
			}
			return nil
		},
	)
}

func statusEmailBody(event *entity.BookingStatusChanged) string {
	return fmt.Sprintf(
		`<p>Dear %s,</p>
<p>Your booking <b>%s</b> (%s, %s to %s) is now <b>%s</b>.</p>`,
		event.CustomerName,
		event.BookingReference,
		strings.Join(event.Activities, ", "),
		event.CheckInDate,
		event.CheckOutDate,
		event.Status,
	)
}
