package event

import (
	"context"
	"strconv"
	"strings"

	"github.com/ThreeDotsLabs/watermill/components/cqrs"

	"bookings/entity"
	"bookings/pkg/log"
)

// BookingsLedgerSheet is the sheet every new booking is mirrored to for
// back-office visibility.
const BookingsLedgerSheet = "bookings"

func (h Handler) AppendToLedgerHandler() cqrs.EventHandler {
	return cqrs.NewEventHandler(
		"AppendToLedgerHandler",
		func(ctx context.Context, event *entity.BookingCreated) error {
			logger := log.FromContext(ctx).WithField("booking_reference", event.BookingReference)
			logger.Info("Appending booking to the ledger")

			err := h.ledgerAPI.AppendRow(ctx, BookingsLedgerSheet, []string{
				event.BookingReference,
				event.CustomerName,
				event.CustomerEmail,
				strings.Join(event.Activities, ","),
				event.CheckInDate,
				event.CheckOutDate,
				strconv.Itoa(event.NumberOfGuests),
			})
			if err != nil {
				logger.WithError(err).Error("could not append booking to ledger")
			}
			return nil
		},
	)
}
