package event

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookings/entity"
	"bookings/gateway"
)

func newBookingCreated() *entity.BookingCreated {
	return &entity.BookingCreated{
		Header:           entity.NewEventHeader(),
		BookingReference: "RRD-K7M2P9",
		CustomerName:     "Asha Rao",
		CustomerEmail:    "asha@example.com",
		Activities:       []string{"rafting", "safari"},
		CheckInDate:      "2026-10-01",
		CheckOutDate:     "2026-10-04",
		NumberOfGuests:   2,
	}
}

func TestSendBookingConfirmationHandler(t *testing.T) {
	ctx := context.Background()
	emailMock := &gateway.EmailMock{}
	h := NewHandler(emailMock, &gateway.SheetsMock{})

	err := h.SendBookingConfirmationHandler().Handle(ctx, newBookingCreated())
	require.NoError(t, err)

	sent := emailMock.SentEmails()
	require.Len(t, sent, 1)
	assert.Equal(t, "asha@example.com", sent[0].Recipient)
	assert.Contains(t, sent[0].Subject, "RRD-K7M2P9")
	assert.Contains(t, sent[0].HTMLBody, "Asha Rao")
	assert.Contains(t, sent[0].HTMLBody, "rafting, safari")
}

func TestAppendToLedgerHandler(t *testing.T) {
	ctx := context.Background()
	sheetsMock := &gateway.SheetsMock{}
	h := NewHandler(&gateway.EmailMock{}, sheetsMock)

	err := h.AppendToLedgerHandler().Handle(ctx, newBookingCreated())
	require.NoError(t, err)

	rows := sheetsMock.SheetRows(BookingsLedgerSheet)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{
		"RRD-K7M2P9",
		"Asha Rao",
		"asha@example.com",
		"rafting,safari",
		"2026-10-01",
		"2026-10-04",
		"2",
	}, rows[0])
}

func TestSendStatusUpdateHandler(t *testing.T) {
	ctx := context.Background()
	emailMock := &gateway.EmailMock{}
	h := NewHandler(emailMock, &gateway.SheetsMock{})

	err := h.SendStatusUpdateHandler().Handle(ctx, &entity.BookingStatusChanged{
		Header:           entity.NewEventHeader(),
		BookingReference: "RRD-K7M2P9",
		CustomerName:     "Asha Rao",
		CustomerEmail:    "asha@example.com",
		Activities:       []string{"trekking"},
		CheckInDate:      "2026-10-01",
		CheckOutDate:     "2026-10-04",
		Status:           entity.StatusConfirmed,
	})
	require.NoError(t, err)

	sent := emailMock.SentEmails()
	require.Len(t, sent, 1)
	assert.Contains(t, sent[0].Subject, "confirmed")
	assert.Contains(t, sent[0].HTMLBody, "RRD-K7M2P9")
}

// Sink failures must never fail the handler: the message would be redelivered
// and the booking itself is already stored.
func TestHandlersSwallowSinkFailures(t *testing.T) {
	ctx := context.Background()
	sinkErr := errors.New("sink down")
	h := NewHandler(
		&gateway.EmailMock{FailWith: sinkErr},
		&gateway.SheetsMock{FailWith: sinkErr},
	)

	assert.NoError(t, h.SendBookingConfirmationHandler().Handle(ctx, newBookingCreated()))
	assert.NoError(t, h.AppendToLedgerHandler().Handle(ctx, newBookingCreated()))
	assert.NoError(t, h.SendStatusUpdateHandler().Handle(ctx, &entity.BookingStatusChanged{
		Header:           entity.NewEventHeader(),
		BookingReference: "RRD-K7M2P9",
		CustomerEmail:    "asha@example.com",
		Status:           entity.StatusRejected,
	}))
}

func TestNewHandlerPanicsOnMissingDeps(t *testing.T) {
	assert.Panics(t, func() { NewHandler(nil, &gateway.SheetsMock{}) })
	assert.Panics(t, func() { NewHandler(&gateway.EmailMock{}, nil) })
}
