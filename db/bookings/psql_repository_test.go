package bookings

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookings/db"
	"bookings/entity"
)

func newTestBooking() entity.Booking {
	requests := "vegetarian meals"
	return entity.Booking{
		ID:               uuid.NewString(),
		BookingReference: entity.NewBookingReference(),
		CustomerName:     "Asha Rao",
		CustomerEmail:    "asha@example.com",
		CustomerPhone:    "9876543210",
		Activities:       []string{"rafting", "trekking"},
		Accommodation:    "riverside cottage",
		CheckInDate:      "2025-11-01",
		CheckOutDate:     "2025-11-02",
		NumberOfGuests:   2,
		SpecialRequests:  &requests,
		Status:           entity.StatusPending,
	}
}

func TestPostgresRepository(t *testing.T) {
	ctx := context.Background()
	container, url := db.StartPostgresContainer()
	defer container.Terminate(ctx)

	t.Setenv("POSTGRES_URL", url)
	repo := NewPostgresRepository(db.GetDb(t))

	t.Run("insert and find round-trip", func(t *testing.T) {
		booking := newTestBooking()

		stored, err := repo.Insert(ctx, booking)
		require.NoError(t, err)
		assert.False(t, stored.CreatedAt.IsZero(), "created_at should be assigned by the store")

		found, err := repo.FindByReference(ctx, booking.BookingReference)
		require.NoError(t, err)

		assert.Equal(t, booking.BookingReference, found.BookingReference)
		assert.Equal(t, booking.CustomerName, found.CustomerName)
		assert.Equal(t, booking.CustomerEmail, found.CustomerEmail)
		assert.Equal(t, booking.CustomerPhone, found.CustomerPhone)
		assert.Equal(t, booking.Activities, found.Activities)
		assert.Equal(t, booking.Accommodation, found.Accommodation)
		assert.Equal(t, booking.CheckInDate, found.CheckInDate)
		assert.Equal(t, booking.CheckOutDate, found.CheckOutDate)
		assert.Equal(t, booking.NumberOfGuests, found.NumberOfGuests)
		require.NotNil(t, found.SpecialRequests)
		assert.Equal(t, *booking.SpecialRequests, *found.SpecialRequests)
		assert.Equal(t, entity.StatusPending, found.Status)
	})

	t.Run("duplicate reference is rejected", func(t *testing.T) {
		booking := newTestBooking()
		_, err := repo.Insert(ctx, booking)
		require.NoError(t, err)

		duplicate := newTestBooking()
		duplicate.BookingReference = booking.BookingReference

		_, err = repo.Insert(ctx, duplicate)
		assert.ErrorIs(t, err, entity.ErrDuplicateReference)
	})

	t.Run("find unknown reference", func(t *testing.T) {
		_, err := repo.FindByReference(ctx, "RRD-ZZZZZZ")
		assert.ErrorIs(t, err, entity.ErrNotFound)
	})

	t.Run("update status", func(t *testing.T) {
		booking := newTestBooking()
		_, err := repo.Insert(ctx, booking)
		require.NoError(t, err)

		updated, err := repo.UpdateStatus(ctx, booking.BookingReference, entity.StatusConfirmed)
		require.NoError(t, err)
		assert.Equal(t, entity.StatusConfirmed, updated.Status)
		assert.Equal(t, booking.CustomerEmail, updated.CustomerEmail, "update returns the full record")

		// re-setting the same status is a valid no-op
		again, err := repo.UpdateStatus(ctx, booking.BookingReference, entity.StatusConfirmed)
		require.NoError(t, err)
		assert.Equal(t, entity.StatusConfirmed, again.Status)

		// the loose state machine allows going backwards too
		back, err := repo.UpdateStatus(ctx, booking.BookingReference, entity.StatusPending)
		require.NoError(t, err)
		assert.Equal(t, entity.StatusPending, back.Status)
	})

	t.Run("update status of unknown reference", func(t *testing.T) {
		_, err := repo.UpdateStatus(ctx, "RRD-ZZZZZZ", entity.StatusConfirmed)
		assert.ErrorIs(t, err, entity.ErrNotFound)
	})

	t.Run("find all contains stored bookings", func(t *testing.T) {
		booking := newTestBooking()
		_, err := repo.Insert(ctx, booking)
		require.NoError(t, err)

		all, err := repo.FindAll(ctx)
		require.NoError(t, err)

		references := make(map[string]struct{}, len(all))
		for _, b := range all {
			references[b.BookingReference] = struct{}{}
		}
		assert.Contains(t, references, booking.BookingReference)
	})
}
