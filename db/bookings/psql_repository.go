package bookings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"bookings/entity"
)

// uniqueViolation is the Postgres error code raised when the unique
// constraint on booking_reference (or the primary key) is hit.
const uniqueViolation = "23505"

type PostgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type bookingRow struct {
	ID               string         `db:"id"`
	BookingReference string         `db:"booking_reference"`
	CustomerName     string         `db:"customer_name"`
	CustomerEmail    string         `db:"customer_email"`
	CustomerPhone    string         `db:"customer_phone"`
	Activities       pq.StringArray `db:"activities"`
	Accommodation    string         `db:"accommodation"`
	CheckInDate      string         `db:"check_in_date"`
	CheckOutDate     string         `db:"check_out_date"`
	NumberOfGuests   int            `db:"number_of_guests"`
	SpecialRequests  sql.NullString `db:"special_requests"`
	Status           string         `db:"status"`
	CreatedAt        time.Time      `db:"created_at"`
}

func toRow(booking entity.Booking) bookingRow {
	row := bookingRow{
		ID:               booking.ID,
		BookingReference: booking.BookingReference,
		CustomerName:     booking.CustomerName,
		CustomerEmail:    booking.CustomerEmail,
		CustomerPhone:    booking.CustomerPhone,
		Activities:       pq.StringArray(booking.Activities),
		Accommodation:    booking.Accommodation,
		CheckInDate:      booking.CheckInDate,
		CheckOutDate:     booking.CheckOutDate,
		NumberOfGuests:   booking.NumberOfGuests,
		Status:           string(booking.Status),
		CreatedAt:        booking.CreatedAt,
	}
	if booking.SpecialRequests != nil {
		row.SpecialRequests = sql.NullString{String: *booking.SpecialRequests, Valid: true}
	}
	return row
}

func (r bookingRow) toEntity() entity.Booking {
	booking := entity.Booking{
		ID:               r.ID,
		BookingReference: r.BookingReference,
		CustomerName:     r.CustomerName,
		CustomerEmail:    r.CustomerEmail,
		CustomerPhone:    r.CustomerPhone,
		Activities:       []string(r.Activities),
		Accommodation:    r.Accommodation,
		CheckInDate:      r.CheckInDate,
		CheckOutDate:     r.CheckOutDate,
		NumberOfGuests:   r.NumberOfGuests,
		Status:           entity.Status(r.Status),
		CreatedAt:        r.CreatedAt,
	}
	if r.SpecialRequests.Valid {
		requests := r.SpecialRequests.String
		booking.SpecialRequests = &requests
	}
	return booking
}

const bookingColumns = `id, booking_reference, customer_name, customer_email, customer_phone,
	activities, accommodation, check_in_date, check_out_date, number_of_guests,
	special_requests, status, created_at`

// Insert durably commits the booking and returns the stored record with the
// store-assigned creation time.
func (r *PostgresRepository) Insert(ctx context.Context, booking entity.Booking) (entity.Booking, error) {
	row := toRow(booking)

	err := r.db.QueryRowxContext(ctx, `
		INSERT INTO bookings
			(id, booking_reference, customer_name, customer_email, customer_phone,
			 activities, accommodation, check_in_date, check_out_date, number_of_guests,
			 special_requests, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at
	`,
		row.ID, row.BookingReference, row.CustomerName, row.CustomerEmail, row.CustomerPhone,
		row.Activities, row.Accommodation, row.CheckInDate, row.CheckOutDate, row.NumberOfGuests,
		row.SpecialRequests, row.Status,
	).Scan(&row.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return entity.Booking{}, fmt.Errorf("%w: %s", entity.ErrDuplicateReference, booking.BookingReference)
		}
		return entity.Booking{}, fmt.Errorf("could not insert booking: %w", err)
	}

	return row.toEntity(), nil
}

// FindByReference is the one lookup path exposed to unauthenticated callers.
func (r *PostgresRepository) FindByReference(ctx context.Context, reference string) (entity.Booking, error) {
	var row bookingRow
	err := r.db.GetContext(ctx, &row, `
		SELECT `+bookingColumns+`
		FROM bookings
		WHERE booking_reference = $1
	`, reference)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Booking{}, fmt.Errorf("booking %s: %w", reference, entity.ErrNotFound)
		}
		return entity.Booking{}, fmt.Errorf("could not find booking: %w", err)
	}
	return row.toEntity(), nil
}

func (r *PostgresRepository) FindAll(ctx context.Context) ([]entity.Booking, error) {
	var rows []bookingRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT `+bookingColumns+`
		FROM bookings
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("could not list bookings: %w", err)
	}

	bookings := make([]entity.Booking, 0, len(rows))
	for _, row := range rows {
		bookings = append(bookings, row.toEntity())
	}
	return bookings, nil
}

// UpdateStatus sets the status of the booking with the given reference and
// returns the full updated record. Re-setting the current status is a valid
// no-op. The per-row update is the linearization point for racing admin
// updates: last write wins.
func (r *PostgresRepository) UpdateStatus(ctx context.Context, reference string, status entity.Status) (entity.Booking, error) {
	var row bookingRow
	err := r.db.QueryRowxContext(ctx, `
		UPDATE bookings
		SET status = $1
		WHERE booking_reference = $2
		RETURNING `+bookingColumns+`
	`, string(status), reference).StructScan(&row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Booking{}, fmt.Errorf("booking %s: %w", reference, entity.ErrNotFound)
		}
		return entity.Booking{}, fmt.Errorf("could not update booking status: %w", err)
	}
	return row.toEntity(), nil
}
