package db

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

const schema = `
CREATE TABLE IF NOT EXISTS bookings (
	id UUID PRIMARY KEY,
	booking_reference VARCHAR(16) NOT NULL UNIQUE,
	customer_name VARCHAR(255) NOT NULL,
	customer_email VARCHAR(255) NOT NULL,
	customer_phone VARCHAR(32) NOT NULL,
	activities TEXT[] NOT NULL,
	accommodation TEXT NOT NULL DEFAULT '',
	check_in_date VARCHAR(10) NOT NULL,
	check_out_date VARCHAR(10) NOT NULL,
	number_of_guests INT NOT NULL,
	special_requests TEXT,
	status VARCHAR(16) NOT NULL DEFAULT 'pending',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS ledger_sheets (
	sheet_name TEXT PRIMARY KEY,
	sheet_id TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

func InitializeDatabaseSchema(db *sqlx.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("could not initialize database schema: %w", err)
	}
	return nil
}

func NewRedisClient(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: addr,
	})
}
