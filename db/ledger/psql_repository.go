package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"bookings/entity"
)

// PostgresRepository persists the ids of the external ledger sheets, so that
// every process appends to the same sheet instead of creating its own.
type PostgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) SheetID(ctx context.Context, sheetName string) (string, error) {
	var sheetID string
	err := r.db.GetContext(ctx, &sheetID, `
		SELECT sheet_id FROM ledger_sheets WHERE sheet_name = $1
	`, sheetName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("sheet %s: %w", sheetName, entity.ErrNotFound)
		}
		return "", fmt.Errorf("could not load sheet id: %w", err)
	}
	return sheetID, nil
}

// StoreSheetID records the id of a freshly created sheet. When two processes
// race to create the same sheet, ON CONFLICT DO NOTHING makes the first
// write win; the returned id is always the winning one, so the caller must
// adopt it even if its own creation lost.
func (r *PostgresRepository) StoreSheetID(ctx context.Context, sheetName, sheetID string) (string, error) {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO ledger_sheets (sheet_name, sheet_id)
		VALUES ($1, $2)
		ON CONFLICT (sheet_name) DO NOTHING
	`, sheetName, sheetID)
	if err != nil {
		return "", fmt.Errorf("could not store sheet id: %w", err)
	}

	return r.SheetID(ctx, sheetName)
}
