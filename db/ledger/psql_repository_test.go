package ledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookings/db"
	"bookings/entity"
)

func TestPostgresRepository(t *testing.T) {
	ctx := context.Background()
	container, url := db.StartPostgresContainer()
	defer container.Terminate(ctx)

	t.Setenv("POSTGRES_URL", url)
	repo := NewPostgresRepository(db.GetDb(t))

	t.Run("unknown sheet", func(t *testing.T) {
		_, err := repo.SheetID(ctx, "unknown")
		assert.ErrorIs(t, err, entity.ErrNotFound)
	})

	t.Run("store and read back", func(t *testing.T) {
		stored, err := repo.StoreSheetID(ctx, "bookings", "sheet-1")
		require.NoError(t, err)
		assert.Equal(t, "sheet-1", stored)

		id, err := repo.SheetID(ctx, "bookings")
		require.NoError(t, err)
		assert.Equal(t, "sheet-1", id)
	})

	t.Run("first write wins", func(t *testing.T) {
		winner, err := repo.StoreSheetID(ctx, "races", "first")
		require.NoError(t, err)
		assert.Equal(t, "first", winner)

		// a losing initializer must adopt the winning id
		adopted, err := repo.StoreSheetID(ctx, "races", "second")
		require.NoError(t, err)
		assert.Equal(t, "first", adopted)
	})
}
