package store_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fennwick/libris-api/internal/mocks"
	"github.com/fennwick/libris-api/internal/store"
)

func TestRunInTransaction(t *testing.T) {
	t.Parallel()

	t.Run("commits when the function succeeds", func(t *testing.T) {
		t.Parallel()
		db := mocks.NewTxDB()

		var called bool
		err := store.RunInTransaction(context.Background(), db, func(ctx context.Context, tx *sql.Tx) error {
			called = true
			require.NotNil(t, tx)
			return nil
		})

		require.NoError(t, err)
		assert.True(t, called)
	})

	t.Run("returns the function error unwrapped", func(t *testing.T) {
		t.Parallel()
		db := mocks.NewTxDB()

		errBoom := errors.New("boom")
		err := store.RunInTransaction(context.Background(), db, func(ctx context.Context, tx *sql.Tx) error {
			return errBoom
		})

		assert.ErrorIs(t, err, errBoom)
	})

	t.Run("re-raises panics after rollback", func(t *testing.T) {
		t.Parallel()
		db := mocks.NewTxDB()

		assert.Panics(t, func() {
			_ = store.RunInTransaction(context.Background(), db, func(ctx context.Context, tx *sql.Tx) error {
				panic("unexpected state")
			})
		})
	})
}
