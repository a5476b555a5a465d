package repository

import (
	"context"
	"errors"
	"testing"

	"rental-store/pkg/database"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeTx struct {
	pgx.Tx
	calls []string
	err   error
}

func (t *fakeTx) Commit(ctx context.Context) error {
	t.calls = append(t.calls, "commit")
	return t.err
}

func (t *fakeTx) Rollback(ctx context.Context) error {
	t.calls = append(t.calls, "rollback")
	return nil
}

type fakeDB struct {
	database.PgxIface
	tx       *fakeTx
	beginErr error
}

func (db *fakeDB) Begin(ctx context.Context) (pgx.Tx, error) {
	if db.beginErr != nil {
		return nil, db.beginErr
	}
	return db.tx, nil
}

func TestWithTx(t *testing.T) {
	ctx := context.Background()

	t.Run("commits when fn succeeds", func(t *testing.T) {
		db := &fakeDB{tx: &fakeTx{}}
		repo := NewRepository(db, zap.NewNop())

		var inner *Repository
		err := repo.WithTx(ctx, func(tx *Repository) error {
			inner = tx
			return nil
		})
		require.NoError(t, err)
		assert.NotSame(t, repo, inner)
		assert.NotNil(t, inner.Rental)
		// the deferred rollback after commit is a no-op in pgx
		assert.Equal(t, []string{"commit", "rollback"}, db.tx.calls)
	})

	t.Run("rolls back when fn fails", func(t *testing.T) {
		db := &fakeDB{tx: &fakeTx{}}
		repo := NewRepository(db, zap.NewNop())
		boom := errors.New("stock check failed")

		err := repo.WithTx(ctx, func(tx *Repository) error { return boom })
		require.ErrorIs(t, err, boom)
		assert.Equal(t, []string{"rollback"}, db.tx.calls)
	})

	t.Run("commit failure is returned", func(t *testing.T) {
		db := &fakeDB{tx: &fakeTx{err: errors.New("serialization failure")}}
		repo := NewRepository(db, zap.NewNop())

		err := repo.WithTx(ctx, func(tx *Repository) error { return nil })
		require.Error(t, err)
		assert.Contains(t, err.Error(), "commit transaction")
	})

	t.Run("begin failure skips fn", func(t *testing.T) {
		db := &fakeDB{beginErr: errors.New("pool closed")}
		repo := NewRepository(db, zap.NewNop())

		called := false
		err := repo.WithTx(ctx, func(tx *Repository) error {
			called = true
			return nil
		})
		require.Error(t, err)
		assert.False(t, called)
	})

	t.Run("without a database fn runs through the tx func", func(t *testing.T) {
		var wrapped int
		repo := (&Repository{}).UseTxFunc(func(ctx context.Context, fn func() error) error {
			wrapped++
			return fn()
		})

		err := repo.WithTx(ctx, func(tx *Repository) error {
			assert.Same(t, repo, tx)
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 1, wrapped)
	})
}
