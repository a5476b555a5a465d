package repotest

import (
	"context"
	"errors"
	"testing"
	"time"

	"rental-store/internal/data/entity"
	"rental-store/internal/data/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreWithTx(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	seed := func() (*Store, *repository.Repository, entity.Movie) {
		store, repo := New()
		genre := entity.Genre{Base: entity.NewBase(now), Name: "Comedy"}
		movie := entity.Movie{Base: entity.NewBase(now), Title: "Airplane!", GenreID: genre.ID, NumberInStock: 2}
		store.AddGenre(genre)
		store.AddMovie(movie)
		return store, repo, movie
	}

	t.Run("failed fn restores every table", func(t *testing.T) {
		store, repo, movie := seed()
		boom := errors.New("boom")

		err := repo.WithTx(ctx, func(tx *repository.Repository) error {
			require.NoError(t, tx.Movie.AdjustStock(ctx, movie.ID, -1))
			require.NoError(t, tx.Genre.Create(ctx, &entity.Genre{Base: entity.NewBase(now), Name: "Drama"}))
			return boom
		})
		require.ErrorIs(t, err, boom)

		stored, _ := store.Movie(movie.ID)
		assert.Equal(t, 2, stored.NumberInStock)
		assert.Equal(t, 1, store.GenreCount())
	})

	t.Run("successful fn keeps its writes", func(t *testing.T) {
		store, repo, movie := seed()

		err := repo.WithTx(ctx, func(tx *repository.Repository) error {
			return tx.Movie.AdjustStock(ctx, movie.ID, -1)
		})
		require.NoError(t, err)

		stored, _ := store.Movie(movie.ID)
		assert.Equal(t, 1, stored.NumberInStock)
	})
}
