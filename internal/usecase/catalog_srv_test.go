package usecase

import (
	"context"
	"strings"
	"testing"

	"rental-store/internal/data/repository/repotest"
	"rental-store/internal/dto/request"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }
func boolPtr(v bool) *bool        { return &v }

func TestGenreService(t *testing.T) {
	ctx := context.Background()

	t.Run("name bounds", func(t *testing.T) {
		tests := []struct {
			name    string
			input   string
			wantErr bool
		}{
			{name: "four chars", input: "1234", wantErr: true},
			{name: "five chars", input: "12345"},
			{name: "fifty chars", input: strings.Repeat("a", 50)},
			{name: "fifty one chars", input: strings.Repeat("a", 51), wantErr: true},
			{name: "blank", input: "     ", wantErr: true},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				store, repo := repotest.New()
				svc := NewGenreService(repo.Genre, zap.NewNop())

				_, err := svc.CreateGenre(ctx, &request.GenreRequest{Name: tt.input})
				if tt.wantErr {
					var verr *ValidationError
					require.ErrorAs(t, err, &verr)
					assert.Contains(t, verr.Fields, "name")
					assert.Zero(t, store.GenreCount())
					return
				}
				require.NoError(t, err)
				assert.Equal(t, 1, store.GenreCount())
			})
		}
	})

	t.Run("create then get round trip", func(t *testing.T) {
		_, repo := repotest.New()
		svc := NewGenreService(repo.Genre, zap.NewNop())

		created, err := svc.CreateGenre(ctx, &request.GenreRequest{Name: "genre1"})
		require.NoError(t, err)

		_, err = bson.ObjectIDFromHex(created.ID)
		require.NoError(t, err)

		got, err := svc.GetGenreByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "genre1", got.Name)
		assert.Equal(t, created.ID, got.ID)
	})

	t.Run("unknown and malformed ids are not found", func(t *testing.T) {
		_, repo := repotest.New()
		svc := NewGenreService(repo.Genre, zap.NewNop())

		for _, id := range []string{"1", "not-an-id", bson.NewObjectID().Hex()} {
			_, err := svc.GetGenreByID(ctx, id)
			assert.ErrorIs(t, err, ErrNotFound, id)

			_, err = svc.UpdateGenre(ctx, id, &request.GenreRequest{Name: "genre2"})
			assert.ErrorIs(t, err, ErrNotFound, id)

			_, err = svc.DeleteGenre(ctx, id)
			assert.ErrorIs(t, err, ErrNotFound, id)
		}
	})

	t.Run("delete returns the prior record", func(t *testing.T) {
		store, repo := repotest.New()
		svc := NewGenreService(repo.Genre, zap.NewNop())

		created, err := svc.CreateGenre(ctx, &request.GenreRequest{Name: "genre1"})
		require.NoError(t, err)

		deleted, err := svc.DeleteGenre(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, *created, *deleted)
		assert.Zero(t, store.GenreCount())
	})

	t.Run("genre used by a movie cannot be deleted", func(t *testing.T) {
		store := repotest.NewStore()
		c := seedCatalog(t, store, 1, 1)
		svc := NewGenreService(store.Repository().Genre, zap.NewNop())

		_, err := svc.DeleteGenre(ctx, c.genre.ID.Hex())
		require.ErrorIs(t, err, ErrConflict)

		_, ok := store.Genre(c.genre.ID)
		assert.True(t, ok)
	})
}

func TestMovieService(t *testing.T) {
	ctx := context.Background()

	valid := func(genreID string) *request.MovieRequest {
		return &request.MovieRequest{
			Title:           "movie title",
			GenreID:         genreID,
			NumberInStock:   intPtr(10),
			DailyRentalRate: floatPtr(2),
		}
	}

	t.Run("create embeds the genre", func(t *testing.T) {
		store := repotest.NewStore()
		c := seedCatalog(t, store, 1, 1)
		svc := NewMovieService(store.Repository(), zap.NewNop())

		resp, err := svc.CreateMovie(ctx, valid(c.genre.ID.Hex()))
		require.NoError(t, err)
		assert.Equal(t, c.genre.ID.Hex(), resp.Genre.ID)
		assert.Equal(t, "genre1", resp.Genre.Name)
		assert.Equal(t, 10, resp.NumberInStock)
	})

	t.Run("unknown genre", func(t *testing.T) {
		svc := NewMovieService(repotest.NewStore().Repository(), zap.NewNop())

		_, err := svc.CreateMovie(ctx, valid(bson.NewObjectID().Hex()))
		require.ErrorIs(t, err, ErrInvalidOperation)
		assert.EqualError(t, err, "Invalid genre.")
	})

	t.Run("field bounds", func(t *testing.T) {
		store := repotest.NewStore()
		c := seedCatalog(t, store, 1, 1)
		svc := NewMovieService(store.Repository(), zap.NewNop())

		tests := []struct {
			name  string
			field string
			edit  func(*request.MovieRequest)
		}{
			{name: "short title", field: "title", edit: func(r *request.MovieRequest) { r.Title = "abcd" }},
			{name: "long title", field: "title", edit: func(r *request.MovieRequest) { r.Title = strings.Repeat("t", 256) }},
			{name: "missing stock", field: "numberInStock", edit: func(r *request.MovieRequest) { r.NumberInStock = nil }},
			{name: "negative stock", field: "numberInStock", edit: func(r *request.MovieRequest) { r.NumberInStock = intPtr(-1) }},
			{name: "stock too high", field: "numberInStock", edit: func(r *request.MovieRequest) { r.NumberInStock = intPtr(256) }},
			{name: "rate too high", field: "dailyRentalRate", edit: func(r *request.MovieRequest) { r.DailyRentalRate = floatPtr(255.5) }},
			{name: "malformed genre", field: "genreId", edit: func(r *request.MovieRequest) { r.GenreID = "1" }},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				req := valid(c.genre.ID.Hex())
				tt.edit(req)

				_, err := svc.CreateMovie(ctx, req)
				var verr *ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Contains(t, verr.Fields, tt.field)
			})
		}
	})

	t.Run("zero stock and rate are allowed", func(t *testing.T) {
		store := repotest.NewStore()
		c := seedCatalog(t, store, 1, 1)
		svc := NewMovieService(store.Repository(), zap.NewNop())

		req := valid(c.genre.ID.Hex())
		req.NumberInStock = intPtr(0)
		req.DailyRentalRate = floatPtr(0)

		_, err := svc.CreateMovie(ctx, req)
		require.NoError(t, err)
	})
}

func TestCustomerService(t *testing.T) {
	ctx := context.Background()
	_, repo := repotest.New()
	svc := NewCustomerService(repo.Customer, zap.NewNop())

	_, err := svc.CreateCustomer(ctx, &request.CustomerRequest{Name: "customer1", Phone: "12345"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "isGold")

	_, err = svc.CreateCustomer(ctx, &request.CustomerRequest{Name: "customer1", IsGold: boolPtr(false), Phone: "12-345"})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "phone")

	created, err := svc.CreateCustomer(ctx, &request.CustomerRequest{Name: "customer1", IsGold: boolPtr(true), Phone: "12345"})
	require.NoError(t, err)
	assert.True(t, created.IsGold)

	updated, err := svc.UpdateCustomer(ctx, created.ID, &request.CustomerRequest{Name: "customer2", IsGold: boolPtr(false), Phone: "999"})
	require.NoError(t, err)
	assert.Equal(t, "customer2", updated.Name)
	assert.False(t, updated.IsGold)

	list, err := svc.GetCustomers(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "999", list[0].Phone)
}
