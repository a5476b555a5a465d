package repository

import (
	"context"
	"errors"
	"fmt"

	"rental-store/internal/data/entity"
	"rental-store/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"
)

type MovieRepository interface {
	// CRUD Movie
	FindAll(ctx context.Context) ([]*entity.Movie, error)
	FindByID(ctx context.Context, id bson.ObjectID) (*entity.Movie, error)
	Create(ctx context.Context, movie *entity.Movie) error
	Update(ctx context.Context, movie *entity.Movie) error
	Delete(ctx context.Context, id bson.ObjectID) error

	// Stock, used inside rental transactions
	FindByIDForUpdate(ctx context.Context, id bson.ObjectID) (*entity.Movie, error)
	AdjustStock(ctx context.Context, id bson.ObjectID, delta int) error
}

type movieRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewMovieRepository(db database.Querier, log *zap.Logger) MovieRepository {
	return &movieRepository{
		db:  db,
		log: log.With(zap.String("repository", "movie")),
	}
}

const movieSelect = `
	SELECT m.id, m.title, m.genre_id, m.number_in_stock, m.daily_rental_rate,
	       m.created_at, m.updated_at, g.name
	FROM movies m
	JOIN genres g ON g.id = m.genre_id
`

func (r *movieRepository) FindAll(ctx context.Context) ([]*entity.Movie, error) {
	rows, err := r.db.Query(ctx, movieSelect+` ORDER BY m.title`)
	if err != nil {
		r.log.Error("Failed to find all movies", zap.Error(err))
		return nil, fmt.Errorf("find movies: %w", err)
	}
	defer rows.Close()

	movies := []*entity.Movie{}
	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			r.log.Error("Failed to scan movie row", zap.Error(err))
			return nil, fmt.Errorf("scan movie: %w", err)
		}
		movies = append(movies, movie)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate movies: %w", err)
	}

	r.log.Debug("Movies found", zap.Int("count", len(movies)))

	return movies, nil
}

func (r *movieRepository) FindByID(ctx context.Context, id bson.ObjectID) (*entity.Movie, error) {
	return r.findOne(ctx, movieSelect+` WHERE m.id = $1`, id)
}

func (r *movieRepository) FindByIDForUpdate(ctx context.Context, id bson.ObjectID) (*entity.Movie, error) {
	return r.findOne(ctx, movieSelect+` WHERE m.id = $1 FOR UPDATE OF m`, id)
}

func (r *movieRepository) findOne(ctx context.Context, query string, id bson.ObjectID) (*entity.Movie, error) {
	movie, err := scanMovie(r.db.QueryRow(ctx, query, id.Hex()))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find movie by ID",
			zap.Error(err),
			zap.String("movie_id", id.Hex()),
		)
		return nil, fmt.Errorf("find movie: %w", err)
	}

	return movie, nil
}

func (r *movieRepository) Create(ctx context.Context, movie *entity.Movie) error {
	query := `
		INSERT INTO movies (id, title, genre_id, number_in_stock, daily_rental_rate,
		                    created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		movie.ID.Hex(),
		movie.Title,
		movie.GenreID.Hex(),
		movie.NumberInStock,
		movie.DailyRentalRate,
		movie.CreatedAt,
		movie.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create movie",
			zap.Error(err),
			zap.String("title", movie.Title),
		)
		return fmt.Errorf("create movie: %w", translateError(err))
	}

	return nil
}

func (r *movieRepository) Update(ctx context.Context, movie *entity.Movie) error {
	query := `
		UPDATE movies
		SET title = $2, genre_id = $3, number_in_stock = $4, daily_rental_rate = $5,
		    updated_at = $6
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		movie.ID.Hex(),
		movie.Title,
		movie.GenreID.Hex(),
		movie.NumberInStock,
		movie.DailyRentalRate,
		movie.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update movie",
			zap.Error(err),
			zap.String("movie_id", movie.ID.Hex()),
		)
		return fmt.Errorf("update movie: %w", translateError(err))
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("update movie: %w", ErrNotFound)
	}

	return nil
}

func (r *movieRepository) Delete(ctx context.Context, id bson.ObjectID) error {
	query := `DELETE FROM movies WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id.Hex())
	if err != nil {
		r.log.Error("Failed to delete movie",
			zap.Error(err),
			zap.String("movie_id", id.Hex()),
		)
		return fmt.Errorf("delete movie: %w", translateError(err))
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete movie: %w", ErrNotFound)
	}

	r.log.Info("Movie deleted", zap.String("movie_id", id.Hex()))
	return nil
}

// AdjustStock adds delta to number_in_stock; the CHECK constraint rejects leaving 0..255.
func (r *movieRepository) AdjustStock(ctx context.Context, id bson.ObjectID, delta int) error {
	query := `UPDATE movies SET number_in_stock = number_in_stock + $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id.Hex(), delta)
	if err != nil {
		r.log.Error("Failed to adjust movie stock",
			zap.Error(err),
			zap.String("movie_id", id.Hex()),
			zap.Int("delta", delta),
		)
		return fmt.Errorf("adjust stock: %w", translateError(err))
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("adjust stock: %w", ErrNotFound)
	}

	return nil
}

func scanMovie(row pgx.Row) (*entity.Movie, error) {
	var (
		movie   entity.Movie
		genre   entity.Genre
		id      string
		genreID string
	)
	err := row.Scan(
		&id,
		&movie.Title,
		&genreID,
		&movie.NumberInStock,
		&movie.DailyRentalRate,
		&movie.CreatedAt,
		&movie.UpdatedAt,
		&genre.Name,
	)
	if err != nil {
		return nil, err
	}

	if movie.ID, err = parseID(id); err != nil {
		return nil, err
	}
	if movie.GenreID, err = parseID(genreID); err != nil {
		return nil, err
	}
	genre.ID = movie.GenreID
	movie.Genre = &genre

	return &movie, nil
}
