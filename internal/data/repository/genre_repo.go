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

type GenreRepository interface {
	FindAll(ctx context.Context) ([]*entity.Genre, error)
	FindByID(ctx context.Context, id bson.ObjectID) (*entity.Genre, error)
	Create(ctx context.Context, genre *entity.Genre) error
	Update(ctx context.Context, genre *entity.Genre) error
	Delete(ctx context.Context, id bson.ObjectID) error
}

type genreRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewGenreRepository(db database.Querier, log *zap.Logger) GenreRepository {
	return &genreRepository{
		db:  db,
		log: log.With(zap.String("repository", "genre")),
	}
}

func (r *genreRepository) FindAll(ctx context.Context) ([]*entity.Genre, error) {
	query := `SELECT id, name, created_at, updated_at FROM genres ORDER BY name`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find genres", zap.Error(err))
		return nil, fmt.Errorf("find genres: %w", err)
	}
	defer rows.Close()

	genres := []*entity.Genre{}
	for rows.Next() {
		genre, err := scanGenre(rows)
		if err != nil {
			r.log.Error("Failed to scan genre row", zap.Error(err))
			return nil, fmt.Errorf("scan genre row: %w", err)
		}
		genres = append(genres, genre)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate genres: %w", err)
	}

	return genres, nil
}

func (r *genreRepository) FindByID(ctx context.Context, id bson.ObjectID) (*entity.Genre, error) {
	query := `SELECT id, name, created_at, updated_at FROM genres WHERE id = $1`

	genre, err := scanGenre(r.db.QueryRow(ctx, query, id.Hex()))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find genre by ID",
			zap.Error(err),
			zap.String("genre_id", id.Hex()),
		)
		return nil, fmt.Errorf("find genre by id: %w", err)
	}

	return genre, nil
}

func (r *genreRepository) Create(ctx context.Context, genre *entity.Genre) error {
	query := `INSERT INTO genres (id, name, created_at, updated_at) VALUES ($1, $2, $3, $4)`

	_, err := r.db.Exec(ctx, query, genre.ID.Hex(), genre.Name, genre.CreatedAt, genre.UpdatedAt)
	if err != nil {
		r.log.Error("Failed to create genre",
			zap.Error(err),
			zap.String("name", genre.Name),
		)
		return fmt.Errorf("create genre: %w", translateError(err))
	}

	return nil
}

func (r *genreRepository) Update(ctx context.Context, genre *entity.Genre) error {
	query := `UPDATE genres SET name = $2, updated_at = $3 WHERE id = $1`

	result, err := r.db.Exec(ctx, query, genre.ID.Hex(), genre.Name, genre.UpdatedAt)
	if err != nil {
		r.log.Error("Failed to update genre",
			zap.Error(err),
			zap.String("genre_id", genre.ID.Hex()),
		)
		return fmt.Errorf("update genre: %w", translateError(err))
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("update genre: %w", ErrNotFound)
	}

	return nil
}

func (r *genreRepository) Delete(ctx context.Context, id bson.ObjectID) error {
	query := `DELETE FROM genres WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id.Hex())
	if err != nil {
		r.log.Error("Failed to delete genre",
			zap.Error(err),
			zap.String("genre_id", id.Hex()),
		)
		return fmt.Errorf("delete genre: %w", translateError(err))
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete genre: %w", ErrNotFound)
	}

	r.log.Info("Genre deleted", zap.String("genre_id", id.Hex()))
	return nil
}

func scanGenre(row pgx.Row) (*entity.Genre, error) {
	var (
		genre entity.Genre
		id    string
	)
	if err := row.Scan(&id, &genre.Name, &genre.CreatedAt, &genre.UpdatedAt); err != nil {
		return nil, err
	}

	var err error
	if genre.ID, err = parseID(id); err != nil {
		return nil, err
	}
	return &genre, nil
}
