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

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id bson.ObjectID) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}

type userRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewUserRepository(db database.Querier, log *zap.Logger) UserRepository {
	return &userRepository{
		db:  db,
		log: log.With(zap.String("repository", "user")),
	}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (id, name, email, password, is_admin, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		user.ID.Hex(),
		user.Name,
		user.Email,
		user.PasswordHash,
		user.IsAdmin,
		user.CreatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create user",
			zap.Error(err),
			zap.String("email", user.Email),
		)
		return fmt.Errorf("create user: %w", translateError(err))
	}

	return nil
}

func (r *userRepository) FindByID(ctx context.Context, id bson.ObjectID) (*entity.User, error) {
	query := `SELECT id, name, email, password, is_admin, created_at FROM users WHERE id = $1`
	return r.findOne(ctx, query, id.Hex())
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `SELECT id, name, email, password, is_admin, created_at FROM users WHERE lower(email) = lower($1)`
	return r.findOne(ctx, query, email)
}

func (r *userRepository) findOne(ctx context.Context, query string, arg string) (*entity.User, error) {
	var (
		user entity.User
		id   string
	)
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&id,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.IsAdmin,
		&user.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find user", zap.Error(err))
		return nil, fmt.Errorf("find user: %w", err)
	}

	if user.ID, err = parseID(id); err != nil {
		return nil, err
	}
	return &user, nil
}
