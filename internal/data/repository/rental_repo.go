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

type RentalRepository interface {
	FindAll(ctx context.Context) ([]*entity.Rental, error)
	FindByID(ctx context.Context, id bson.ObjectID) (*entity.Rental, error)
	Create(ctx context.Context, rental *entity.Rental) error

	// Lookup returns the rental for a customer/movie pair, preferring the open one,
	// and locks its row for the rest of the transaction.
	Lookup(ctx context.Context, customerID, movieID bson.ObjectID) (*entity.Rental, error)
	// MarkReturned persists DateReturned and RentalFee of a rental that is still open.
	MarkReturned(ctx context.Context, rental *entity.Rental) error
}

type rentalRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewRentalRepository(db database.Querier, log *zap.Logger) RentalRepository {
	return &rentalRepository{
		db:  db,
		log: log.With(zap.String("repository", "rental")),
	}
}

const rentalColumns = `id, customer, movie, date_out, date_returned, rental_fee`

func (r *rentalRepository) FindAll(ctx context.Context) ([]*entity.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals ORDER BY date_out DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find rentals", zap.Error(err))
		return nil, fmt.Errorf("find rentals: %w", err)
	}
	defer rows.Close()

	rentals := []*entity.Rental{}
	for rows.Next() {
		rental, err := scanRental(rows)
		if err != nil {
			r.log.Error("Failed to scan rental row", zap.Error(err))
			return nil, fmt.Errorf("scan rental row: %w", err)
		}
		rentals = append(rentals, rental)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate rentals: %w", err)
	}

	return rentals, nil
}

func (r *rentalRepository) FindByID(ctx context.Context, id bson.ObjectID) (*entity.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE id = $1`

	rental, err := scanRental(r.db.QueryRow(ctx, query, id.Hex()))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find rental by ID",
			zap.Error(err),
			zap.String("rental_id", id.Hex()),
		)
		return nil, fmt.Errorf("find rental by id: %w", err)
	}

	return rental, nil
}

func (r *rentalRepository) Lookup(ctx context.Context, customerID, movieID bson.ObjectID) (*entity.Rental, error) {
	query := `
		SELECT ` + rentalColumns + `
		FROM rentals
		WHERE customer_id = $1 AND movie_id = $2
		ORDER BY (date_returned IS NULL) DESC, date_out DESC
		LIMIT 1
		FOR UPDATE
	`

	rental, err := scanRental(r.db.QueryRow(ctx, query, customerID.Hex(), movieID.Hex()))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to look up rental",
			zap.Error(err),
			zap.String("customer_id", customerID.Hex()),
			zap.String("movie_id", movieID.Hex()),
		)
		return nil, fmt.Errorf("lookup rental: %w", err)
	}

	return rental, nil
}

func (r *rentalRepository) Create(ctx context.Context, rental *entity.Rental) error {
	query := `
		INSERT INTO rentals (id, customer, movie, date_out, date_returned, rental_fee)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		rental.ID.Hex(),
		rental.Customer,
		rental.Movie,
		rental.DateOut,
		rental.DateReturned,
		rental.RentalFee,
	)
	if err != nil {
		r.log.Error("Failed to create rental",
			zap.Error(err),
			zap.String("customer_id", rental.Customer.ID.Hex()),
			zap.String("movie_id", rental.Movie.ID.Hex()),
		)
		return fmt.Errorf("create rental: %w", translateError(err))
	}

	return nil
}

func (r *rentalRepository) MarkReturned(ctx context.Context, rental *entity.Rental) error {
	query := `
		UPDATE rentals
		SET date_returned = $2, rental_fee = $3
		WHERE id = $1 AND date_returned IS NULL
	`

	result, err := r.db.Exec(ctx, query, rental.ID.Hex(), rental.DateReturned, rental.RentalFee)
	if err != nil {
		r.log.Error("Failed to mark rental returned",
			zap.Error(err),
			zap.String("rental_id", rental.ID.Hex()),
		)
		return fmt.Errorf("mark rental returned: %w", translateError(err))
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("mark rental returned: %w", entity.ErrRentalAlreadyReturned)
	}

	return nil
}

func scanRental(row pgx.Row) (*entity.Rental, error) {
	var (
		rental entity.Rental
		id     string
	)
	err := row.Scan(
		&id,
		&rental.Customer,
		&rental.Movie,
		&rental.DateOut,
		&rental.DateReturned,
		&rental.RentalFee,
	)
	if err != nil {
		return nil, err
	}

	if rental.ID, err = parseID(id); err != nil {
		return nil, err
	}
	return &rental, nil
}
