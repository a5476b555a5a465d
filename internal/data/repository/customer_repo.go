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

type CustomerRepository interface {
	FindAll(ctx context.Context) ([]*entity.Customer, error)
	FindByID(ctx context.Context, id bson.ObjectID) (*entity.Customer, error)
	Create(ctx context.Context, customer *entity.Customer) error
	Update(ctx context.Context, customer *entity.Customer) error
	Delete(ctx context.Context, id bson.ObjectID) error
}

type customerRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewCustomerRepository(db database.Querier, log *zap.Logger) CustomerRepository {
	return &customerRepository{
		db:  db,
		log: log.With(zap.String("repository", "customer")),
	}
}

const customerColumns = `id, name, is_gold, phone, created_at, updated_at`

func (r *customerRepository) FindAll(ctx context.Context) ([]*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers ORDER BY name`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find customers", zap.Error(err))
		return nil, fmt.Errorf("find customers: %w", err)
	}
	defer rows.Close()

	customers := []*entity.Customer{}
	for rows.Next() {
		customer, err := scanCustomer(rows)
		if err != nil {
			r.log.Error("Failed to scan customer row", zap.Error(err))
			return nil, fmt.Errorf("scan customer row: %w", err)
		}
		customers = append(customers, customer)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate customers: %w", err)
	}

	return customers, nil
}

func (r *customerRepository) FindByID(ctx context.Context, id bson.ObjectID) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`

	customer, err := scanCustomer(r.db.QueryRow(ctx, query, id.Hex()))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find customer by ID",
			zap.Error(err),
			zap.String("customer_id", id.Hex()),
		)
		return nil, fmt.Errorf("find customer by id: %w", err)
	}

	return customer, nil
}

func (r *customerRepository) Create(ctx context.Context, customer *entity.Customer) error {
	query := `
		INSERT INTO customers (id, name, is_gold, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		customer.ID.Hex(),
		customer.Name,
		customer.IsGold,
		customer.Phone,
		customer.CreatedAt,
		customer.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create customer",
			zap.Error(err),
			zap.String("name", customer.Name),
		)
		return fmt.Errorf("create customer: %w", translateError(err))
	}

	return nil
}

func (r *customerRepository) Update(ctx context.Context, customer *entity.Customer) error {
	query := `
		UPDATE customers
		SET name = $2, is_gold = $3, phone = $4, updated_at = $5
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		customer.ID.Hex(),
		customer.Name,
		customer.IsGold,
		customer.Phone,
		customer.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update customer",
			zap.Error(err),
			zap.String("customer_id", customer.ID.Hex()),
		)
		return fmt.Errorf("update customer: %w", translateError(err))
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("update customer: %w", ErrNotFound)
	}

	return nil
}

func (r *customerRepository) Delete(ctx context.Context, id bson.ObjectID) error {
	query := `DELETE FROM customers WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id.Hex())
	if err != nil {
		r.log.Error("Failed to delete customer",
			zap.Error(err),
			zap.String("customer_id", id.Hex()),
		)
		return fmt.Errorf("delete customer: %w", translateError(err))
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete customer: %w", ErrNotFound)
	}

	r.log.Info("Customer deleted", zap.String("customer_id", id.Hex()))
	return nil
}

func scanCustomer(row pgx.Row) (*entity.Customer, error) {
	var (
		customer entity.Customer
		id       string
	)
	err := row.Scan(
		&id,
		&customer.Name,
		&customer.IsGold,
		&customer.Phone,
		&customer.CreatedAt,
		&customer.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if customer.ID, err = parseID(id); err != nil {
		return nil, err
	}
	return &customer, nil
}
