package repository

import (
	"context"
	"errors"
	"fmt"

	"rental-store/pkg/database"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"
)

var (
	// ErrNotFound is returned by writes that matched no row. Reads return (nil, nil) instead.
	ErrNotFound = errors.New("record not found")
	// ErrForeignKey means the row references, or is referenced by, another row.
	ErrForeignKey = errors.New("foreign key violation")
	// ErrDuplicate means a unique constraint rejected the write.
	ErrDuplicate = errors.New("duplicate key")
	// ErrConstraint means a CHECK constraint rejected the write.
	ErrConstraint = errors.New("check constraint violation")
)

// Repository groups one repository per entity. It is built once at startup and
// handed to the services; WithTx hands out a copy bound to a single transaction.
type Repository struct {
	User     UserRepository
	Genre    GenreRepository
	Customer CustomerRepository
	Movie    MovieRepository
	Rental   RentalRepository

	db     database.PgxIface
	txFunc TxFunc
	log    *zap.Logger
}

// TxFunc runs fn as one atomic unit. Stores without a database use it to give
// WithTx rollback behaviour.
type TxFunc func(ctx context.Context, fn func() error) error

// UseTxFunc makes WithTx on a Repository without a database run through f.
func (r *Repository) UseTxFunc(f TxFunc) *Repository {
	r.txFunc = f
	return r
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	repo := newRepositories(db, log)
	repo.db = db
	return repo
}

func newRepositories(q database.Querier, log *zap.Logger) *Repository {
	return &Repository{
		User:     NewUserRepository(q, log),
		Genre:    NewGenreRepository(q, log),
		Customer: NewCustomerRepository(q, log),
		Movie:    NewMovieRepository(q, log),
		Rental:   NewRentalRepository(q, log),
		log:      log,
	}
}

// WithTx runs fn against repositories sharing one transaction. The transaction is
// committed when fn returns nil and rolled back otherwise. On a Repository that is
// already transactional fn runs inline. Without a database fn runs through the
// TxFunc set by UseTxFunc, if any.
func (r *Repository) WithTx(ctx context.Context, fn func(tx *Repository) error) error {
	if r.db == nil {
		if r.txFunc != nil {
			return r.txFunc(ctx, func() error { return fn(r) })
		}
		return fn(r)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.log.Error("Failed to begin transaction", zap.Error(err))
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(newRepositories(tx, r.log)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		r.log.Error("Failed to commit transaction", zap.Error(err))
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// Ping checks the database connection
func (r *Repository) Ping(ctx context.Context) error {
	if r.db == nil {
		return nil
	}
	return r.db.Ping(ctx)
}

// translateError maps Postgres constraint violations onto the package errors.
func translateError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgerrcode.ForeignKeyViolation:
		return fmt.Errorf("%w: %s", ErrForeignKey, pgErr.ConstraintName)
	case pgerrcode.UniqueViolation:
		return fmt.Errorf("%w: %s", ErrDuplicate, pgErr.ConstraintName)
	case pgerrcode.CheckViolation:
		return fmt.Errorf("%w: %s", ErrConstraint, pgErr.ConstraintName)
	default:
		return err
	}
}

func parseID(hex string) (bson.ObjectID, error) {
	id, err := bson.ObjectIDFromHex(hex)
	if err != nil {
		return bson.NilObjectID, fmt.Errorf("parse id %q: %w", hex, err)
	}
	return id, nil
}
