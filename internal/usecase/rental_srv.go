package usecase

import (
	"context"
	"errors"
	"fmt"

	"rental-store/internal/data/entity"
	"rental-store/internal/data/repository"
	"rental-store/internal/dto/request"
	"rental-store/internal/dto/response"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"
)

type RentalService interface {
	GetRentals(ctx context.Context) ([]response.RentalResponse, error)
	GetRentalByID(ctx context.Context, rentalID string) (*response.RentalResponse, error)
	CreateRental(ctx context.Context, req *request.RentalRequest) (*response.RentalResponse, error)
}

type rentalService struct {
	repo   *repository.Repository
	events *eventPublisher
	clock  clock
	log    *zap.Logger
}

func NewRentalService(repo *repository.Repository, events *eventPublisher, log *zap.Logger) RentalService {
	return &rentalService{
		repo:   repo,
		events: events,
		log:    log.With(zap.String("service", "rental")),
	}
}

func (s *rentalService) GetRentals(ctx context.Context) ([]response.RentalResponse, error) {
	rentals, err := s.repo.Rental.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get rentals: %w", err)
	}
	return response.RentalsToResponse(rentals), nil
}

func (s *rentalService) GetRentalByID(ctx context.Context, rentalID string) (*response.RentalResponse, error) {
	id, err := parseID(rentalID, "rental")
	if err != nil {
		return nil, err
	}

	rental, err := s.repo.Rental.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get rental: %w", err)
	}
	if rental == nil {
		return nil, notFoundf("The rental with the given ID was not found.")
	}

	resp := response.RentalToResponse(rental)
	return &resp, nil
}

// CreateRental checks a movie out: the rental insert and the stock decrement commit together.
func (s *rentalService) CreateRental(ctx context.Context, req *request.RentalRequest) (*response.RentalResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	customerID, _ := bson.ObjectIDFromHex(req.CustomerID)
	movieID, _ := bson.ObjectIDFromHex(req.MovieID)

	var rental *entity.Rental
	err := s.repo.WithTx(ctx, func(tx *repository.Repository) error {
		customer, err := tx.Customer.FindByID(ctx, customerID)
		if err != nil {
			return fmt.Errorf("get customer: %w", err)
		}
		if customer == nil {
			return invalidf("Invalid customer.")
		}

		// Locks the movie row so concurrent checkouts see each other's decrement.
		movie, err := tx.Movie.FindByIDForUpdate(ctx, movieID)
		if err != nil {
			return fmt.Errorf("get movie: %w", err)
		}
		if movie == nil {
			return invalidf("Invalid movie.")
		}
		if movie.NumberInStock <= 0 {
			return invalidf("Movie not in stock.")
		}

		existing, err := tx.Rental.Lookup(ctx, customer.ID, movie.ID)
		if err != nil {
			return fmt.Errorf("lookup rental: %w", err)
		}
		if existing != nil && existing.IsOpen() {
			return invalidf("Movie already rented by this customer.")
		}

		rental = entity.NewRental(customer, movie, s.clock.now())
		if err := tx.Rental.Create(ctx, rental); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return invalidf("Movie already rented by this customer.")
			}
			return fmt.Errorf("create rental: %w", err)
		}

		if err := tx.Movie.AdjustStock(ctx, movie.ID, -1); err != nil {
			if errors.Is(err, repository.ErrConstraint) {
				return invalidf("Movie not in stock.")
			}
			return fmt.Errorf("decrement stock: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Rental created",
		zap.String("rental_id", rental.ID.Hex()),
		zap.String("customer_id", rental.Customer.ID.Hex()),
		zap.String("movie_id", rental.Movie.ID.Hex()),
	)
	s.events.rental(ctx, EventRentalCreated, rental)

	resp := response.RentalToResponse(rental)
	return &resp, nil
}
