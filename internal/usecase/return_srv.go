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

type ReturnService interface {
	ProcessReturn(ctx context.Context, req *request.ReturnRequest) (*response.RentalResponse, error)
}

type returnService struct {
	repo   *repository.Repository
	events *eventPublisher
	clock  clock
	log    *zap.Logger
}

func NewReturnService(repo *repository.Repository, events *eventPublisher, log *zap.Logger) ReturnService {
	return &returnService{
		repo:   repo,
		events: events,
		log:    log.With(zap.String("service", "return")),
	}
}

// ProcessReturn closes the open rental of a customer/movie pair, prices it and puts
// the copy back in stock. Both writes share one transaction.
func (s *returnService) ProcessReturn(ctx context.Context, req *request.ReturnRequest) (*response.RentalResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	customerID, _ := bson.ObjectIDFromHex(req.CustomerID)
	movieID, _ := bson.ObjectIDFromHex(req.MovieID)

	var rental *entity.Rental
	err := s.repo.WithTx(ctx, func(tx *repository.Repository) error {
		var err error
		rental, err = tx.Rental.Lookup(ctx, customerID, movieID)
		if err != nil {
			return fmt.Errorf("lookup rental: %w", err)
		}
		if rental == nil {
			return notFoundf("Rental not found.")
		}

		if err := rental.Return(s.clock.now()); err != nil {
			return invalidf("Return already processed.")
		}

		if err := tx.Rental.MarkReturned(ctx, rental); err != nil {
			if errors.Is(err, entity.ErrRentalAlreadyReturned) {
				return invalidf("Return already processed.")
			}
			return fmt.Errorf("save rental: %w", err)
		}

		if err := tx.Movie.AdjustStock(ctx, rental.Movie.ID, 1); err != nil {
			switch {
			case errors.Is(err, repository.ErrNotFound):
				// The movie was deleted after checkout; the rental still closes.
				s.log.Warn("Returned movie no longer exists",
					zap.String("rental_id", rental.ID.Hex()),
					zap.String("movie_id", rental.Movie.ID.Hex()),
				)
				return nil
			case errors.Is(err, repository.ErrConstraint):
				return conflictf("Movie stock is already at its maximum.")
			}
			return fmt.Errorf("increment stock: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Rental returned",
		zap.String("rental_id", rental.ID.Hex()),
		zap.Float64("rental_fee", *rental.RentalFee),
	)
	s.events.rental(ctx, EventRentalReturned, rental)

	resp := response.RentalToResponse(rental)
	return &resp, nil
}
