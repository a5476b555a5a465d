package usecase

import (
	"time"

	"rental-store/internal/data/repository"
	"rental-store/pkg/rabbitmq"
	"rental-store/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	User     UserService
	Genre    GenreService
	Customer CustomerService
	Movie    MovieService
	Rental   RentalService
	Return   ReturnService
}

func NewService(
	repo *repository.Repository,
	tokens utils.TokenManager,
	publisher rabbitmq.Publisher,
	config *utils.Config,
	log *zap.Logger,
) *Service {
	events := newEventPublisher(publisher, config.AMQP.Exchange, log)

	return &Service{
		User:     NewUserService(repo.User, tokens, log),
		Genre:    NewGenreService(repo.Genre, log),
		Customer: NewCustomerService(repo.Customer, log),
		Movie:    NewMovieService(repo, log),
		Rental:   NewRentalService(repo, events, log),
		Return:   NewReturnService(repo, events, log),
	}
}

// clock is swapped in tests.
type clock func() time.Time

func (c clock) now() time.Time {
	if c == nil {
		return time.Now().UTC()
	}
	return c().UTC()
}
