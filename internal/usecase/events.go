package usecase

import (
	"context"
	"time"

	"rental-store/internal/data/entity"
	"rental-store/internal/dto/response"
	"rental-store/pkg/rabbitmq"

	"go.uber.org/zap"
)

const (
	EventRentalCreated  = "rental.created"
	EventRentalReturned = "rental.returned"

	publishTimeout = 5 * time.Second
)

type eventPublisher struct {
	publisher rabbitmq.Publisher
	exchange  string
	log       *zap.Logger
}

func newEventPublisher(publisher rabbitmq.Publisher, exchange string, log *zap.Logger) *eventPublisher {
	return &eventPublisher{
		publisher: publisher,
		exchange:  exchange,
		log:       log.With(zap.String("component", "events")),
	}
}

// rental sends the committed rental. Failures are logged only; the write already happened.
func (e *eventPublisher) rental(ctx context.Context, routingKey string, rental *entity.Rental) {
	if e == nil || e.publisher == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := e.publisher.Publish(ctx, e.exchange, routingKey, response.RentalToResponse(rental)); err != nil {
		e.log.Warn("Failed to publish rental event",
			zap.Error(err),
			zap.String("routing_key", routingKey),
			zap.String("rental_id", rental.ID.Hex()),
		)
	}
}
