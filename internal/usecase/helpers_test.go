package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"rental-store/internal/data/entity"
	"rental-store/internal/data/repository/repotest"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type publishedEvent struct {
	exchange   string
	routingKey string
	body       any
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
	err    error
}

func (p *recordingPublisher) Publish(ctx context.Context, exchange, routingKey string, body any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{exchange: exchange, routingKey: routingKey, body: body})
	return p.err
}

func (p *recordingPublisher) Close() {}

func (p *recordingPublisher) keys() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	keys := make([]string, len(p.events))
	for i, e := range p.events {
		keys[i] = e.routingKey
	}
	return keys
}

func fixedClock(t time.Time) clock {
	return func() time.Time { return t }
}

var day0 = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

type catalog struct {
	genre    entity.Genre
	customer entity.Customer
	movie    entity.Movie
}

// seedCatalog stores one genre, one customer and one movie with the given stock and rate.
func seedCatalog(t *testing.T, store *repotest.Store, stock int, rate float64) catalog {
	t.Helper()

	c := catalog{
		genre: entity.Genre{Base: entity.NewBase(day0), Name: "genre1"},
		customer: entity.Customer{
			Base:  entity.NewBase(day0),
			Name:  "customer1",
			Phone: "12345",
		},
	}
	c.movie = entity.Movie{
		Base:            entity.NewBase(day0),
		Title:           "movie title",
		GenreID:         c.genre.ID,
		NumberInStock:   stock,
		DailyRentalRate: rate,
	}

	store.AddGenre(c.genre)
	store.AddCustomer(c.customer)
	store.AddMovie(c.movie)
	return c
}

func openRental(c catalog, dateOut time.Time) entity.Rental {
	return *entity.NewRental(&c.customer, &c.movie, dateOut)
}

func hex(id bson.ObjectID) string { return id.Hex() }
