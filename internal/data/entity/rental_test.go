package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func newTestRental(dateOut time.Time, rate float64) *Rental {
	customer := &Customer{Base: Base{ID: bson.NewObjectID()}, Name: "customer1", Phone: "12345"}
	movie := &Movie{Base: Base{ID: bson.NewObjectID()}, Title: "movie title", DailyRentalRate: rate, NumberInStock: 3}
	return NewRental(customer, movie, dateOut)
}

func TestRentalDays(t *testing.T) {
	out := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		returned time.Time
		want     int
	}{
		{name: "same instant", returned: out, want: 1},
		{name: "one hour", returned: out.Add(time.Hour), want: 1},
		{name: "exactly one day", returned: out.Add(24 * time.Hour), want: 1},
		{name: "one day and a minute", returned: out.Add(24*time.Hour + time.Minute), want: 2},
		{name: "exactly three days", returned: out.Add(72 * time.Hour), want: 3},
		{name: "returned before out", returned: out.Add(-time.Hour), want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RentalDays(out, tt.returned))
		})
	}
}

func TestRentalReturn_ChargesDailyRateForThreeDays(t *testing.T) {
	out := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	rental := newTestRental(out, 2)

	require.True(t, rental.IsOpen())
	require.NoError(t, rental.Return(out.Add(72*time.Hour)))

	require.NotNil(t, rental.DateReturned)
	require.NotNil(t, rental.RentalFee)
	assert.False(t, rental.IsOpen())
	assert.Equal(t, 6.0, *rental.RentalFee)
	assert.False(t, rental.DateReturned.Before(rental.DateOut))
}

func TestRentalReturn_PartialDayChargedAsFullDay(t *testing.T) {
	out := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	rental := newTestRental(out, 3)

	require.NoError(t, rental.Return(out.Add(2*time.Hour)))
	assert.Equal(t, 3.0, *rental.RentalFee)
}

func TestRentalReturn_TwiceFailsAndKeepsFirstResult(t *testing.T) {
	out := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	rental := newTestRental(out, 2)

	require.NoError(t, rental.Return(out.Add(24*time.Hour)))
	firstReturned := *rental.DateReturned
	firstFee := *rental.RentalFee

	err := rental.Return(out.Add(96 * time.Hour))
	require.ErrorIs(t, err, ErrRentalAlreadyReturned)
	assert.Equal(t, firstReturned, *rental.DateReturned)
	assert.Equal(t, firstFee, *rental.RentalFee)
}

func TestRentalReturn_ClockBehindDateOut(t *testing.T) {
	out := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	rental := newTestRental(out, 2)

	require.NoError(t, rental.Return(out.Add(-time.Minute)))
	assert.Equal(t, out, *rental.DateReturned)
	assert.Equal(t, 2.0, *rental.RentalFee)
}

func TestNewRental_SnapshotsAreCopies(t *testing.T) {
	customer := &Customer{Base: Base{ID: bson.NewObjectID()}, Name: "customer1", IsGold: true, Phone: "12345"}
	movie := &Movie{Base: Base{ID: bson.NewObjectID()}, Title: "movie title", DailyRentalRate: 2}
	rental := NewRental(customer, movie, time.Now())

	customer.Name = "renamed"
	movie.DailyRentalRate = 10

	assert.Equal(t, "customer1", rental.Customer.Name)
	assert.True(t, rental.Customer.IsGold)
	assert.Equal(t, customer.ID, rental.Customer.ID)
	assert.Equal(t, 2.0, rental.Movie.DailyRentalRate)
	assert.Equal(t, movie.ID, rental.Movie.ID)
}
