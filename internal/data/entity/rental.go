package entity

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

var ErrRentalAlreadyReturned = errors.New("rental already returned")

// CustomerSnapshot is the customer as it was at checkout.
type CustomerSnapshot struct {
	ID     bson.ObjectID `json:"_id"`
	Name   string        `json:"name"`
	IsGold bool          `json:"isGold"`
	Phone  string        `json:"phone"`
}

// MovieSnapshot is the movie as it was at checkout; its rate prices the return.
type MovieSnapshot struct {
	ID              bson.ObjectID `json:"_id"`
	Title           string        `json:"title"`
	DailyRentalRate float64       `json:"dailyRentalRate"`
}

// Rental is open while DateReturned is nil. RentalFee is set together with DateReturned.
type Rental struct {
	ID           bson.ObjectID    `db:"id"`
	Customer     CustomerSnapshot `db:"customer"`
	Movie        MovieSnapshot    `db:"movie"`
	DateOut      time.Time        `db:"date_out"`
	DateReturned *time.Time       `db:"date_returned"`
	RentalFee    *float64         `db:"rental_fee"`
}

func NewRental(customer *Customer, movie *Movie, now time.Time) *Rental {
	return &Rental{
		ID:       bson.NewObjectID(),
		Customer: customer.Snapshot(),
		Movie:    movie.Snapshot(),
		DateOut:  now,
	}
}

func (r *Rental) IsOpen() bool {
	return r.DateReturned == nil
}

// Return closes the rental at now and prices it from the snapshot rate.
func (r *Rental) Return(now time.Time) error {
	if !r.IsOpen() {
		return ErrRentalAlreadyReturned
	}

	if now.Before(r.DateOut) {
		now = r.DateOut
	}

	fee := float64(RentalDays(r.DateOut, now)) * r.Movie.DailyRentalRate
	r.DateReturned = &now
	r.RentalFee = &fee
	return nil
}

// RentalDays counts started days between out and returned, never less than one.
func RentalDays(out, returned time.Time) int {
	const day = 24 * time.Hour

	elapsed := returned.Sub(out)
	days := int(elapsed / day)
	if elapsed%day != 0 {
		days++
	}
	if days < 1 {
		days = 1
	}
	return days
}
