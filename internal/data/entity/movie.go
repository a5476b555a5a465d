package entity

import "go.mongodb.org/mongo-driver/v2/bson"

type Movie struct {
	Base
	Title           string        `db:"title"`
	GenreID         bson.ObjectID `db:"genre_id"`
	NumberInStock   int           `db:"number_in_stock"`
	DailyRentalRate float64       `db:"daily_rental_rate"`

	// Genre is filled by reads that join genres; writes only use GenreID.
	Genre *Genre `db:"-"`
}

// Snapshot copies the fields a rental keeps about its movie.
func (m *Movie) Snapshot() MovieSnapshot {
	return MovieSnapshot{
		ID:              m.ID,
		Title:           m.Title,
		DailyRentalRate: m.DailyRentalRate,
	}
}
