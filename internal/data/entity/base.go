package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Base struct {
	ID        bson.ObjectID `db:"id"`
	CreatedAt time.Time     `db:"created_at"`
	UpdatedAt time.Time     `db:"updated_at"`
}

// NewBase stamps a fresh identifier and timestamps.
func NewBase(now time.Time) Base {
	return Base{
		ID:        bson.NewObjectID(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}
