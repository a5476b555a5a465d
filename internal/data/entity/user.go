package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type User struct {
	ID           bson.ObjectID `db:"id"`
	Name         string        `db:"name"`
	Email        string        `db:"email"`
	PasswordHash string        `db:"password"`
	IsAdmin      bool          `db:"is_admin"`
	CreatedAt    time.Time     `db:"created_at"`
}
