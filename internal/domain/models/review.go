// internal/domain/models/review.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review rating bounds (inclusive).
const (
	MinRating = 1
	MaxRating = 10
)

// Review is one user's review of a bootcamp.
// A user may review a given bootcamp exactly once; the reviews collection
// carries a unique (bootcamp_id, user_id) index.
type Review struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID     primitive.ObjectID `bson:"user_id" json:"user_id"`
	BootcampID primitive.ObjectID `bson:"bootcamp_id" json:"bootcamp_id"`
	Title      string             `bson:"title" json:"title"`
	Text       string             `bson:"text" json:"text"`
	Rating     int                `bson:"rating" json:"rating"`

	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt *time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}
