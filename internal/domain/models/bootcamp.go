// internal/domain/models/bootcamp.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Location is the geocoded address stored on a bootcamp.
// Coordinates are GeoJSON order: [longitude, latitude].
type Location struct {
	Type             string    `bson:"type" json:"type"` // always "Point"
	Coordinates      []float64 `bson:"coordinates" json:"coordinates"`
	FormattedAddress string    `bson:"formatted_address,omitempty" json:"formatted_address,omitempty"`
	Street           string    `bson:"street,omitempty" json:"street,omitempty"`
	City             string    `bson:"city,omitempty" json:"city,omitempty"`
	State            string    `bson:"state,omitempty" json:"state,omitempty"`
	Zipcode          string    `bson:"zipcode,omitempty" json:"zipcode,omitempty"`
	Country          string    `bson:"country,omitempty" json:"country,omitempty"`
}

// Bootcamp is a published bootcamp listing.
//
// NOTE:
//   - AverageRating and AverageCost are derived fields. They are recomputed
//     by the review and course stores after every child write and must never
//     be accepted from request bodies.
//   - A non-admin user may own at most one bootcamp (enforced at create time).
type Bootcamp struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID      primitive.ObjectID `bson:"user_id" json:"user_id"`
	Name        string             `bson:"name" json:"name"`
	Slug        string             `bson:"slug" json:"slug"`
	Description string             `bson:"description" json:"description"`
	Website     string             `bson:"website,omitempty" json:"website,omitempty"`
	Phone       string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Email       string             `bson:"email,omitempty" json:"email,omitempty"`
	Address     string             `bson:"address,omitempty" json:"address,omitempty"`
	Location    *Location          `bson:"location,omitempty" json:"location,omitempty"`

	Careers       []string `bson:"careers" json:"careers"`
	Housing       bool     `bson:"housing" json:"housing"`
	JobAssistance bool     `bson:"job_assistance" json:"job_assistance"`
	JobGuarantee  bool     `bson:"job_guarantee" json:"job_guarantee"`
	AcceptGI      bool     `bson:"accept_gi" json:"accept_gi"`

	AverageRating *float64 `bson:"average_rating,omitempty" json:"average_rating,omitempty"`
	AverageCost   *float64 `bson:"average_cost,omitempty" json:"average_cost,omitempty"`

	Photo string `bson:"photo" json:"photo"`

	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt *time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

// ValidCareers is the set of career tags a bootcamp may advertise.
var ValidCareers = []string{
	"Web Development",
	"Mobile Development",
	"UI/UX",
	"Data Science",
	"Business",
	"Other",
}

// IsValidCareer reports whether c is one of ValidCareers.
func IsValidCareer(c string) bool {
	for _, v := range ValidCareers {
		if v == c {
			return true
		}
	}
	return false
}
