// internal/domain/models/course.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Skill levels a course may require.
const (
	SkillBeginner     = "beginner"
	SkillIntermediate = "intermediate"
	SkillAdvanced     = "advanced"
)

// Course is a single course offered by a bootcamp.
//
// BootcampID and UserID are relational links, not containment: deleting a
// bootcamp does not delete its courses.
type Course struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID      primitive.ObjectID `bson:"user_id" json:"user_id"`
	BootcampID  primitive.ObjectID `bson:"bootcamp_id" json:"bootcamp_id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Weeks       int                `bson:"weeks" json:"weeks"`
	Tuition     float64            `bson:"tuition" json:"tuition"`

	MinimumSkill         string `bson:"minimum_skill" json:"minimum_skill"`
	ScholarshipAvailable bool   `bson:"scholarship_available" json:"scholarship_available"`

	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt *time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

// IsValidSkill reports whether s is a recognized minimum skill level.
func IsValidSkill(s string) bool {
	return s == SkillBeginner || s == SkillIntermediate || s == SkillAdvanced
}
