// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles.
const (
	RoleUser      = "user"
	RolePublisher = "publisher"
	RoleAdmin     = "admin"
)

// User is an account in the directory.
//
// PasswordHash is a bcrypt hash; the plaintext password is never stored and
// the hash is never serialized to JSON.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	Role         string             `bson:"role" json:"role"` // user | publisher | admin
	PasswordHash string             `bson:"password" json:"-"`

	ResetPasswordToken  *string    `bson:"reset_password_token,omitempty" json:"-"`
	ResetPasswordExpire *time.Time `bson:"reset_password_expire,omitempty" json:"-"`

	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt *time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

// IsValidRole reports whether role is one of the recognized user roles.
func IsValidRole(role string) bool {
	return role == RoleUser || role == RolePublisher || role == RoleAdmin
}
