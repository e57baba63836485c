// internal/app/store/users/userstore.go
package userstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dalemusser/campdir/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

type Store struct {
	c *mongo.Collection
}

var ErrDuplicateEmail = errors.New("a user with this email already exists")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

// Create inserts a new User, hashing the plaintext password and setting the
// role default and timestamps. The plaintext never touches the database.
func (s *Store) Create(ctx context.Context, u models.User, password string) (models.User, error) {
	now := time.Now().UTC()

	u.ID = primitive.NewObjectID()
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	if u.Role == "" {
		u.Role = models.RoleUser
	}
	u.CreatedAt = now
	u.UpdatedAt = &now

	if strings.TrimSpace(u.Name) == "" {
		return models.User{}, mongo.CommandError{Message: "Please add a name"}
	}
	if u.Email == "" || !strings.Contains(u.Email, "@") {
		return models.User{}, mongo.CommandError{Message: "Please add a valid email"}
	}
	if !models.IsValidRole(u.Role) {
		return models.User{}, mongo.CommandError{Message: "Role must be 'user', 'publisher' or 'admin'"}
	}
	if len(password) < 6 {
		return models.User{}, mongo.CommandError{Message: "Please add a password of at least 6 characters"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}
	u.PasswordHash = string(hash)

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return u, nil
}

// GetByID returns a user by ID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	var u models.User
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if err != nil {
		return models.User{}, err
	}
	return u, nil
}

// GetByEmail returns a user by email, including the password hash, for login.
func (s *Store) GetByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	err := s.c.FindOne(ctx, bson.M{"email": strings.ToLower(strings.TrimSpace(email))}).Decode(&u)
	if err != nil {
		return models.User{}, err
	}
	return u, nil
}

// CheckPassword compares a plaintext password against the stored hash.
func (s *Store) CheckPassword(u models.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// Update modifies mutable fields and refreshes UpdatedAt. Empty fields are
// left untouched; a non-empty password is re-hashed.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, mut models.User, password string) error {
	set := bson.M{}
	if strings.TrimSpace(mut.Name) != "" {
		set["name"] = mut.Name
	}
	if strings.TrimSpace(mut.Email) != "" {
		email := strings.ToLower(strings.TrimSpace(mut.Email))
		if !strings.Contains(email, "@") {
			return mongo.CommandError{Message: "Please add a valid email"}
		}
		set["email"] = email
	}
	if mut.Role != "" {
		if !models.IsValidRole(mut.Role) {
			return mongo.CommandError{Message: "Role must be 'user', 'publisher' or 'admin'"}
		}
		set["role"] = mut.Role
	}
	if password != "" {
		if len(password) < 6 {
			return mongo.CommandError{Message: "Please add a password of at least 6 characters"}
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		set["password"] = string(hash)
	}
	if len(set) == 0 {
		return nil
	}
	now := time.Now().UTC()
	set["updated_at"] = &now

	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil && wafflemongo.IsDup(err) {
		return ErrDuplicateEmail
	}
	return err
}

// Delete removes a user by ID. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// Find returns users matching the filter with optional find options.
// The caller builds the filter and options (pagination, sorting, projection).
func (s *Store) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.User, error) {
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Count returns the number of users matching the filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}
