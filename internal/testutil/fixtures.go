package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	bootcampstore "github.com/dalemusser/campdir/internal/app/store/bootcamps"
	"github.com/dalemusser/campdir/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser inserts a user with the given role. The password is "secret123"
// for every fixture user.
func (f *Fixtures) CreateUser(ctx context.Context, name, role string) models.User {
	f.t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	if err != nil {
		f.t.Fatalf("failed to hash fixture password: %v", err)
	}

	now := time.Now().UTC()
	u := models.User{
		ID:           primitive.NewObjectID(),
		Name:         name,
		Email:        fmt.Sprintf("%s@test.com", primitive.NewObjectID().Hex()),
		Role:         role,
		PasswordHash: string(hash),
		CreatedAt:    now,
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return u
}

// CreatePublisher inserts a publisher-role user.
func (f *Fixtures) CreatePublisher(ctx context.Context) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, "Test Publisher", models.RolePublisher)
}

// CreateAdmin inserts an admin-role user.
func (f *Fixtures) CreateAdmin(ctx context.Context) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, "Test Admin", models.RoleAdmin)
}

// CreateBootcamp inserts a bootcamp owned by the given user.
func (f *Fixtures) CreateBootcamp(ctx context.Context, name string, ownerID primitive.ObjectID) models.Bootcamp {
	f.t.Helper()

	now := time.Now().UTC()
	b := models.Bootcamp{
		ID:          primitive.NewObjectID(),
		UserID:      ownerID,
		Name:        name,
		Slug:        bootcampstore.Slugify(name),
		Description: "A test bootcamp",
		Careers:     []string{"Web Development"},
		Location: &models.Location{
			Type:        "Point",
			Coordinates: []float64{-71.104028, 42.350846},
			City:        "Boston",
			State:       "MA",
		},
		Photo:     bootcampstore.DefaultPhoto,
		CreatedAt: now,
	}

	if _, err := f.db.Collection("bootcamps").InsertOne(ctx, b); err != nil {
		f.t.Fatalf("failed to create test bootcamp: %v", err)
	}
	return b
}

// CreateCourse inserts a course under the given bootcamp. No aggregate
// recompute happens; use the course store when the test cares about
// average_cost.
func (f *Fixtures) CreateCourse(ctx context.Context, bootcampID, ownerID primitive.ObjectID, title string, tuition float64) models.Course {
	f.t.Helper()

	now := time.Now().UTC()
	c := models.Course{
		ID:           primitive.NewObjectID(),
		UserID:       ownerID,
		BootcampID:   bootcampID,
		Title:        title,
		Description:  "A test course",
		Weeks:        8,
		Tuition:      tuition,
		MinimumSkill: models.SkillBeginner,
		CreatedAt:    now,
	}

	if _, err := f.db.Collection("courses").InsertOne(ctx, c); err != nil {
		f.t.Fatalf("failed to create test course: %v", err)
	}
	return c
}

// CreateReview inserts a review under the given bootcamp. Like CreateCourse,
// it does not recompute average_rating.
func (f *Fixtures) CreateReview(ctx context.Context, bootcampID, userID primitive.ObjectID, rating int) models.Review {
	f.t.Helper()

	now := time.Now().UTC()
	rv := models.Review{
		ID:         primitive.NewObjectID(),
		UserID:     userID,
		BootcampID: bootcampID,
		Title:      "A test review",
		Text:       "Learned a lot",
		Rating:     rating,
		CreatedAt:  now,
	}

	if _, err := f.db.Collection("reviews").InsertOne(ctx, rv); err != nil {
		f.t.Fatalf("failed to create test review: %v", err)
	}
	return rv
}
