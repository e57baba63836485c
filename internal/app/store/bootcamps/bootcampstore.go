// internal/app/store/bootcamps/bootcampstore.go
package bootcampstore

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode"

	"github.com/dalemusser/campdir/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

var ErrDuplicateName = errors.New("a bootcamp with this name already exists")

// DefaultPhoto is the placeholder filename before an owner uploads a photo.
const DefaultPhoto = "no-photo.jpg"

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("bootcamps")}
}

// Create inserts a new Bootcamp, deriving the slug and setting defaults and
// timestamps. It validates required fields and career tags.
func (s *Store) Create(ctx context.Context, b models.Bootcamp) (models.Bootcamp, error) {
	now := time.Now().UTC()

	b.ID = primitive.NewObjectID()
	b.Slug = Slugify(b.Name)
	if b.Photo == "" {
		b.Photo = DefaultPhoto
	}
	// Derived fields are never accepted on insert.
	b.AverageRating = nil
	b.AverageCost = nil
	b.CreatedAt = now
	b.UpdatedAt = &now

	if strings.TrimSpace(b.Name) == "" {
		return models.Bootcamp{}, mongo.CommandError{Message: "Please add a name"}
	}
	if strings.TrimSpace(b.Description) == "" {
		return models.Bootcamp{}, mongo.CommandError{Message: "Please add a description"}
	}
	for _, c := range b.Careers {
		if !models.IsValidCareer(c) {
			return models.Bootcamp{}, mongo.CommandError{Message: "'" + c + "' is not a valid career"}
		}
	}
	if b.Location != nil && len(b.Location.Coordinates) != 2 {
		return models.Bootcamp{}, mongo.CommandError{Message: "location coordinates must be [longitude, latitude]"}
	}

	if _, err := s.c.InsertOne(ctx, b); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Bootcamp{}, ErrDuplicateName
		}
		return models.Bootcamp{}, err
	}
	return b, nil
}

// GetByID returns a bootcamp by its ID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Bootcamp, error) {
	var b models.Bootcamp
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&b)
	if err != nil {
		return models.Bootcamp{}, err
	}
	return b, nil
}

// FindOneByOwner returns the bootcamp owned by userID, or
// mongo.ErrNoDocuments when the user has not published one. Backs the
// one-bootcamp-per-non-admin rule.
func (s *Store) FindOneByOwner(ctx context.Context, userID primitive.ObjectID) (models.Bootcamp, error) {
	var b models.Bootcamp
	err := s.c.FindOne(ctx, bson.M{"user_id": userID}).Decode(&b)
	if err != nil {
		return models.Bootcamp{}, err
	}
	return b, nil
}

// Update modifies mutable fields and refreshes UpdatedAt. Empty fields are
// left untouched; owner, derived aggregates, and photo are never updated here.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, mut models.Bootcamp) error {
	set := bson.M{}
	if strings.TrimSpace(mut.Name) != "" {
		set["name"] = mut.Name
		set["slug"] = Slugify(mut.Name)
	}
	if strings.TrimSpace(mut.Description) != "" {
		set["description"] = mut.Description
	}
	if mut.Website != "" {
		set["website"] = mut.Website
	}
	if mut.Phone != "" {
		set["phone"] = mut.Phone
	}
	if mut.Email != "" {
		set["email"] = mut.Email
	}
	if mut.Address != "" {
		set["address"] = mut.Address
	}
	if mut.Location != nil {
		if len(mut.Location.Coordinates) != 2 {
			return mongo.CommandError{Message: "location coordinates must be [longitude, latitude]"}
		}
		set["location"] = mut.Location
	}
	if mut.Careers != nil {
		for _, c := range mut.Careers {
			if !models.IsValidCareer(c) {
				return mongo.CommandError{Message: "'" + c + "' is not a valid career"}
			}
		}
		set["careers"] = mut.Careers
	}
	set["housing"] = mut.Housing
	set["job_assistance"] = mut.JobAssistance
	set["job_guarantee"] = mut.JobGuarantee
	set["accept_gi"] = mut.AcceptGI

	now := time.Now().UTC()
	set["updated_at"] = &now

	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil && wafflemongo.IsDup(err) {
		return ErrDuplicateName
	}
	return err
}

// SetPhoto stores the uploaded photo filename on the bootcamp.
func (s *Store) SetPhoto(ctx context.Context, id primitive.ObjectID, filename string) error {
	now := time.Now().UTC()
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{"photo": filename, "updated_at": &now}})
	return err
}

// Delete removes a bootcamp by ID. Its courses and reviews are intentionally
// left in place (orphaning policy): child documents reference the bootcamp
// relationally, not by containment.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// FindWithinRadius returns bootcamps whose location lies inside the spherical
// cap centered at [lng, lat] with the given radius in radians.
func (s *Store) FindWithinRadius(ctx context.Context, lng, lat, radiusRadians float64) ([]models.Bootcamp, error) {
	filter := bson.M{
		"location": bson.M{
			"$geoWithin": bson.M{
				"$centerSphere": bson.A{bson.A{lng, lat}, radiusRadians},
			},
		},
	}
	return s.Find(ctx, filter)
}

// Find returns bootcamps matching the given filter with optional find options.
// The caller builds the filter and options (pagination, sorting, projection).
func (s *Store) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Bootcamp, error) {
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var bootcamps []models.Bootcamp
	if err := cur.All(ctx, &bootcamps); err != nil {
		return nil, err
	}
	return bootcamps, nil
}

// Count returns the number of bootcamps matching the filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}

// Slugify lowercases the name and reduces it to hyphen-separated
// alphanumeric runs ("Devworks Bootcamp" -> "devworks-bootcamp").
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		case !lastHyphen:
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
