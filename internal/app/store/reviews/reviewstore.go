// internal/app/store/reviews/reviewstore.go
package reviewstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dalemusser/campdir/internal/app/system/metrics"
	"github.com/dalemusser/campdir/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store wraps the reviews collection. Like the course store, every mutation
// ends with an explicit recompute of the parent bootcamp's average_rating.
// The unique (bootcamp_id, user_id) index enforces one review per user per
// bootcamp at insert time.
type Store struct {
	c         *mongo.Collection
	bootcamps *mongo.Collection
}

var ErrDuplicateReview = errors.New("user has already submitted a review for this bootcamp")

func New(db *mongo.Database) *Store {
	return &Store{
		c:         db.Collection("reviews"),
		bootcamps: db.Collection("bootcamps"),
	}
}

// Create inserts a new Review and recomputes the parent's average rating.
func (s *Store) Create(ctx context.Context, review models.Review) (models.Review, error) {
	now := time.Now().UTC()

	review.ID = primitive.NewObjectID()
	review.CreatedAt = now
	review.UpdatedAt = &now

	if strings.TrimSpace(review.Title) == "" {
		return models.Review{}, mongo.CommandError{Message: "Please add a title for the review"}
	}
	if strings.TrimSpace(review.Text) == "" {
		return models.Review{}, mongo.CommandError{Message: "Please add some text"}
	}
	if review.Rating < models.MinRating || review.Rating > models.MaxRating {
		return models.Review{}, mongo.CommandError{Message: "Please add a rating between 1 and 10"}
	}
	if review.BootcampID.IsZero() {
		return models.Review{}, mongo.CommandError{Message: "Review must belong to a bootcamp"}
	}

	if _, err := s.c.InsertOne(ctx, review); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Review{}, ErrDuplicateReview
		}
		return models.Review{}, err
	}
	if err := s.RecomputeAverageRating(ctx, review.BootcampID); err != nil {
		return models.Review{}, err
	}
	return review, nil
}

// GetByID returns a review by its ID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Review, error) {
	var review models.Review
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&review)
	if err != nil {
		return models.Review{}, err
	}
	return review, nil
}

// Update modifies title, text, and rating, then recomputes the parent's
// average rating.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, mut models.Review) error {
	set := bson.M{}
	if strings.TrimSpace(mut.Title) != "" {
		set["title"] = mut.Title
	}
	if strings.TrimSpace(mut.Text) != "" {
		set["text"] = mut.Text
	}
	if mut.Rating != 0 {
		if mut.Rating < models.MinRating || mut.Rating > models.MaxRating {
			return mongo.CommandError{Message: "Please add a rating between 1 and 10"}
		}
		set["rating"] = mut.Rating
	}
	now := time.Now().UTC()
	set["updated_at"] = &now

	var current models.Review
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&current); err != nil {
		return err
	}
	if _, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set}); err != nil {
		return err
	}
	return s.RecomputeAverageRating(ctx, current.BootcampID)
}

// Delete removes a review and recomputes the parent's average rating.
// Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	var review models.Review
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&review); err != nil {
		if err == mongo.ErrNoDocuments {
			return 0, nil
		}
		return 0, err
	}
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	if err := s.RecomputeAverageRating(ctx, review.BootcampID); err != nil {
		return res.DeletedCount, err
	}
	return res.DeletedCount, nil
}

// FindByBootcamp returns all reviews of one bootcamp, unpaginated.
func (s *Store) FindByBootcamp(ctx context.Context, bootcampID primitive.ObjectID) ([]models.Review, error) {
	return s.Find(ctx, bson.M{"bootcamp_id": bootcampID})
}

// Find returns reviews matching the given filter with optional find options.
func (s *Store) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Review, error) {
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var reviews []models.Review
	if err := cur.All(ctx, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

// Count returns the number of reviews matching the filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}

// RecomputeAverageRating recalculates the arithmetic mean rating of all
// remaining reviews for the bootcamp and persists it on the parent document.
// When the last review is removed the field is removed with it.
func (s *Store) RecomputeAverageRating(ctx context.Context, bootcampID primitive.ObjectID) error {
	metrics.AggregateRecomputes.Inc()

	pipe := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"bootcamp_id": bootcampID}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":            "$bootcamp_id",
			"average_rating": bson.M{"$avg": "$rating"},
		}}},
	}

	cur, err := s.c.Aggregate(ctx, pipe)
	if err != nil {
		return err
	}
	defer cur.Close(ctx)

	if !cur.Next(ctx) {
		_, err := s.bootcamps.UpdateByID(ctx, bootcampID, bson.M{"$unset": bson.M{"average_rating": ""}})
		return err
	}

	var row struct {
		AverageRating float64 `bson:"average_rating"`
	}
	if err := cur.Decode(&row); err != nil {
		return err
	}

	_, err = s.bootcamps.UpdateByID(ctx, bootcampID, bson.M{"$set": bson.M{"average_rating": row.AverageRating}})
	return err
}
