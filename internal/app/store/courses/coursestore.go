// internal/app/store/courses/coursestore.go
package coursestore

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/dalemusser/campdir/internal/app/system/metrics"
	"github.com/dalemusser/campdir/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store wraps the courses collection. Every mutation recomputes the parent
// bootcamp's average_cost as an explicit follow-up write; nothing happens
// through implicit lifecycle callbacks. Concurrent recomputes for the same
// bootcamp may interleave (last write wins) — consistency for derived fields
// is best-effort by design of the data model.
type Store struct {
	c         *mongo.Collection
	bootcamps *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{
		c:         db.Collection("courses"),
		bootcamps: db.Collection("bootcamps"),
	}
}

// Create inserts a new Course and recomputes the parent's average cost.
func (s *Store) Create(ctx context.Context, course models.Course) (models.Course, error) {
	now := time.Now().UTC()

	course.ID = primitive.NewObjectID()
	course.CreatedAt = now
	course.UpdatedAt = &now

	if strings.TrimSpace(course.Title) == "" {
		return models.Course{}, mongo.CommandError{Message: "Please add a course title"}
	}
	if strings.TrimSpace(course.Description) == "" {
		return models.Course{}, mongo.CommandError{Message: "Please add a description"}
	}
	if course.Weeks <= 0 {
		return models.Course{}, mongo.CommandError{Message: "Please add number of weeks"}
	}
	if course.Tuition < 0 {
		return models.Course{}, mongo.CommandError{Message: "Please add a tuition cost"}
	}
	if !models.IsValidSkill(course.MinimumSkill) {
		return models.Course{}, mongo.CommandError{Message: "Minimum skill must be 'beginner', 'intermediate' or 'advanced'"}
	}
	if course.BootcampID.IsZero() {
		return models.Course{}, mongo.CommandError{Message: "Course must belong to a bootcamp"}
	}

	if _, err := s.c.InsertOne(ctx, course); err != nil {
		return models.Course{}, err
	}
	if err := s.RecomputeAverageCost(ctx, course.BootcampID); err != nil {
		return models.Course{}, err
	}
	return course, nil
}

// GetByID returns a course by its ID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Course, error) {
	var course models.Course
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&course)
	if err != nil {
		return models.Course{}, err
	}
	return course, nil
}

// Update modifies mutable fields, refreshes UpdatedAt, and recomputes the
// parent's average cost. The parent and owner references are immutable.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, mut models.Course) error {
	set := bson.M{}
	if strings.TrimSpace(mut.Title) != "" {
		set["title"] = mut.Title
	}
	if strings.TrimSpace(mut.Description) != "" {
		set["description"] = mut.Description
	}
	if mut.Weeks > 0 {
		set["weeks"] = mut.Weeks
	}
	if mut.Tuition > 0 {
		set["tuition"] = mut.Tuition
	}
	if mut.MinimumSkill != "" {
		if !models.IsValidSkill(mut.MinimumSkill) {
			return mongo.CommandError{Message: "Minimum skill must be 'beginner', 'intermediate' or 'advanced'"}
		}
		set["minimum_skill"] = mut.MinimumSkill
	}
	set["scholarship_available"] = mut.ScholarshipAvailable

	now := time.Now().UTC()
	set["updated_at"] = &now

	var current models.Course
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&current); err != nil {
		return err
	}
	if _, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set}); err != nil {
		return err
	}
	return s.RecomputeAverageCost(ctx, current.BootcampID)
}

// Delete removes a course and recomputes the parent's average cost.
// Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	var course models.Course
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&course); err != nil {
		if err == mongo.ErrNoDocuments {
			return 0, nil
		}
		return 0, err
	}
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	if err := s.RecomputeAverageCost(ctx, course.BootcampID); err != nil {
		return res.DeletedCount, err
	}
	return res.DeletedCount, nil
}

// FindByBootcamp returns all courses of one bootcamp, unpaginated.
func (s *Store) FindByBootcamp(ctx context.Context, bootcampID primitive.ObjectID) ([]models.Course, error) {
	return s.Find(ctx, bson.M{"bootcamp_id": bootcampID})
}

// Find returns courses matching the given filter with optional find options.
func (s *Store) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Course, error) {
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var courses []models.Course
	if err := cur.All(ctx, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

// Count returns the number of courses matching the filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}

// RecomputeAverageCost recalculates the mean tuition of all courses in the
// bootcamp and persists it on the parent document, rounded up to the nearest
// ten. When the bootcamp has no courses left the field is removed.
func (s *Store) RecomputeAverageCost(ctx context.Context, bootcampID primitive.ObjectID) error {
	metrics.AggregateRecomputes.Inc()

	pipe := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"bootcamp_id": bootcampID}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":          "$bootcamp_id",
			"average_cost": bson.M{"$avg": "$tuition"},
		}}},
	}

	cur, err := s.c.Aggregate(ctx, pipe)
	if err != nil {
		return err
	}
	defer cur.Close(ctx)

	if !cur.Next(ctx) {
		_, err := s.bootcamps.UpdateByID(ctx, bootcampID, bson.M{"$unset": bson.M{"average_cost": ""}})
		return err
	}

	var row struct {
		AverageCost float64 `bson:"average_cost"`
	}
	if err := cur.Decode(&row); err != nil {
		return err
	}

	cost := math.Ceil(row.AverageCost/10) * 10
	_, err = s.bootcamps.UpdateByID(ctx, bootcampID, bson.M{"$set": bson.M{"average_cost": cost}})
	return err
}
