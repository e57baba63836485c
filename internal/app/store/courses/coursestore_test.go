package coursestore_test

import (
	"context"
	"errors"
	"testing"

	bootcampstore "github.com/dalemusser/campdir/internal/app/store/bootcamps"
	coursestore "github.com/dalemusser/campdir/internal/app/store/courses"
	"github.com/dalemusser/campdir/internal/domain/models"
	"github.com/dalemusser/campdir/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func newCourse(bootcampID, ownerID primitive.ObjectID, title string, tuition float64) models.Course {
	return models.Course{
		UserID:       ownerID,
		BootcampID:   bootcampID,
		Title:        title,
		Description:  "desc",
		Weeks:        8,
		Tuition:      tuition,
		MinimumSkill: models.SkillBeginner,
	}
}

func averageCost(t *testing.T, ctx context.Context, db *mongo.Database, id primitive.ObjectID) *float64 {
	t.Helper()
	b, err := bootcampstore.New(db).GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	return b.AverageCost
}

func TestCreate_Validation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := coursestore.New(db)

	bad := newCourse(primitive.NewObjectID(), primitive.NewObjectID(), "C", 100)
	bad.MinimumSkill = "expert"

	_, err := store.Create(ctx, bad)
	var ce mongo.CommandError
	if !errors.As(err, &ce) {
		t.Errorf("invalid skill: got %v, want CommandError", err)
	}

	bad = newCourse(primitive.NilObjectID, primitive.NewObjectID(), "C", 100)
	if _, err := store.Create(ctx, bad); !errors.As(err, &ce) {
		t.Errorf("missing bootcamp: got %v, want CommandError", err)
	}
}

func TestCreate_RecomputesAverageCost(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := coursestore.New(db)
	fx := testutil.NewFixtures(t, db)

	owner := fx.CreatePublisher(ctx)
	b := fx.CreateBootcamp(ctx, "Avg Camp", owner.ID)

	if _, err := store.Create(ctx, newCourse(b.ID, owner.ID, "First", 8000)); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := store.Create(ctx, newCourse(b.ID, owner.ID, "Second", 9001)); err != nil {
		t.Fatalf("Create: %v", err)
	}

	// mean 8500.5, rounded up to the nearest ten.
	got := averageCost(t, ctx, db, b.ID)
	if got == nil || *got != 8510 {
		t.Errorf("average_cost: got %v, want 8510", got)
	}
}

func TestDelete_RecomputesAndUnsets(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := coursestore.New(db)
	fx := testutil.NewFixtures(t, db)

	owner := fx.CreatePublisher(ctx)
	b := fx.CreateBootcamp(ctx, "Unset Camp", owner.ID)

	first, err := store.Create(ctx, newCourse(b.ID, owner.ID, "First", 4000))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	second, err := store.Create(ctx, newCourse(b.ID, owner.ID, "Second", 6000))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := store.Delete(ctx, second.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	got := averageCost(t, ctx, db, b.ID)
	if got == nil || *got != 4000 {
		t.Errorf("average_cost after one delete: got %v, want 4000", got)
	}

	if _, err := store.Delete(ctx, first.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if got := averageCost(t, ctx, db, b.ID); got != nil {
		t.Errorf("average_cost after last delete: got %v, want unset", *got)
	}
}

func TestDelete_MissingCourse(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := coursestore.New(db)

	n, err := store.Delete(ctx, primitive.NewObjectID())
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if n != 0 {
		t.Errorf("deleted count: got %d, want 0", n)
	}
}

func TestUpdate_RecomputesAverageCost(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := coursestore.New(db)
	fx := testutil.NewFixtures(t, db)

	owner := fx.CreatePublisher(ctx)
	b := fx.CreateBootcamp(ctx, "Update Camp", owner.ID)

	course, err := store.Create(ctx, newCourse(b.ID, owner.ID, "Only", 5000))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := store.Update(ctx, course.ID, models.Course{Tuition: 7500}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got := averageCost(t, ctx, db, b.ID)
	if got == nil || *got != 7500 {
		t.Errorf("average_cost: got %v, want 7500", got)
	}
}

func TestFindByBootcamp(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := coursestore.New(db)
	fx := testutil.NewFixtures(t, db)

	owner := fx.CreatePublisher(ctx)
	mine := fx.CreateBootcamp(ctx, "Mine", owner.ID)
	other := fx.CreateBootcamp(ctx, "Other", primitive.NewObjectID())

	fx.CreateCourse(ctx, mine.ID, owner.ID, "A", 1000)
	fx.CreateCourse(ctx, mine.ID, owner.ID, "B", 2000)
	fx.CreateCourse(ctx, other.ID, owner.ID, "C", 3000)

	courses, err := store.FindByBootcamp(ctx, mine.ID)
	if err != nil {
		t.Fatalf("FindByBootcamp: %v", err)
	}
	if len(courses) != 2 {
		t.Errorf("courses: got %d, want 2", len(courses))
	}
}
