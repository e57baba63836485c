package bootcampstore_test

import (
	"errors"
	"testing"

	bootcampstore "github.com/dalemusser/campdir/internal/app/store/bootcamps"
	"github.com/dalemusser/campdir/internal/domain/models"
	"github.com/dalemusser/campdir/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Devworks Bootcamp", "devworks-bootcamp"},
		{"ModernTech", "moderntech"},
		{"  UX & UI School  ", "ux-ui-school"},
		{"Already-Slugged", "already-slugged"},
		{"Co.de Camp 101", "co-de-camp-101"},
	}
	for _, tc := range tests {
		if got := bootcampstore.Slugify(tc.in); got != tc.want {
			t.Errorf("Slugify(%q): got %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCreate_DefaultsAndSlug(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := bootcampstore.New(db)

	rating := 9.5
	created, err := store.Create(ctx, models.Bootcamp{
		UserID:        primitive.NewObjectID(),
		Name:          "Devworks Bootcamp",
		Description:   "Learn to code",
		Careers:       []string{"Web Development"},
		AverageRating: &rating, // must be stripped
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if created.Slug != "devworks-bootcamp" {
		t.Errorf("slug: got %q", created.Slug)
	}
	if created.Photo != bootcampstore.DefaultPhoto {
		t.Errorf("photo: got %q, want default", created.Photo)
	}
	if created.AverageRating != nil || created.AverageCost != nil {
		t.Error("derived aggregates must not be accepted on insert")
	}
	if created.CreatedAt.IsZero() {
		t.Error("created_at not set")
	}
}

func TestCreate_Validation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := bootcampstore.New(db)

	_, err := store.Create(ctx, models.Bootcamp{UserID: primitive.NewObjectID(), Description: "x"})
	var ce mongo.CommandError
	if !errors.As(err, &ce) || ce.Message != "Please add a name" {
		t.Errorf("missing name: got %v", err)
	}

	_, err = store.Create(ctx, models.Bootcamp{
		UserID:      primitive.NewObjectID(),
		Name:        "Bad Careers Camp",
		Description: "x",
		Careers:     []string{"Basket Weaving"},
	})
	if !errors.As(err, &ce) {
		t.Errorf("invalid career: got %v", err)
	}
}

func TestCreate_DuplicateName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := bootcampstore.New(db)

	b := models.Bootcamp{
		UserID:      primitive.NewObjectID(),
		Name:        "Devworks Bootcamp",
		Description: "first",
	}
	if _, err := store.Create(ctx, b); err != nil {
		t.Fatalf("first Create: %v", err)
	}

	b.UserID = primitive.NewObjectID()
	if _, err := store.Create(ctx, b); !errors.Is(err, bootcampstore.ErrDuplicateName) {
		t.Errorf("second Create: got %v, want ErrDuplicateName", err)
	}
}

func TestFindOneByOwner(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := bootcampstore.New(db)
	fx := testutil.NewFixtures(t, db)

	owner := fx.CreatePublisher(ctx)
	fx.CreateBootcamp(ctx, "Owned Camp", owner.ID)

	found, err := store.FindOneByOwner(ctx, owner.ID)
	if err != nil {
		t.Fatalf("FindOneByOwner: %v", err)
	}
	if found.Name != "Owned Camp" {
		t.Errorf("name: got %q", found.Name)
	}

	_, err = store.FindOneByOwner(ctx, primitive.NewObjectID())
	if !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("no bootcamp: got %v, want ErrNoDocuments", err)
	}
}

func TestUpdate_IgnoresOwnerAndAggregates(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := bootcampstore.New(db)
	fx := testutil.NewFixtures(t, db)

	owner := fx.CreatePublisher(ctx)
	b := fx.CreateBootcamp(ctx, "Original Camp", owner.ID)

	cost := 1234.0
	err := store.Update(ctx, b.ID, models.Bootcamp{
		Name:        "Renamed Camp",
		UserID:      primitive.NewObjectID(),
		AverageCost: &cost,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := store.GetByID(ctx, b.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Name != "Renamed Camp" || got.Slug != "renamed-camp" {
		t.Errorf("name/slug: got %q/%q", got.Name, got.Slug)
	}
	if got.UserID != owner.ID {
		t.Error("owner must never change on update")
	}
	if got.AverageCost != nil {
		t.Error("aggregates must never be set through Update")
	}
}

func TestFindWithinRadius(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := bootcampstore.New(db)
	fx := testutil.NewFixtures(t, db)

	owner := fx.CreatePublisher(ctx)
	boston := fx.CreateBootcamp(ctx, "Boston Camp", owner.ID) // fixture is in Boston

	// ~100km around Boston catches the fixture; the same cap around LA does not.
	const radius = 100.0 / 6378.0
	near, err := store.FindWithinRadius(ctx, -71.104028, 42.350846, radius)
	if err != nil {
		t.Fatalf("FindWithinRadius: %v", err)
	}
	if len(near) != 1 || near[0].ID != boston.ID {
		t.Errorf("near Boston: got %d results", len(near))
	}

	far, err := store.FindWithinRadius(ctx, -118.243683, 34.052235, radius)
	if err != nil {
		t.Fatalf("FindWithinRadius: %v", err)
	}
	if len(far) != 0 {
		t.Errorf("near LA: got %d results, want 0", len(far))
	}
}

func TestDelete_LeavesChildren(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := bootcampstore.New(db)
	fx := testutil.NewFixtures(t, db)

	owner := fx.CreatePublisher(ctx)
	b := fx.CreateBootcamp(ctx, "Doomed Camp", owner.ID)
	fx.CreateCourse(ctx, b.ID, owner.ID, "Orphan Course", 5000)

	deleted, err := store.Delete(ctx, b.ID)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if deleted != 1 {
		t.Errorf("deleted count: got %d", deleted)
	}

	n, err := db.Collection("courses").CountDocuments(ctx, bson.M{"bootcamp_id": b.ID})
	if err != nil {
		t.Fatalf("count courses: %v", err)
	}
	if n != 1 {
		t.Errorf("courses after bootcamp delete: got %d, want 1 (no cascade)", n)
	}
}
