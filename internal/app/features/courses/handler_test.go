package courses_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/campdir/internal/app/features/courses"
	"github.com/dalemusser/campdir/internal/domain/models"
	"github.com/dalemusser/campdir/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T, db *mongo.Database) *courses.Handler {
	t.Helper()
	return courses.NewHandler(db, zap.NewNop())
}

func courseBody(title string) models.Course {
	return models.Course{
		Title:        title,
		Description:  "desc",
		Weeks:        6,
		Tuition:      4000,
		MinimumSkill: models.SkillBeginner,
	}
}

func TestCreate_OwnerOfBootcamp(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	h := newTestHandler(t, db)
	fx := testutil.NewFixtures(t, db)

	owner := fx.CreatePublisher(ctx)
	b := fx.CreateBootcamp(ctx, "Course Camp", owner.ID)

	req := testutil.NewJSONRequest(t, "POST", "/api/v1/bootcamps/"+b.ID.Hex()+"/courses", courseBody("Go 101"))
	req = testutil.WithChiURLParam(req, "bootcampID", b.ID.Hex())
	req = testutil.WithUser(req, owner)
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status: got %d, body %s", rec.Code, rec.Body.String())
	}

	// The recompute after the insert sets the parent's average cost.
	got, err := h.Bootcamps.GetByID(ctx, b.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.AverageCost == nil || *got.AverageCost != 4000 {
		t.Errorf("average_cost: got %v, want 4000", got.AverageCost)
	}
}

func TestCreate_BootcampMissing(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	h := newTestHandler(t, db)
	fx := testutil.NewFixtures(t, db)

	publisher := fx.CreatePublisher(ctx)
	missing := primitive.NewObjectID()

	req := testutil.NewJSONRequest(t, "POST", "/api/v1/bootcamps/"+missing.Hex()+"/courses", courseBody("Ghost"))
	req = testutil.WithChiURLParam(req, "bootcampID", missing.Hex())
	req = testutil.WithUser(req, publisher)
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status: got %d, want 404", rec.Code)
	}
	var envelope testutil.Envelope
	testutil.DecodeBody(t, rec, &envelope)
	if envelope.Error != "No bootcamp with the id of "+missing.Hex() {
		t.Errorf("error: got %q", envelope.Error)
	}
}

func TestCreate_NonOwnerOfBootcamp(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	h := newTestHandler(t, db)
	fx := testutil.NewFixtures(t, db)

	owner := fx.CreatePublisher(ctx)
	intruder := fx.CreatePublisher(ctx)
	b := fx.CreateBootcamp(ctx, "Locked Camp", owner.ID)

	req := testutil.NewJSONRequest(t, "POST", "/api/v1/bootcamps/"+b.ID.Hex()+"/courses", courseBody("Sneaky"))
	req = testutil.WithChiURLParam(req, "bootcampID", b.ID.Hex())
	req = testutil.WithUser(req, intruder)
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status: got %d, want 401", rec.Code)
	}
	var envelope testutil.Envelope
	testutil.DecodeBody(t, rec, &envelope)
	want := "User " + intruder.ID.Hex() + " is not authorized to add a course to bootcamp " + b.ID.Hex()
	if envelope.Error != want {
		t.Errorf("error: got %q, want %q", envelope.Error, want)
	}
}

func TestList_Nested(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	h := newTestHandler(t, db)
	fx := testutil.NewFixtures(t, db)

	owner := fx.CreatePublisher(ctx)
	mine := fx.CreateBootcamp(ctx, "Nested Camp", owner.ID)
	other := fx.CreateBootcamp(ctx, "Elsewhere", primitive.NewObjectID())
	fx.CreateCourse(ctx, mine.ID, owner.ID, "A", 1000)
	fx.CreateCourse(ctx, mine.ID, owner.ID, "B", 2000)
	fx.CreateCourse(ctx, other.ID, owner.ID, "C", 3000)

	req := httptest.NewRequest("GET", "/api/v1/bootcamps/"+mine.ID.Hex()+"/courses", nil)
	req = testutil.WithChiURLParam(req, "bootcampID", mine.ID.Hex())
	rec := httptest.NewRecorder()
	h.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	var envelope testutil.Envelope
	testutil.DecodeBody(t, rec, &envelope)
	if envelope.Count == nil || *envelope.Count != 2 {
		t.Errorf("count: got %v, want 2", envelope.Count)
	}
}

func TestUpdate_NonOwner(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	h := newTestHandler(t, db)
	fx := testutil.NewFixtures(t, db)

	owner := fx.CreatePublisher(ctx)
	intruder := fx.CreatePublisher(ctx)
	b := fx.CreateBootcamp(ctx, "Patch Camp", owner.ID)
	course := fx.CreateCourse(ctx, b.ID, owner.ID, "Stable", 2500)

	req := testutil.NewJSONRequest(t, "PUT", "/api/v1/courses/"+course.ID.Hex(), models.Course{Title: "Hacked"})
	req = testutil.WithChiURLParam(req, "id", course.ID.Hex())
	req = testutil.WithUser(req, intruder)
	rec := httptest.NewRecorder()
	h.Update(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status: got %d, want 401", rec.Code)
	}
}

func TestDelete_MissingCourse(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	h := newTestHandler(t, db)
	fx := testutil.NewFixtures(t, db)

	admin := fx.CreateAdmin(ctx)
	missing := primitive.NewObjectID()

	req := httptest.NewRequest("DELETE", "/api/v1/courses/"+missing.Hex(), nil)
	req = testutil.WithChiURLParam(req, "id", missing.Hex())
	req = testutil.WithUser(req, admin)
	rec := httptest.NewRecorder()
	h.Delete(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status: got %d, want 404", rec.Code)
	}
	var envelope testutil.Envelope
	testutil.DecodeBody(t, rec, &envelope)
	if envelope.Error != "No course with the id of "+missing.Hex() {
		t.Errorf("error: got %q", envelope.Error)
	}
}
