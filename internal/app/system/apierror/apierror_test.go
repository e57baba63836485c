package apierror_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	bootcampstore "github.com/dalemusser/campdir/internal/app/store/bootcamps"
	reviewstore "github.com/dalemusser/campdir/internal/app/store/reviews"
	userstore "github.com/dalemusser/campdir/internal/app/store/users"
	"github.com/dalemusser/campdir/internal/app/system/apierror"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func TestFromStore_NoDocuments(t *testing.T) {
	apiErr := apierror.FromStore(mongo.ErrNoDocuments, "Bootcamp not found with id of abc")

	if apiErr.Status != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", apiErr.Status)
	}
	if apiErr.Message != "Bootcamp not found with id of abc" {
		t.Errorf("message: got %q", apiErr.Message)
	}
}

func TestFromStore_WrappedNoDocuments(t *testing.T) {
	wrapped := errors.Join(errors.New("lookup failed"), mongo.ErrNoDocuments)

	if apiErr := apierror.FromStore(wrapped, "gone"); apiErr.Status != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", apiErr.Status)
	}
}

func TestFromStore_DuplicateKey(t *testing.T) {
	dup := mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}

	apiErr := apierror.FromStore(dup, "unused")
	if apiErr.Status != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", apiErr.Status)
	}
	if apiErr.Message != "Duplicate field value entered" {
		t.Errorf("message: got %q", apiErr.Message)
	}
}

func TestFromStore_DuplicateSentinels(t *testing.T) {
	sentinels := map[string]error{
		"bootcamp name": bootcampstore.ErrDuplicateName,
		"user email":    userstore.ErrDuplicateEmail,
		"review":        reviewstore.ErrDuplicateReview,
		"wrapped email": fmt.Errorf("creating account: %w", userstore.ErrDuplicateEmail),
	}
	for name, err := range sentinels {
		apiErr := apierror.FromStore(err, "unused")
		if apiErr.Status != http.StatusBadRequest {
			t.Errorf("%s: status %d, want 400", name, apiErr.Status)
		}
		if apiErr.Message != "Duplicate field value entered" {
			t.Errorf("%s: message %q", name, apiErr.Message)
		}
	}
}

func TestFromStore_ValidationError(t *testing.T) {
	apiErr := apierror.FromStore(mongo.CommandError{Message: "Please add a name"}, "unused")

	if apiErr.Status != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", apiErr.Status)
	}
	if apiErr.Message != "Please add a name" {
		t.Errorf("message: got %q", apiErr.Message)
	}
}

func TestFromStore_Unknown(t *testing.T) {
	apiErr := apierror.FromStore(errors.New("socket closed"), "unused")

	if apiErr.Status != http.StatusInternalServerError {
		t.Errorf("status: got %d, want 500", apiErr.Status)
	}
	if apiErr.Message != "Server Error" {
		t.Errorf("message: got %q, internal detail must not leak", apiErr.Message)
	}
}

func TestParseObjectID(t *testing.T) {
	if _, apiErr := apierror.ParseObjectID("507f1f77bcf86cd799439011", "nf"); apiErr != nil {
		t.Errorf("valid hex: got error %v", apiErr)
	}

	_, apiErr := apierror.ParseObjectID("not-a-hex-id", "Bootcamp not found with id of not-a-hex-id")
	if apiErr == nil {
		t.Fatal("malformed hex: expected error")
	}
	if apiErr.Status != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", apiErr.Status)
	}
}

func TestWrite_Envelope(t *testing.T) {
	rec := httptest.NewRecorder()
	apierror.Write(rec, zap.NewNop(), apierror.NotFound("No review found with the id of x"))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", rec.Code)
	}

	var body struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad body %q: %v", rec.Body.String(), err)
	}
	if body.Success {
		t.Error("success: got true, want false")
	}
	if body.Error != "No review found with the id of x" {
		t.Errorf("error: got %q", body.Error)
	}
}

func TestWrite_UntypedErrorBecomes500(t *testing.T) {
	rec := httptest.NewRecorder()
	apierror.Write(rec, zap.NewNop(), errors.New("connection reset"))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status: got %d, want 500", rec.Code)
	}

	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if body.Error != "Server Error" {
		t.Errorf("error: got %q, want generic message", body.Error)
	}
}
