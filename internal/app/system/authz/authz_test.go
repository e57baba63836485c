package authz_test

import (
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/campdir/internal/app/system/auth"
	"github.com/dalemusser/campdir/internal/app/system/authz"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestUserCtx(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)

	if _, _, ok := authz.UserCtx(req); ok {
		t.Error("anonymous request: ok should be false")
	}

	id := primitive.NewObjectID()
	req = auth.WithTestUser(req, &auth.Principal{ID: id, Role: "Publisher"})

	role, userID, ok := authz.UserCtx(req)
	if !ok {
		t.Fatal("ok should be true")
	}
	if role != "publisher" {
		t.Errorf("role: got %q, want lowercased publisher", role)
	}
	if userID != id {
		t.Errorf("userID: got %v, want %v", userID, id)
	}
}

func TestCanModify(t *testing.T) {
	owner := primitive.NewObjectID()
	stranger := primitive.NewObjectID()

	tests := []struct {
		name string
		role string
		as   primitive.ObjectID
		want bool
	}{
		{"owner", "publisher", owner, true},
		{"admin non-owner", "admin", stranger, true},
		{"non-owner", "publisher", stranger, false},
		{"plain user non-owner", "user", stranger, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := auth.WithTestUser(httptest.NewRequest("GET", "/", nil),
				&auth.Principal{ID: tc.as, Role: tc.role})
			if got := authz.CanModify(req, owner); got != tc.want {
				t.Errorf("CanModify: got %v, want %v", got, tc.want)
			}
		})
	}

	if authz.CanModify(httptest.NewRequest("GET", "/", nil), owner) {
		t.Error("anonymous request must never modify")
	}
}

func TestIsAdmin(t *testing.T) {
	req := auth.WithTestUser(httptest.NewRequest("GET", "/", nil),
		&auth.Principal{ID: primitive.NewObjectID(), Role: "admin"})
	if !authz.IsAdmin(req) {
		t.Error("admin principal: got false")
	}

	req = auth.WithTestUser(httptest.NewRequest("GET", "/", nil),
		&auth.Principal{ID: primitive.NewObjectID(), Role: "user"})
	if authz.IsAdmin(req) {
		t.Error("user principal: got true")
	}

	if authz.IsAdmin(httptest.NewRequest("GET", "/", nil)) {
		t.Error("anonymous: got true")
	}
}
