// internal/app/system/authz/authz.go
package authz

import (
	"net/http"
	"strings"

	"github.com/dalemusser/campdir/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserCtx returns the principal's role (lowercased), Mongo ObjectID, and a
// found flag. If no principal is present in context or the user ID is
// malformed, it returns "", NilObjectID, false, so ok=true always means a
// valid, authenticated principal with a valid ObjectID.
func UserCtx(r *http.Request) (role string, userID primitive.ObjectID, ok bool) {
	p, ok := auth.CurrentUser(r)
	if !ok {
		return "", primitive.NilObjectID, false
	}
	return strings.ToLower(p.Role), p.ID, true
}

// CanModify is the single ownership predicate for every mutating handler:
// true iff the principal owns the resource or is an admin. Keep all
// owner-or-admin decisions flowing through here.
func CanModify(r *http.Request, ownerID primitive.ObjectID) bool {
	role, userID, ok := UserCtx(r)
	if !ok {
		return false
	}
	return userID == ownerID || role == "admin"
}

// IsAdmin reports whether the current request's principal is an admin.
func IsAdmin(r *http.Request) bool {
	role, _, ok := UserCtx(r)
	return ok && role == "admin"
}
