// Package apierror defines the typed application error used by every handler
// and the single translation point from errors to JSON error envelopes.
//
// Handlers fail by returning an *Error (or any error, which falls through to
// a generic 500). Write emits {"success":false,"error":"..."} with the error's
// status code; unrecognized internal failures are logged and reported as a
// plain "Server Error" so internal detail never reaches clients.
package apierror

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	bootcampstore "github.com/dalemusser/campdir/internal/app/store/bootcamps"
	reviewstore "github.com/dalemusser/campdir/internal/app/store/reviews"
	userstore "github.com/dalemusser/campdir/internal/app/store/users"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Error is an application error carrying an HTTP status code.
type Error struct {
	Message string
	Status  int
	Err     error // underlying cause, logged but never sent to clients
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// New returns an *Error with an explicit status code.
func New(status int, format string, args ...any) *Error {
	return &Error{Message: fmt.Sprintf(format, args...), Status: status}
}

// NotFound returns a 404 error.
func NotFound(format string, args ...any) *Error {
	return New(http.StatusNotFound, format, args...)
}

// BadRequest returns a 400 error.
func BadRequest(format string, args ...any) *Error {
	return New(http.StatusBadRequest, format, args...)
}

// Unauthorized returns a 401 error.
func Unauthorized(format string, args ...any) *Error {
	return New(http.StatusUnauthorized, format, args...)
}

// Forbidden returns a 403 error.
func Forbidden(format string, args ...any) *Error {
	return New(http.StatusForbidden, format, args...)
}

// Internal wraps an unexpected failure as a 500 with a client-safe message.
func Internal(err error, message string) *Error {
	return &Error{Message: message, Status: http.StatusInternalServerError, Err: err}
}

// FromStore translates store-level failures into typed errors:
//
//   - mongo.ErrNoDocuments        -> 404 notFoundMsg
//   - duplicate-key write errors,
//     raw or as a store sentinel  -> 400 "Duplicate field value entered"
//   - mongo.CommandError with no
//     server code (store-side
//     validation)                 -> 400 with the validation message
//
// Anything else becomes a generic 500.
func FromStore(err error, notFoundMsg string) *Error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return NotFound("%s", notFoundMsg)
	}
	if wafflemongo.IsDup(err) || isDupSentinel(err) {
		return BadRequest("Duplicate field value entered")
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == 0 {
		return BadRequest("%s", ce.Message)
	}
	return Internal(err, "Server Error")
}

// isDupSentinel matches the uniqueness sentinels the stores return in place
// of the raw Mongo duplicate-key error.
func isDupSentinel(err error) bool {
	return errors.Is(err, bootcampstore.ErrDuplicateName) ||
		errors.Is(err, userstore.ErrDuplicateEmail) ||
		errors.Is(err, reviewstore.ErrDuplicateReview)
}

// ParseObjectID converts a hex id from the URL into an ObjectID. A malformed
// id is reported the same way as a missing document (404), matching the
// store's cast-failure behavior.
func ParseObjectID(hex, notFoundMsg string) (primitive.ObjectID, *Error) {
	oid, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, NotFound("%s", notFoundMsg)
	}
	return oid, nil
}

// envelope is the uniform JSON error body.
type envelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// Write emits err as a JSON error envelope. Errors that are not *Error, and
// *Error values wrapping an internal cause, are logged before the generic
// message is sent.
func Write(w http.ResponseWriter, logger *zap.Logger, err error) {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		apiErr = Internal(err, "Server Error")
	}
	if apiErr.Err != nil && logger != nil {
		logger.Error("request failed", zap.Int("status", apiErr.Status), zap.Error(apiErr.Err))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiErr.Status)
	_ = json.NewEncoder(w).Encode(envelope{Success: false, Error: apiErr.Message})
}

// WriteJSON emits a success payload with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
