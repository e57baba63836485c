// Package users serves the admin-only user management endpoints under
// /auth/users. Role gating happens in the router; the handlers themselves
// perform no ownership checks.
package users

import (
	"context"
	"encoding/json"
	"net/http"

	userstore "github.com/dalemusser/campdir/internal/app/store/users"
	"github.com/dalemusser/campdir/internal/app/system/apierror"
	"github.com/dalemusser/campdir/internal/app/system/apiquery"
	"github.com/dalemusser/campdir/internal/app/system/timeouts"
	"github.com/dalemusser/campdir/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	Store *userstore.Store
	Log   *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{Store: userstore.New(db), Log: logger}
}

// userBody is the create/update request shape. The plaintext password rides
// alongside the model fields and never lands in the document as-is.
type userBody struct {
	models.User
	Password string `json:"password"`
}

// List handles GET /auth/users with the full query grammar.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	params := apiquery.Parse(r.URL.Query())

	total, err := h.Store.Count(ctx, params.Filter)
	if err != nil {
		apierror.Write(w, h.Log, apierror.FromStore(err, "Users not found"))
		return
	}
	users, err := h.Store.Find(ctx, params.Filter, params.FindOptions())
	if err != nil {
		apierror.Write(w, h.Log, apierror.FromStore(err, "Users not found"))
		return
	}

	apierror.WriteJSON(w, http.StatusOK,
		apiquery.List(users, len(users), params.Paginate(total)))
}

// Get handles GET /auth/users/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	idHex := chi.URLParam(r, "id")
	notFound := "User not found with id of " + idHex

	id, apiErr := apierror.ParseObjectID(idHex, notFound)
	if apiErr != nil {
		apierror.Write(w, h.Log, apiErr)
		return
	}

	user, err := h.Store.GetByID(ctx, id)
	if err != nil {
		apierror.Write(w, h.Log, apierror.FromStore(err, notFound))
		return
	}

	apierror.WriteJSON(w, http.StatusOK, apiquery.One(user))
}

// Create handles POST /auth/users.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var body userBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		apierror.Write(w, h.Log, apierror.BadRequest("Invalid request body"))
		return
	}

	user, err := h.Store.Create(ctx, body.User, body.Password)
	if err != nil {
		apierror.Write(w, h.Log, apierror.FromStore(err, "User not found"))
		return
	}

	apierror.WriteJSON(w, http.StatusCreated, apiquery.One(user))
}

// Update handles PUT /auth/users/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	idHex := chi.URLParam(r, "id")
	notFound := "User not found with id of " + idHex

	id, apiErr := apierror.ParseObjectID(idHex, notFound)
	if apiErr != nil {
		apierror.Write(w, h.Log, apiErr)
		return
	}

	var body userBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		apierror.Write(w, h.Log, apierror.BadRequest("Invalid request body"))
		return
	}

	if err := h.Store.Update(ctx, id, body.User, body.Password); err != nil {
		apierror.Write(w, h.Log, apierror.FromStore(err, notFound))
		return
	}

	updated, err := h.Store.GetByID(ctx, id)
	if err != nil {
		apierror.Write(w, h.Log, apierror.FromStore(err, notFound))
		return
	}

	apierror.WriteJSON(w, http.StatusOK, apiquery.One(updated))
}

// Delete handles DELETE /auth/users/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	idHex := chi.URLParam(r, "id")
	notFound := "User not found with id of " + idHex

	id, apiErr := apierror.ParseObjectID(idHex, notFound)
	if apiErr != nil {
		apierror.Write(w, h.Log, apiErr)
		return
	}

	if _, err := h.Store.Delete(ctx, id); err != nil {
		apierror.Write(w, h.Log, apierror.FromStore(err, notFound))
		return
	}

	apierror.WriteJSON(w, http.StatusOK, apiquery.One(struct{}{}))
}
