package bootcamps

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dalemusser/campdir/internal/app/system/apierror"
	"github.com/dalemusser/campdir/internal/app/system/apiquery"
	"github.com/dalemusser/campdir/internal/app/system/authz"
	"github.com/dalemusser/campdir/internal/app/system/timeouts"
	"github.com/dalemusser/campdir/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
)

// Create handles POST /bootcamps. A non-admin user may publish only one
// bootcamp; the check runs before the insert so no document is created when
// the rule is violated.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	role, userID, ok := authz.UserCtx(r)
	if !ok {
		apierror.Write(w, h.Log, apierror.Unauthorized("Not authorized to access this route"))
		return
	}

	var body models.Bootcamp
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		apierror.Write(w, h.Log, apierror.BadRequest("Invalid request body"))
		return
	}
	body.UserID = userID

	_, err := h.Store.FindOneByOwner(ctx, userID)
	if err == nil && role != models.RoleAdmin {
		apierror.Write(w, h.Log, apierror.BadRequest(
			"The user with ID %s has already published a bootcamp", userID.Hex()))
		return
	}
	if err != nil && err != mongo.ErrNoDocuments {
		apierror.Write(w, h.Log, apierror.FromStore(err, ""))
		return
	}

	created, err := h.Store.Create(ctx, body)
	if err != nil {
		apierror.Write(w, h.Log, apierror.FromStore(err, ""))
		return
	}

	apierror.WriteJSON(w, http.StatusCreated, apiquery.One(created))
}

// Update handles PUT /bootcamps/{id}. The document is loaded first so the
// ownership check runs against the stored owner, not request input.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	idHex := chi.URLParam(r, "bootcampID")
	notFound := "Bootcamp not found with id of " + idHex

	id, apiErr := apierror.ParseObjectID(idHex, notFound)
	if apiErr != nil {
		apierror.Write(w, h.Log, apiErr)
		return
	}

	bootcamp, err := h.Store.GetByID(ctx, id)
	if err != nil {
		apierror.Write(w, h.Log, apierror.FromStore(err, notFound))
		return
	}

	if !authz.CanModify(r, bootcamp.UserID) {
		_, userID, _ := authz.UserCtx(r)
		apierror.Write(w, h.Log, apierror.Unauthorized(
			"User %s is not authorized to update this bootcamp", userID.Hex()))
		return
	}

	var body models.Bootcamp
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		apierror.Write(w, h.Log, apierror.BadRequest("Invalid request body"))
		return
	}

	if err := h.Store.Update(ctx, id, body); err != nil {
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

// Delete handles DELETE /bootcamps/{id}. Courses and reviews of the deleted
// bootcamp are intentionally orphaned, not cascade-deleted.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	idHex := chi.URLParam(r, "bootcampID")
	notFound := "Bootcamp not found with id of " + idHex

	id, apiErr := apierror.ParseObjectID(idHex, notFound)
	if apiErr != nil {
		apierror.Write(w, h.Log, apiErr)
		return
	}

	bootcamp, err := h.Store.GetByID(ctx, id)
	if err != nil {
		apierror.Write(w, h.Log, apierror.FromStore(err, notFound))
		return
	}

	if !authz.CanModify(r, bootcamp.UserID) {
		_, userID, _ := authz.UserCtx(r)
		apierror.Write(w, h.Log, apierror.Unauthorized(
			"User %s is not authorized to delete this bootcamp", userID.Hex()))
		return
	}

	if _, err := h.Store.Delete(ctx, id); err != nil {
		apierror.Write(w, h.Log, apierror.FromStore(err, notFound))
		return
	}

	apierror.WriteJSON(w, http.StatusOK, apiquery.One(struct{}{}))
}
