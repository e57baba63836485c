package reviews

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
)

// Create handles POST /bootcamps/{bootcampID}/reviews. Any signed-in user
// (or admin) may review a bootcamp, but only once; the unique index surfaces
// a second attempt as a duplicate error.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	_, userID, ok := authz.UserCtx(r)
	if !ok {
		apierror.Write(w, h.Log, apierror.Unauthorized("Not authorized to access this route"))
		return
	}

	bootcampHex := chi.URLParam(r, "bootcampID")
	notFound := "No bootcamp with the id of " + bootcampHex

	bootcampID, apiErr := apierror.ParseObjectID(bootcampHex, notFound)
	if apiErr != nil {
		apierror.Write(w, h.Log, apiErr)
		return
	}

	bootcamp, err := h.Bootcamps.GetByID(ctx, bootcampID)
	if err != nil {
		apierror.Write(w, h.Log, apierror.FromStore(err, notFound))
		return
	}

	var body models.Review
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		apierror.Write(w, h.Log, apierror.BadRequest("Invalid request body"))
		return
	}
	body.BootcampID = bootcamp.ID
	body.UserID = userID

	review, err := h.Store.Create(ctx, body)
	if err != nil {
		apierror.Write(w, h.Log, apierror.FromStore(err, notFound))
		return
	}

	apierror.WriteJSON(w, http.StatusCreated, apiquery.One(review))
}

// Update handles PUT /reviews/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	idHex := chi.URLParam(r, "id")
	notFound := "No review with the id of " + idHex

	id, apiErr := apierror.ParseObjectID(idHex, notFound)
	if apiErr != nil {
		apierror.Write(w, h.Log, apiErr)
		return
	}

	review, err := h.Store.GetByID(ctx, id)
	if err != nil {
		apierror.Write(w, h.Log, apierror.FromStore(err, notFound))
		return
	}

	if !authz.CanModify(r, review.UserID) {
		apierror.Write(w, h.Log, apierror.Unauthorized("Not authorized to update review"))
		return
	}

	var body models.Review
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

// Delete handles DELETE /reviews/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	idHex := chi.URLParam(r, "id")
	notFound := "No review with the id of " + idHex

	id, apiErr := apierror.ParseObjectID(idHex, notFound)
	if apiErr != nil {
		apierror.Write(w, h.Log, apiErr)
		return
	}

	review, err := h.Store.GetByID(ctx, id)
	if err != nil {
		apierror.Write(w, h.Log, apierror.FromStore(err, notFound))
		return
	}

	if !authz.CanModify(r, review.UserID) {
		apierror.Write(w, h.Log, apierror.Unauthorized("Not authorized to update review"))
		return
	}

	if _, err := h.Store.Delete(ctx, id); err != nil {
		apierror.Write(w, h.Log, apierror.FromStore(err, notFound))
		return
	}

	apierror.WriteJSON(w, http.StatusOK, apiquery.One(struct{}{}))
}
