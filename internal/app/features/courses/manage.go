package courses

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

// Create handles POST /bootcamps/{bootcampID}/courses. The caller must own
// the parent bootcamp or be an admin.
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

	if !authz.CanModify(r, bootcamp.UserID) {
		apierror.Write(w, h.Log, apierror.Unauthorized(
			"User %s is not authorized to add a course to bootcamp %s",
			userID.Hex(), bootcamp.ID.Hex()))
		return
	}

	var body models.Course
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		apierror.Write(w, h.Log, apierror.BadRequest("Invalid request body"))
		return
	}
	body.BootcampID = bootcamp.ID
	body.UserID = userID

	course, err := h.Store.Create(ctx, body)
	if err != nil {
		apierror.Write(w, h.Log, apierror.FromStore(err, notFound))
		return
	}

	apierror.WriteJSON(w, http.StatusCreated, apiquery.One(course))
}

// Update handles PUT /courses/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	_, userID, ok := authz.UserCtx(r)
	if !ok {
		apierror.Write(w, h.Log, apierror.Unauthorized("Not authorized to access this route"))
		return
	}

	idHex := chi.URLParam(r, "id")
	notFound := "No course with the id of " + idHex

	id, apiErr := apierror.ParseObjectID(idHex, notFound)
	if apiErr != nil {
		apierror.Write(w, h.Log, apiErr)
		return
	}

	course, err := h.Store.GetByID(ctx, id)
	if err != nil {
		apierror.Write(w, h.Log, apierror.FromStore(err, notFound))
		return
	}

	if !authz.CanModify(r, course.UserID) {
		apierror.Write(w, h.Log, apierror.Unauthorized(
			"User %s is not authorized to update course %s",
			userID.Hex(), course.ID.Hex()))
		return
	}

	var body models.Course
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

// Delete handles DELETE /courses/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	_, userID, ok := authz.UserCtx(r)
	if !ok {
		apierror.Write(w, h.Log, apierror.Unauthorized("Not authorized to access this route"))
		return
	}

	idHex := chi.URLParam(r, "id")
	notFound := "No course with the id of " + idHex

	id, apiErr := apierror.ParseObjectID(idHex, notFound)
	if apiErr != nil {
		apierror.Write(w, h.Log, apiErr)
		return
	}

	course, err := h.Store.GetByID(ctx, id)
	if err != nil {
		apierror.Write(w, h.Log, apierror.FromStore(err, notFound))
		return
	}

	if !authz.CanModify(r, course.UserID) {
		apierror.Write(w, h.Log, apierror.Unauthorized(
			"User %s is not authorized to delete course %s",
			userID.Hex(), course.ID.Hex()))
		return
	}

	if _, err := h.Store.Delete(ctx, id); err != nil {
		apierror.Write(w, h.Log, apierror.FromStore(err, notFound))
		return
	}

	apierror.WriteJSON(w, http.StatusOK, apiquery.One(struct{}{}))
}
