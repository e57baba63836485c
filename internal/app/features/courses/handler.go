// Package courses serves the course CRUD endpoints, both the flat /courses
// routes and the routes nested under a bootcamp.
package courses

import (
	"context"
	"net/http"

	bootcampstore "github.com/dalemusser/campdir/internal/app/store/bootcamps"
	coursestore "github.com/dalemusser/campdir/internal/app/store/courses"
	"github.com/dalemusser/campdir/internal/app/system/apierror"
	"github.com/dalemusser/campdir/internal/app/system/apiquery"
	"github.com/dalemusser/campdir/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler holds the course feature's dependencies. The bootcamp store is
// needed to resolve the parent on nested creates.
type Handler struct {
	Store     *coursestore.Store
	Bootcamps *bootcampstore.Store
	Log       *zap.Logger
}

// NewHandler constructs a courses Handler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Store:     coursestore.New(db),
		Bootcamps: bootcampstore.New(db),
		Log:       logger,
	}
}

// List handles GET /courses (query-builder driven) and
// GET /bootcamps/{bootcampID}/courses (all children, unfiltered and
// unpaginated).
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if bootcampHex := chi.URLParam(r, "bootcampID"); bootcampHex != "" {
		notFound := "No bootcamp with the id of " + bootcampHex
		bootcampID, apiErr := apierror.ParseObjectID(bootcampHex, notFound)
		if apiErr != nil {
			apierror.Write(w, h.Log, apiErr)
			return
		}
		courses, err := h.Store.FindByBootcamp(ctx, bootcampID)
		if err != nil {
			apierror.Write(w, h.Log, apierror.FromStore(err, notFound))
			return
		}
		apierror.WriteJSON(w, http.StatusOK, apiquery.List(courses, len(courses), nil))
		return
	}

	params := apiquery.Parse(r.URL.Query())

	total, err := h.Store.Count(ctx, params.Filter)
	if err != nil {
		apierror.Write(w, h.Log, apierror.FromStore(err, "Courses not found"))
		return
	}
	courses, err := h.Store.Find(ctx, params.Filter, params.FindOptions())
	if err != nil {
		apierror.Write(w, h.Log, apierror.FromStore(err, "Courses not found"))
		return
	}

	apierror.WriteJSON(w, http.StatusOK,
		apiquery.List(courses, len(courses), params.Paginate(total)))
}

// Get handles GET /courses/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

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

	apierror.WriteJSON(w, http.StatusOK, apiquery.One(course))
}
