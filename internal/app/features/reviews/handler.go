// Package reviews serves the review endpoints, both the flat /reviews routes
// and the routes nested under a bootcamp.
package reviews

import (
	"context"
	"net/http"

	bootcampstore "github.com/dalemusser/campdir/internal/app/store/bootcamps"
	reviewstore "github.com/dalemusser/campdir/internal/app/store/reviews"
	"github.com/dalemusser/campdir/internal/app/system/apierror"
	"github.com/dalemusser/campdir/internal/app/system/apiquery"
	"github.com/dalemusser/campdir/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler holds the review feature's dependencies.
type Handler struct {
	Store     *reviewstore.Store
	Bootcamps *bootcampstore.Store
	Log       *zap.Logger
}

// NewHandler constructs a reviews Handler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Store:     reviewstore.New(db),
		Bootcamps: bootcampstore.New(db),
		Log:       logger,
	}
}

// List handles GET /reviews (query-builder driven) and
// GET /bootcamps/{bootcampID}/reviews (all children, unfiltered and
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
		reviews, err := h.Store.FindByBootcamp(ctx, bootcampID)
		if err != nil {
			apierror.Write(w, h.Log, apierror.FromStore(err, notFound))
			return
		}
		apierror.WriteJSON(w, http.StatusOK, apiquery.List(reviews, len(reviews), nil))
		return
	}

	params := apiquery.Parse(r.URL.Query())

	total, err := h.Store.Count(ctx, params.Filter)
	if err != nil {
		apierror.Write(w, h.Log, apierror.FromStore(err, "Reviews not found"))
		return
	}
	reviews, err := h.Store.Find(ctx, params.Filter, params.FindOptions())
	if err != nil {
		apierror.Write(w, h.Log, apierror.FromStore(err, "Reviews not found"))
		return
	}

	apierror.WriteJSON(w, http.StatusOK,
		apiquery.List(reviews, len(reviews), params.Paginate(total)))
}

// Get handles GET /reviews/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	idHex := chi.URLParam(r, "id")
	notFound := "No review found with the id of " + idHex

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

	apierror.WriteJSON(w, http.StatusOK, apiquery.One(review))
}
