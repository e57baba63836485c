package bootcamps

import (
	"context"
	"net/http"

	"github.com/dalemusser/campdir/internal/app/system/apierror"
	"github.com/dalemusser/campdir/internal/app/system/apiquery"
	"github.com/dalemusser/campdir/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
)

// List handles GET /bootcamps: filterable, sortable, paginated.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	params := apiquery.Parse(r.URL.Query())

	total, err := h.Store.Count(ctx, params.Filter)
	if err != nil {
		apierror.Write(w, h.Log, apierror.FromStore(err, "Bootcamps not found"))
		return
	}
	bootcamps, err := h.Store.Find(ctx, params.Filter, params.FindOptions())
	if err != nil {
		apierror.Write(w, h.Log, apierror.FromStore(err, "Bootcamps not found"))
		return
	}

	apierror.WriteJSON(w, http.StatusOK,
		apiquery.List(bootcamps, len(bootcamps), params.Paginate(total)))
}

// Get handles GET /bootcamps/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
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

	apierror.WriteJSON(w, http.StatusOK, apiquery.One(bootcamp))
}
