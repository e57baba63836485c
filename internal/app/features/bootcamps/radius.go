package bootcamps

import (
	"context"
	"net/http"
	"strconv"

	"github.com/dalemusser/campdir/internal/app/system/apierror"
	"github.com/dalemusser/campdir/internal/app/system/apiquery"
	"github.com/dalemusser/campdir/internal/app/system/geocode"
	"github.com/dalemusser/campdir/internal/app/system/metrics"
	"github.com/dalemusser/campdir/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// InRadius handles GET /bootcamps/radius/{zipcode}/{distance}.
//
// The distance is kilometers. The zipcode is resolved through the geocoding
// adapter and converted to a spherical-cap radius in radians by dividing by
// the Earth radius (geocode.EarthRadiusKM). The response carries a count but
// no pagination block.
func (h *Handler) InRadius(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	zipcode := chi.URLParam(r, "zipcode")
	distance, err := strconv.ParseFloat(chi.URLParam(r, "distance"), 64)
	if err != nil || distance <= 0 {
		apierror.Write(w, h.Log, apierror.BadRequest("Please provide a distance in kilometers"))
		return
	}

	loc, err := h.Geocoder.Geocode(ctx, zipcode)
	if err != nil {
		metrics.GeocodeFailures.Inc()
		h.Log.Error("geocoding lookup failed", zap.String("zipcode", zipcode), zap.Error(err))
		apierror.Write(w, h.Log, apierror.Internal(err, "Unable to geocode zipcode "+zipcode))
		return
	}

	radius := distance / geocode.EarthRadiusKM

	bootcamps, err := h.Store.FindWithinRadius(ctx, loc.Longitude, loc.Latitude, radius)
	if err != nil {
		apierror.Write(w, h.Log, apierror.FromStore(err, "Bootcamps not found"))
		return
	}

	apierror.WriteJSON(w, http.StatusOK, apiquery.List(bootcamps, len(bootcamps), nil))
}
