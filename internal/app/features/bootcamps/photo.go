package bootcamps

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/dalemusser/campdir/internal/app/system/apierror"
	"github.com/dalemusser/campdir/internal/app/system/apiquery"
	"github.com/dalemusser/campdir/internal/app/system/authz"
	"github.com/dalemusser/campdir/internal/app/system/metrics"
	"github.com/dalemusser/campdir/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// UploadPhoto handles PUT /bootcamps/{id}/photo (multipart field "file").
//
// The file must be an image no larger than MaxBytes. It is renamed to
// photo_<bootcampID><ext> before persisting, so re-uploads replace the
// previous photo. A storage failure is reported as a 500 without touching
// the bootcamp document.
func (h *Handler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
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

	// Bound the multipart parse a little above the photo limit so the size
	// check below produces the client-facing error, not a parse failure.
	r.Body = http.MaxBytesReader(w, r.Body, h.MaxBytes+1024*1024)
	file, header, err := r.FormFile("file")
	if err != nil {
		apierror.Write(w, h.Log, apierror.BadRequest("Please upload a file"))
		return
	}
	defer file.Close()

	if !strings.HasPrefix(header.Header.Get("Content-Type"), "image") {
		apierror.Write(w, h.Log, apierror.BadRequest("Please upload an image file"))
		return
	}
	if header.Size > h.MaxBytes {
		apierror.Write(w, h.Log, apierror.BadRequest(
			"Please upload an image less than %d bytes", h.MaxBytes))
		return
	}

	filename := fmt.Sprintf("photo_%s%s", bootcamp.ID.Hex(), filepath.Ext(header.Filename))

	opts := &storage.PutOptions{ContentType: header.Header.Get("Content-Type")}
	if err := h.Storage.Put(ctx, filename, file, opts); err != nil {
		metrics.UploadFailures.Inc()
		h.Log.Error("photo upload failed", zap.String("bootcamp_id", bootcamp.ID.Hex()), zap.Error(err))
		apierror.Write(w, h.Log, apierror.New(http.StatusInternalServerError, "Problem with file upload"))
		return
	}

	if err := h.Store.SetPhoto(ctx, id, filename); err != nil {
		apierror.Write(w, h.Log, apierror.FromStore(err, notFound))
		return
	}

	apierror.WriteJSON(w, http.StatusOK, apiquery.One(filename))
}
