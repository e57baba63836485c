// internal/app/features/bootcamps/routes.go
package bootcamps

import (
	"github.com/dalemusser/campdir/internal/app/system/auth"
	"github.com/dalemusser/campdir/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// Routes returns the bootcamps subrouter. Reads are public; writes require
// a publisher or admin principal (the per-document ownership check lives in
// the handlers). The nested course and review routers are mounted onto the
// returned router by bootstrap.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Get("/radius/{zipcode}/{distance}", h.InRadius)
	r.Get("/{bootcampID}", h.Get)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireRole(models.RolePublisher, models.RoleAdmin))
		r.Post("/", h.Create)
		r.Put("/{bootcampID}", h.Update)
		r.Delete("/{bootcampID}", h.Delete)
		r.Put("/{bootcampID}/photo", h.UploadPhoto)
	})

	return r
}
