// internal/app/features/reviews/routes.go
package reviews

import (
	"github.com/dalemusser/campdir/internal/app/system/auth"
	"github.com/dalemusser/campdir/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// Routes returns the flat /reviews subrouter. Reads are public; updates and
// deletes require the user or admin role, with the per-document ownership
// check in the handlers.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Get("/{id}", h.Get)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireRole(models.RoleUser, models.RoleAdmin))
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})

	return r
}

// NestedRoutes returns the router mounted at /bootcamps/{bootcampID}/reviews.
func NestedRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireRole(models.RoleUser, models.RoleAdmin))
		r.Post("/", h.Create)
	})

	return r
}
