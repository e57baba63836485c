// internal/app/features/courses/routes.go
package courses

import (
	"github.com/dalemusser/campdir/internal/app/system/auth"
	"github.com/dalemusser/campdir/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// Routes returns the flat /courses subrouter. Reads are public; updates and
// deletes require a publisher or admin principal.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Get("/{id}", h.Get)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireRole(models.RolePublisher, models.RoleAdmin))
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})

	return r
}

// NestedRoutes returns the router mounted at /bootcamps/{bootcampID}/courses.
func NestedRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireRole(models.RolePublisher, models.RoleAdmin))
		r.Post("/", h.Create)
	})

	return r
}
