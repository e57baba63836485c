// internal/app/features/authfeature/routes.go
package authfeature

import (
	"github.com/dalemusser/campdir/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns the /auth subrouter. The admin user-management router is
// mounted onto it at /users by bootstrap.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/register", h.Register)
	r.Post("/login", h.Login)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireSignedIn)
		r.Get("/me", h.Me)
	})

	return r
}
