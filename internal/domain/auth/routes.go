package auth

import (
	"github.com/go-chi/chi/v5"

	"github.com/parkeasy/parkeasy-api/internal/middleware"
)

// Routes registers the auth endpoints. AdminLogin is wired separately
// under the /admin prefix by the caller.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
	r.Get("/logout", h.Logout)

	r.With(middleware.RequireUser).Get("/me", h.Me)
}
