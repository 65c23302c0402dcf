package dashboard

import (
	"github.com/go-chi/chi/v5"

	"github.com/parkeasy/parkeasy-api/internal/middleware"
)

// Routes registers the user dashboard endpoint
func (h *Handler) Routes(r chi.Router) {
	r.With(middleware.RequireUser).Get("/dashboard", h.Dashboard)
}
