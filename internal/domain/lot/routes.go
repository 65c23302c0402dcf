package lot

import (
	"github.com/go-chi/chi/v5"

	"github.com/parkeasy/parkeasy-api/internal/middleware"
)

// AdminRoutes registers lot management endpoints. The caller gates the
// router with RequireAdmin.
func (h *Handler) AdminRoutes(r chi.Router) {
	r.Get("/lots", h.List)
	r.Post("/add-lot", h.Create)
	r.Get("/edit-lot/{id}", h.Get)
	r.Post("/edit-lot/{id}", h.Update)
	r.Get("/delete-lot/{id}", h.Delete)
	r.Get("/restore-lot/{id}", h.Restore)
	r.Get("/deleted-lots", h.ListDeleted)
	r.Get("/slot-map/{lotId}", h.SlotMap)
}

// UserRoutes registers the user-facing slot map
func (h *Handler) UserRoutes(r chi.Router) {
	r.With(middleware.RequireUser).Get("/slot-map/{lotId}", h.SlotMap)
}
