package booking

import (
	"github.com/go-chi/chi/v5"

	"github.com/parkeasy/parkeasy-api/internal/middleware"
)

// UserRoutes registers the booking endpoints for authenticated users
func (h *Handler) UserRoutes(r chi.Router) {
	g := r.With(middleware.RequireUser)

	g.Get("/book/{lotId}", h.BookingForm)
	g.Post("/book/{lotId}", h.Reserve)
	g.Get("/cancel-booking/{id}", h.Cancel)
	g.Get("/my-bookings", h.MyBookings)
}

// AdminRoutes registers the slot repair endpoint. The caller gates the
// router with RequireAdmin.
func (h *Handler) AdminRoutes(r chi.Router) {
	r.Post("/force-release-slot/{id}", h.ForceRelease)
}
