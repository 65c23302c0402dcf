package report

import (
	"github.com/go-chi/chi/v5"
)

// Routes registers the admin reporting endpoints. The caller gates the
// router with RequireAdmin.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/dashboard", h.Dashboard)
	r.Get("/bookings", h.Bookings)
	r.Get("/export-csv", h.ExportCSV)
	r.Get("/api/dashboard-data", h.DashboardData)
}
