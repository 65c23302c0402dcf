package report

import (
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/parkeasy/parkeasy-api/internal/pkg/response"
	"github.com/parkeasy/parkeasy-api/internal/pkg/validator"
)

// Handler handles admin reporting HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates report handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

const dateLayout = "2006-01-02"

// Dashboard handles GET /admin/dashboard
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, lots, charts, err := h.service.Dashboard(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to build admin dashboard")
		response.InternalError(w)
		return
	}

	response.OK(w, map[string]interface{}{
		"stats":  stats,
		"lots":   lots,
		"charts": charts,
	})
}

// Bookings handles GET /admin/bookings with search and date filters
func (h *Handler) Bookings(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := BookingFilter{
		SearchUser: q.Get("search_user"),
		SearchLot:  q.Get("search_lot"),
	}
	if status := q.Get("status"); validator.ValidateVar(status, "booking_status") == nil {
		filter.Status = status
	}

	if v := q.Get("date_from"); v != "" {
		if t, err := time.Parse(dateLayout, v); err == nil {
			filter.DateFrom = t
		}
	}
	if v := q.Get("date_to"); v != "" {
		if t, err := time.Parse(dateLayout, v); err == nil {
			// inclusive through end of day
			filter.DateTo = t.Add(24*time.Hour - time.Second)
		}
	}

	bookings, err := h.service.Bookings(r.Context(), filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to list admin bookings")
		response.InternalError(w)
		return
	}

	response.OK(w, bookings)
}

// ExportCSV handles GET /admin/export-csv?type=bookings|lots
func (h *Handler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	exportType := r.URL.Query().Get("type")
	if exportType == "" {
		exportType = ExportBookings
	}
	if exportType != ExportBookings && exportType != ExportLots {
		response.BadRequest(w, "Unknown export type")
		return
	}

	filename, data, err := h.service.Export(r.Context(), exportType)
	if err != nil {
		log.Error().Err(err).Str("type", exportType).Msg("failed to export CSV")
		response.InternalError(w)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// DashboardData handles GET /admin/api/dashboard-data
func (h *Handler) DashboardData(w http.ResponseWriter, r *http.Request) {
	charts, err := h.service.Charts(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to build chart data")
		response.InternalError(w)
		return
	}

	response.OK(w, charts)
}
