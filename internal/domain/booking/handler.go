package booking

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/parkeasy/parkeasy-api/internal/middleware"
	"github.com/parkeasy/parkeasy-api/internal/pkg/response"
	"github.com/parkeasy/parkeasy-api/internal/pkg/validator"
)

// Handler handles booking HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates booking handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// dateLayout for filter query params
const dateLayout = "2006-01-02"

// BookingForm handles GET /book/{lotId}: the lot plus its free slots
func (h *Handler) BookingForm(w http.ResponseWriter, r *http.Request) {
	lotID, err := uuid.Parse(chi.URLParam(r, "lotId"))
	if err != nil {
		response.BadRequest(w, "Invalid lot ID")
		return
	}

	l, slots, err := h.service.LotWithSlots(r.Context(), lotID)
	if err != nil {
		switch err {
		case ErrLotNotFound:
			response.NotFound(w, "Parking lot not found")
		default:
			log.Error().Err(err).Str("lot_id", lotID.String()).Msg("failed to load booking form")
			response.InternalError(w)
		}
		return
	}

	response.OK(w, map[string]interface{}{
		"lot":             l,
		"available_slots": slots,
		"max_hours":       h.service.MaxHours(),
	})
}

// Reserve handles POST /book/{lotId}
func (h *Handler) Reserve(w http.ResponseWriter, r *http.Request) {
	lotID, err := uuid.Parse(chi.URLParam(r, "lotId"))
	if err != nil {
		response.BadRequest(w, "Invalid lot ID")
		return
	}

	var req ReserveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	userID := middleware.GetUserID(r.Context())

	b, err := h.service.Reserve(r.Context(), userID, lotID, &req)
	if err != nil {
		switch err {
		case ErrLotNotFound:
			response.NotFound(w, "Parking lot not found")
		case ErrSlotUnavailable:
			response.Conflict(w, "Slot is no longer available")
		case ErrInvalidDuration:
			response.BadRequest(w, "Booking duration out of bounds")
		default:
			log.Error().
				Err(err).
				Str("user_id", userID.String()).
				Str("lot_id", lotID.String()).
				Msg("failed to reserve slot")
			response.InternalError(w)
		}
		return
	}

	response.Created(w, b)
}

// Cancel handles GET /cancel-booking/{id}
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	bookingID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid booking ID")
		return
	}

	userID := middleware.GetUserID(r.Context())

	if err := h.service.Cancel(r.Context(), bookingID, userID); err != nil {
		switch err {
		case ErrBookingNotFound:
			response.NotFound(w, "Booking not found")
		default:
			log.Error().
				Err(err).
				Str("booking_id", bookingID.String()).
				Str("user_id", userID.String()).
				Msg("failed to cancel booking")
			response.InternalError(w)
		}
		return
	}

	response.NoContent(w)
}

// MyBookings handles GET /my-bookings with optional status and date filters
func (h *Handler) MyBookings(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	filter := filterFromQuery(r)

	bookings, err := h.service.ListByUser(r.Context(), userID, filter)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("failed to list bookings")
		response.InternalError(w)
		return
	}

	result := make([]*BookingResponse, 0, len(bookings))
	for i := range bookings {
		result = append(result, NewBookingResponse(&bookings[i]))
	}

	response.OK(w, result)
}

// ForceRelease handles POST /admin/force-release-slot/{id}
func (h *Handler) ForceRelease(w http.ResponseWriter, r *http.Request) {
	slotID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid slot ID")
		return
	}

	if err := h.service.ForceRelease(r.Context(), slotID); err != nil {
		switch err {
		case ErrBookingNotFound:
			response.NotFound(w, "Slot not found")
		default:
			log.Error().Err(err).Str("slot_id", slotID.String()).Msg("failed to force-release slot")
			response.InternalError(w)
		}
		return
	}

	response.NoContent(w)
}

func filterFromQuery(r *http.Request) ListFilter {
	q := r.URL.Query()

	filter := ListFilter{}
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

	return filter
}
