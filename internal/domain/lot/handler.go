package lot

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/parkeasy/parkeasy-api/internal/pkg/response"
	"github.com/parkeasy/parkeasy-api/internal/pkg/validator"
)

// Handler handles lot management HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates lot handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func lotIDParam(r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	return id, err == nil
}

// Create handles POST /admin/add-lot
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateLotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	lot, err := h.service.Create(r.Context(), &req)
	if err != nil {
		log.Error().Err(err).Str("name", req.Name).Msg("failed to create parking lot")
		response.InternalError(w)
		return
	}

	response.Created(w, lot)
}

// Update handles POST /admin/edit-lot/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := lotIDParam(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid lot ID")
		return
	}

	var req UpdateLotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	lot, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		switch err {
		case ErrLotNotFound:
			response.NotFound(w, "Parking lot not found")
		default:
			log.Error().Err(err).Str("lot_id", id.String()).Msg("failed to update parking lot")
			response.InternalError(w)
		}
		return
	}

	response.OK(w, lot)
}

// Get handles GET /admin/edit-lot/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := lotIDParam(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid lot ID")
		return
	}

	lot, err := h.service.Get(r.Context(), id)
	if err != nil {
		switch err {
		case ErrLotNotFound:
			response.NotFound(w, "Parking lot not found")
		default:
			log.Error().Err(err).Str("lot_id", id.String()).Msg("failed to get parking lot")
			response.InternalError(w)
		}
		return
	}

	response.OK(w, lot)
}

// Delete handles GET /admin/delete-lot/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := lotIDParam(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid lot ID")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		switch err {
		case ErrLotNotFound:
			response.NotFound(w, "Parking lot not found")
		default:
			log.Error().Err(err).Str("lot_id", id.String()).Msg("failed to delete parking lot")
			response.InternalError(w)
		}
		return
	}

	response.NoContent(w)
}

// Restore handles GET /admin/restore-lot/{id}
func (h *Handler) Restore(w http.ResponseWriter, r *http.Request) {
	id, ok := lotIDParam(r, "id")
	if !ok {
		response.BadRequest(w, "Invalid lot ID")
		return
	}

	if err := h.service.Restore(r.Context(), id); err != nil {
		switch err {
		case ErrLotNotFound:
			response.NotFound(w, "Parking lot not found")
		default:
			log.Error().Err(err).Str("lot_id", id.String()).Msg("failed to restore parking lot")
			response.InternalError(w)
		}
		return
	}

	response.NoContent(w)
}

// List handles GET /admin/lots
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	lots, err := h.service.List(r.Context(), ListFilter{})
	if err != nil {
		log.Error().Err(err).Msg("failed to list parking lots")
		response.InternalError(w)
		return
	}

	result := make([]*LotResponse, 0, len(lots))
	for i := range lots {
		result = append(result, NewLotResponse(&lots[i]))
	}

	response.OK(w, result)
}

// ListDeleted handles GET /admin/deleted-lots
func (h *Handler) ListDeleted(w http.ResponseWriter, r *http.Request) {
	lots, err := h.service.ListDeleted(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list deleted parking lots")
		response.InternalError(w)
		return
	}

	result := make([]*LotResponse, 0, len(lots))
	for i := range lots {
		result = append(result, NewLotResponse(&lots[i]))
	}

	response.OK(w, result)
}

// SlotMap handles GET /slot-map/{lotId}
func (h *Handler) SlotMap(w http.ResponseWriter, r *http.Request) {
	lotID, ok := lotIDParam(r, "lotId")
	if !ok {
		response.BadRequest(w, "Invalid lot ID")
		return
	}

	lot, entries, err := h.service.SlotMap(r.Context(), lotID)
	if err != nil {
		switch err {
		case ErrLotNotFound:
			response.NotFound(w, "Parking lot not found")
		default:
			log.Error().Err(err).Str("lot_id", lotID.String()).Msg("failed to build slot map")
			response.InternalError(w)
		}
		return
	}

	slots := make([]*SlotMapResponse, 0, len(entries))
	for i := range entries {
		slots = append(slots, NewSlotMapResponse(&entries[i]))
	}

	response.OK(w, map[string]interface{}{
		"lot":   lot,
		"slots": slots,
	})
}
