package dashboard

import (
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/parkeasy/parkeasy-api/internal/domain/lot"
	"github.com/parkeasy/parkeasy-api/internal/pkg/response"
)

// Handler handles dashboard HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates dashboard handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Dashboard handles GET /dashboard with optional search filters
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := lot.ListFilter{Location: q.Get("search_location")}

	if v := q.Get("max_price"); v != "" {
		if price, err := strconv.ParseFloat(v, 64); err == nil && price > 0 {
			filter.MaxPrice = price
		}
	}

	lots, err := h.service.Lots(r.Context(), filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to load dashboard")
		response.InternalError(w)
		return
	}

	result := make([]*lot.LotResponse, 0, len(lots))
	for i := range lots {
		result = append(result, lot.NewLotResponse(&lots[i]))
	}

	response.OK(w, result)
}
