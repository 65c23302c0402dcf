package dashboard

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/parkeasy/parkeasy-api/internal/domain/booking"
	"github.com/parkeasy/parkeasy-api/internal/domain/lot"
)

// Service builds the user dashboard view
type Service struct {
	bookings *booking.Service
	lots     *lot.Service
}

// NewService creates dashboard service
func NewService(bookings *booking.Service, lots *lot.Service) *Service {
	return &Service{bookings: bookings, lots: lots}
}

// Lots sweeps expired bookings, then lists active lots that still
// have a free slot. The sweep runs first so the counts reflect
// bookings that just ran out; a sweep failure is logged and never
// fails the view.
func (s *Service) Lots(ctx context.Context, filter lot.ListFilter) ([]lot.LotAvailability, error) {
	if _, err := s.bookings.ExpirySweep(ctx); err != nil {
		log.Error().Err(err).Msg("expiry sweep failed on dashboard load")
	}

	filter.OnlyAvailable = true
	return s.lots.List(ctx, filter)
}
