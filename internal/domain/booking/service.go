package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/parkeasy/parkeasy-api/internal/domain/lot"
)

// Service handles the booking lifecycle business logic
type Service struct {
	repo     Repository
	lots     lot.Repository
	maxHours int
}

// NewService creates booking service. maxHours bounds the reservation
// duration; hours below 1 or above it are rejected.
func NewService(repo Repository, lots lot.Repository, maxHours int) *Service {
	return &Service{repo: repo, lots: lots, maxHours: maxHours}
}

// MaxHours returns the configured duration ceiling
func (s *Service) MaxHours() int { return s.maxHours }

// Cost computes the frozen reservation cost from the lot's current
// hourly price.
func Cost(pricePerHour float64, hours int) float64 {
	return pricePerHour * float64(hours)
}

// Reserve books a slot for the user. The lot must exist and not be
// soft-deleted; the slot's availability is re-checked transactionally
// inside the repository so a stale listing cannot double-book.
func (s *Service) Reserve(ctx context.Context, userID, lotID uuid.UUID, req *ReserveRequest) (*Booking, error) {
	if req.Hours < 1 || req.Hours > s.maxHours {
		return nil, ErrInvalidDuration
	}

	l, err := s.lots.GetByID(ctx, lotID)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, ErrLotNotFound
	}

	now := time.Now()
	b := &Booking{
		ID:            uuid.New(),
		UserID:        userID,
		LotID:         lotID,
		SlotID:        req.SlotID,
		VehicleNumber: req.VehicleNumber,
		VehicleType:   req.VehicleType,
		StartTime:     now,
		EndTime:       now.Add(time.Duration(req.Hours) * time.Hour),
		TotalCost:     Cost(l.PricePerHour, req.Hours),
		Status:        StatusActive,
		CreatedAt:     now,
	}

	if err := s.repo.Reserve(ctx, b); err != nil {
		return nil, err
	}

	log.Info().
		Str("booking_id", b.ID.String()).
		Str("user_id", userID.String()).
		Str("lot_id", lotID.String()).
		Int("hours", req.Hours).
		Float64("total_cost", b.TotalCost).
		Msg("slot reserved")

	return b, nil
}

// Cancel cancels the user's own active booking and frees the slot
func (s *Service) Cancel(ctx context.Context, bookingID, userID uuid.UUID) error {
	return s.repo.Cancel(ctx, bookingID, userID)
}

// ForceRelease frees a slot regardless of booking state (admin)
func (s *Service) ForceRelease(ctx context.Context, slotID uuid.UUID) error {
	return s.repo.ForceRelease(ctx, slotID)
}

// ExpirySweep closes out bookings whose window has elapsed. Called
// inline on dashboard views; there is no background scheduler, so
// expiry is only as fresh as the last sweep.
func (s *Service) ExpirySweep(ctx context.Context) (int, error) {
	count, err := s.repo.ExpireDue(ctx, time.Now())
	if err != nil {
		return 0, err
	}
	if count > 0 {
		log.Info().Int("count", count).Msg("expired bookings swept")
	}
	return count, nil
}

// LotWithSlots returns the lot and its free slots for the booking form
func (s *Service) LotWithSlots(ctx context.Context, lotID uuid.UUID) (*lot.ParkingLot, []lot.ParkingSlot, error) {
	l, err := s.lots.GetByID(ctx, lotID)
	if err != nil {
		return nil, nil, err
	}
	if l == nil {
		return nil, nil, ErrLotNotFound
	}

	slots, err := s.lots.ListAvailableSlots(ctx, lotID)
	if err != nil {
		return nil, nil, err
	}

	return l, slots, nil
}

// ListByUser returns the caller's bookings with optional filters
func (s *Service) ListByUser(ctx context.Context, userID uuid.UUID, filter ListFilter) ([]BookingDetail, error) {
	return s.repo.ListByUser(ctx, userID, filter)
}
