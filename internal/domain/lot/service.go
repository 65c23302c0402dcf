package lot

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Service handles lot management business logic
type Service struct {
	repo Repository
}

// NewService creates lot service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create creates a lot together with its numbered slots
func (s *Service) Create(ctx context.Context, req *CreateLotRequest) (*ParkingLot, error) {
	now := time.Now()
	lot := &ParkingLot{
		ID:           uuid.New(),
		Name:         req.Name,
		Location:     req.Location,
		TotalSlots:   req.TotalSlots,
		PricePerHour: req.PricePerHour,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.CreateWithSlots(ctx, lot); err != nil {
		return nil, err
	}

	return lot, nil
}

// Get returns an active lot
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*ParkingLot, error) {
	lot, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if lot == nil {
		return nil, ErrLotNotFound
	}
	return lot, nil
}

// Update edits name, location and hourly price. Existing bookings keep
// the cost frozen at their reservation time.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req *UpdateLotRequest) (*ParkingLot, error) {
	lot, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if lot == nil {
		return nil, ErrLotNotFound
	}

	lot.Name = req.Name
	lot.Location = req.Location
	lot.PricePerHour = req.PricePerHour
	lot.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, lot); err != nil {
		return nil, err
	}

	return lot, nil
}

// Delete soft-deletes the lot
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.SoftDelete(ctx, id)
}

// Restore brings a soft-deleted lot back into listings
func (s *Service) Restore(ctx context.Context, id uuid.UUID) error {
	lot, err := s.repo.GetByIDAny(ctx, id)
	if err != nil {
		return err
	}
	if lot == nil {
		return ErrLotNotFound
	}
	if !lot.IsDeleted() {
		return nil // already active
	}
	return s.repo.Restore(ctx, id)
}

// List returns active lots with availability counts
func (s *Service) List(ctx context.Context, filter ListFilter) ([]LotAvailability, error) {
	return s.repo.ListActive(ctx, filter)
}

// ListDeleted returns soft-deleted lots
func (s *Service) ListDeleted(ctx context.Context) ([]LotAvailability, error) {
	return s.repo.ListDeleted(ctx)
}

// AvailableSlots returns the lot's free slots in slot-number order
func (s *Service) AvailableSlots(ctx context.Context, lotID uuid.UUID) ([]ParkingSlot, error) {
	lot, err := s.repo.GetByID(ctx, lotID)
	if err != nil {
		return nil, err
	}
	if lot == nil {
		return nil, ErrLotNotFound
	}
	return s.repo.ListAvailableSlots(ctx, lotID)
}

// SlotMap returns every slot with its occupying booking details
func (s *Service) SlotMap(ctx context.Context, lotID uuid.UUID) (*ParkingLot, []SlotMapEntry, error) {
	lot, err := s.repo.GetByID(ctx, lotID)
	if err != nil {
		return nil, nil, err
	}
	if lot == nil {
		return nil, nil, ErrLotNotFound
	}

	entries, err := s.repo.SlotMap(ctx, lotID)
	if err != nil {
		return nil, nil, err
	}

	return lot, entries, nil
}
