package booking_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/parkeasy/parkeasy-api/internal/domain/booking"
	"github.com/parkeasy/parkeasy-api/internal/domain/lot"
)

type fakeLotRepo struct {
	lots  map[uuid.UUID]*lot.ParkingLot
	slots map[uuid.UUID][]lot.ParkingSlot
}

func newFakeLotRepo() *fakeLotRepo {
	return &fakeLotRepo{
		lots:  make(map[uuid.UUID]*lot.ParkingLot),
		slots: make(map[uuid.UUID][]lot.ParkingSlot),
	}
}

func (r *fakeLotRepo) CreateWithSlots(_ context.Context, l *lot.ParkingLot) error {
	r.lots[l.ID] = l
	slots := make([]lot.ParkingSlot, 0, l.TotalSlots)
	for n := 1; n <= l.TotalSlots; n++ {
		slots = append(slots, lot.ParkingSlot{
			ID: uuid.New(), LotID: l.ID, SlotNumber: n, Status: lot.SlotAvailable,
		})
	}
	r.slots[l.ID] = slots
	return nil
}

func (r *fakeLotRepo) GetByID(_ context.Context, id uuid.UUID) (*lot.ParkingLot, error) {
	l, ok := r.lots[id]
	if !ok || l.IsDeleted() {
		return nil, nil
	}
	return l, nil
}

func (r *fakeLotRepo) GetByIDAny(_ context.Context, id uuid.UUID) (*lot.ParkingLot, error) {
	return r.lots[id], nil
}

func (r *fakeLotRepo) Update(_ context.Context, l *lot.ParkingLot) error {
	r.lots[l.ID] = l
	return nil
}

func (r *fakeLotRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	l, ok := r.lots[id]
	if !ok {
		return lot.ErrLotNotFound
	}
	l.DeletedAt.Time = time.Now()
	l.DeletedAt.Valid = true
	return nil
}

func (r *fakeLotRepo) Restore(_ context.Context, id uuid.UUID) error {
	l, ok := r.lots[id]
	if !ok {
		return lot.ErrLotNotFound
	}
	l.DeletedAt.Valid = false
	return nil
}

func (r *fakeLotRepo) ListActive(_ context.Context, _ lot.ListFilter) ([]lot.LotAvailability, error) {
	return nil, nil
}

func (r *fakeLotRepo) ListDeleted(_ context.Context) ([]lot.LotAvailability, error) {
	return nil, nil
}

func (r *fakeLotRepo) ListAvailableSlots(_ context.Context, lotID uuid.UUID) ([]lot.ParkingSlot, error) {
	var available []lot.ParkingSlot
	for _, s := range r.slots[lotID] {
		if s.Status == lot.SlotAvailable {
			available = append(available, s)
		}
	}
	return available, nil
}

func (r *fakeLotRepo) SlotMap(_ context.Context, _ uuid.UUID) ([]lot.SlotMapEntry, error) {
	return nil, nil
}

type fakeBookingRepo struct {
	reserved   []*booking.Booking
	reserveErr error
	cancelErr  error
}

func (r *fakeBookingRepo) Reserve(_ context.Context, b *booking.Booking) error {
	if r.reserveErr != nil {
		return r.reserveErr
	}
	r.reserved = append(r.reserved, b)
	return nil
}

func (r *fakeBookingRepo) Cancel(_ context.Context, _, _ uuid.UUID) error {
	return r.cancelErr
}

func (r *fakeBookingRepo) ForceRelease(_ context.Context, _ uuid.UUID) error { return nil }

func (r *fakeBookingRepo) ExpireDue(_ context.Context, _ time.Time) (int, error) { return 0, nil }

func (r *fakeBookingRepo) GetByID(_ context.Context, _ uuid.UUID) (*booking.Booking, error) {
	return nil, nil
}

func (r *fakeBookingRepo) ListByUser(_ context.Context, _ uuid.UUID, _ booking.ListFilter) ([]booking.BookingDetail, error) {
	return nil, nil
}

func seedLot(t *testing.T, lots *fakeLotRepo, price float64, slots int) *lot.ParkingLot {
	t.Helper()
	l := &lot.ParkingLot{
		ID:           uuid.New(),
		Name:         "Central",
		Location:     "Downtown",
		TotalSlots:   slots,
		PricePerHour: price,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if err := lots.CreateWithSlots(context.Background(), l); err != nil {
		t.Fatalf("seed lot failed: %v", err)
	}
	return l
}

func TestCost(t *testing.T) {
	tests := []struct {
		price float64
		hours int
		want  float64
	}{
		{5.00, 3, 15.00},
		{2.50, 4, 10.00},
		{10.00, 1, 10.00},
		{0.99, 24, 23.76},
	}

	for _, tt := range tests {
		if got := booking.Cost(tt.price, tt.hours); got != tt.want {
			t.Errorf("Cost(%v, %d) = %v, want %v", tt.price, tt.hours, got, tt.want)
		}
	}
}

func TestReserveComputesCostAndWindow(t *testing.T) {
	lots := newFakeLotRepo()
	repo := &fakeBookingRepo{}
	svc := booking.NewService(repo, lots, 24)

	l := seedLot(t, lots, 5.00, 2)
	slots, _ := lots.ListAvailableSlots(context.Background(), l.ID)

	before := time.Now()
	b, err := svc.Reserve(context.Background(), uuid.New(), l.ID, &booking.ReserveRequest{
		SlotID:        slots[0].ID,
		VehicleNumber: "KZ123ABC",
		VehicleType:   "car",
		Hours:         3,
	})
	if err != nil {
		t.Fatalf("reserve failed: %v", err)
	}

	if b.TotalCost != 15.00 {
		t.Fatalf("expected cost 15.00, got %v", b.TotalCost)
	}
	if b.Status != booking.StatusActive {
		t.Fatalf("expected active booking, got %q", b.Status)
	}
	want := b.StartTime.Add(3 * time.Hour)
	if !b.EndTime.Equal(want) {
		t.Fatalf("expected end time %v, got %v", want, b.EndTime)
	}
	if b.StartTime.Before(before) {
		t.Fatalf("start time %v precedes reservation call", b.StartTime)
	}

	// Price edits after reservation never touch the frozen cost.
	l.PricePerHour = 10.00
	if b.TotalCost != 15.00 {
		t.Fatalf("cost changed after price edit: %v", b.TotalCost)
	}
}

func TestReserveDurationBounds(t *testing.T) {
	lots := newFakeLotRepo()
	svc := booking.NewService(&fakeBookingRepo{}, lots, 24)
	l := seedLot(t, lots, 5.00, 1)

	for _, hours := range []int{0, -1, 25} {
		_, err := svc.Reserve(context.Background(), uuid.New(), l.ID, &booking.ReserveRequest{
			SlotID:        uuid.New(),
			VehicleNumber: "KZ123ABC",
			VehicleType:   "car",
			Hours:         hours,
		})
		if !errors.Is(err, booking.ErrInvalidDuration) {
			t.Errorf("hours=%d: expected ErrInvalidDuration, got %v", hours, err)
		}
	}
}

func TestReserveLotMissingOrDeleted(t *testing.T) {
	lots := newFakeLotRepo()
	svc := booking.NewService(&fakeBookingRepo{}, lots, 24)

	req := &booking.ReserveRequest{
		SlotID:        uuid.New(),
		VehicleNumber: "KZ123ABC",
		VehicleType:   "car",
		Hours:         2,
	}

	if _, err := svc.Reserve(context.Background(), uuid.New(), uuid.New(), req); !errors.Is(err, booking.ErrLotNotFound) {
		t.Fatalf("expected ErrLotNotFound for missing lot, got %v", err)
	}

	l := seedLot(t, lots, 5.00, 1)
	if err := lots.SoftDelete(context.Background(), l.ID); err != nil {
		t.Fatalf("soft delete failed: %v", err)
	}
	if _, err := svc.Reserve(context.Background(), uuid.New(), l.ID, req); !errors.Is(err, booking.ErrLotNotFound) {
		t.Fatalf("expected ErrLotNotFound for deleted lot, got %v", err)
	}
}

func TestCancelPropagatesNotFound(t *testing.T) {
	repo := &fakeBookingRepo{cancelErr: booking.ErrBookingNotFound}
	svc := booking.NewService(repo, newFakeLotRepo(), 24)

	if err := svc.Cancel(context.Background(), uuid.New(), uuid.New()); !errors.Is(err, booking.ErrBookingNotFound) {
		t.Fatalf("expected ErrBookingNotFound, got %v", err)
	}
}

func TestLotWithSlotsExcludesOccupied(t *testing.T) {
	lots := newFakeLotRepo()
	svc := booking.NewService(&fakeBookingRepo{}, lots, 24)
	l := seedLot(t, lots, 5.00, 3)

	lots.slots[l.ID][1].Status = lot.SlotOccupied

	got, slots, err := svc.LotWithSlots(context.Background(), l.ID)
	if err != nil {
		t.Fatalf("lot with slots failed: %v", err)
	}
	if got.ID != l.ID {
		t.Fatalf("unexpected lot %s", got.ID)
	}
	if len(slots) != 2 {
		t.Fatalf("expected 2 available slots, got %d", len(slots))
	}
	for _, s := range slots {
		if s.Status != lot.SlotAvailable {
			t.Fatalf("occupied slot leaked into availability list: %+v", s)
		}
	}
}
