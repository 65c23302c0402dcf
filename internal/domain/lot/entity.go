package lot

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Slot statuses
const (
	SlotAvailable = "available"
	SlotOccupied  = "occupied"
)

// ParkingLot represents a parking facility. Soft-deleted lots keep
// their slots and historical bookings but disappear from listings.
type ParkingLot struct {
	ID           uuid.UUID    `db:"id" json:"id"`
	Name         string       `db:"name" json:"name"`
	Location     string       `db:"location" json:"location"`
	TotalSlots   int          `db:"total_slots" json:"total_slots"`
	PricePerHour float64      `db:"price_per_hour" json:"price_per_hour"`
	CreatedAt    time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time    `db:"updated_at" json:"updated_at"`
	DeletedAt    sql.NullTime `db:"deleted_at" json:"-"`
}

// IsDeleted reports whether the lot is soft-deleted
func (l *ParkingLot) IsDeleted() bool {
	return l.DeletedAt.Valid
}

// ParkingSlot is one numbered space within a lot. Status is derived
// state: occupied exactly when an active booking references the slot.
type ParkingSlot struct {
	ID         uuid.UUID `db:"id" json:"id"`
	LotID      uuid.UUID `db:"lot_id" json:"lot_id"`
	SlotNumber int       `db:"slot_number" json:"slot_number"`
	Status     string    `db:"status" json:"status"`
}

// LotAvailability is a lot row joined with its live slot counts
type LotAvailability struct {
	ParkingLot
	AvailableSlots int `db:"available_slots" json:"available_slots"`
	OccupiedSlots  int `db:"occupied_slots" json:"occupied_slots"`
}

// SlotMapEntry is one slot joined with its active booking, if any
type SlotMapEntry struct {
	ID            uuid.UUID      `db:"id" json:"id"`
	SlotNumber    int            `db:"slot_number" json:"slot_number"`
	Status        string         `db:"status" json:"status"`
	VehicleNumber sql.NullString `db:"vehicle_number" json:"-"`
	OccupiedUntil sql.NullTime   `db:"occupied_until" json:"-"`
}
