package booking

import (
	"time"

	"github.com/google/uuid"
)

// Booking statuses. A booking starts active and moves to exactly one
// terminal state. Completed is a valid terminal state reserved for a
// future mark-finished path; no current entry point produces it.
const (
	StatusActive    = "active"
	StatusCancelled = "cancelled"
	StatusExpired   = "expired"
	StatusCompleted = "completed"
)

// Vehicle types accepted at reservation
const (
	VehicleCar        = "car"
	VehicleMotorcycle = "motorcycle"
	VehicleTruck      = "truck"
	VehicleVan        = "van"
)

// Booking is one reservation of one slot by one user. TotalCost is
// frozen at reservation time from the lot's price; later price edits
// never change it.
type Booking struct {
	ID            uuid.UUID `db:"id" json:"id"`
	UserID        uuid.UUID `db:"user_id" json:"user_id"`
	LotID         uuid.UUID `db:"lot_id" json:"lot_id"`
	SlotID        uuid.UUID `db:"slot_id" json:"slot_id"`
	VehicleNumber string    `db:"vehicle_number" json:"vehicle_number"`
	VehicleType   string    `db:"vehicle_type" json:"vehicle_type"`
	StartTime     time.Time `db:"start_time" json:"start_time"`
	EndTime       time.Time `db:"end_time" json:"end_time"`
	TotalCost     float64   `db:"total_cost" json:"total_cost"`
	Status        string    `db:"status" json:"status"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// IsActive reports whether the booking still holds its slot
func (b *Booking) IsActive() bool {
	return b.Status == StatusActive
}

// BookingDetail is a booking joined with lot and slot display fields
type BookingDetail struct {
	Booking
	LotName    string `db:"lot_name" json:"lot_name"`
	Location   string `db:"location" json:"location"`
	SlotNumber int    `db:"slot_number" json:"slot_number"`
}
