package booking

import (
	"time"

	"github.com/google/uuid"
)

// ReserveRequest for POST /book/{lotId}
type ReserveRequest struct {
	SlotID        uuid.UUID `json:"slot_id" validate:"required"`
	VehicleNumber string    `json:"vehicle_number" validate:"required,min=2,max=20"`
	VehicleType   string    `json:"vehicle_type" validate:"required,vehicle_type"`
	Hours         int       `json:"hours" validate:"required,min=1"`
}

// ListFilter narrows a booking listing. Zero values mean no
// constraint; predicates are built as parameterized SQL.
type ListFilter struct {
	Status   string
	DateFrom time.Time
	DateTo   time.Time
}

// BookingResponse represents a booking in API responses
type BookingResponse struct {
	ID            string  `json:"id"`
	LotName       string  `json:"lot_name"`
	Location      string  `json:"location"`
	SlotNumber    int     `json:"slot_number"`
	VehicleNumber string  `json:"vehicle_number"`
	VehicleType   string  `json:"vehicle_type"`
	StartTime     string  `json:"start_time"`
	EndTime       string  `json:"end_time"`
	TotalCost     float64 `json:"total_cost"`
	Status        string  `json:"status"`
}

// NewBookingResponse converts a joined booking row
func NewBookingResponse(b *BookingDetail) *BookingResponse {
	return &BookingResponse{
		ID:            b.ID.String(),
		LotName:       b.LotName,
		Location:      b.Location,
		SlotNumber:    b.SlotNumber,
		VehicleNumber: b.VehicleNumber,
		VehicleType:   b.VehicleType,
		StartTime:     b.StartTime.Format(time.RFC3339),
		EndTime:       b.EndTime.Format(time.RFC3339),
		TotalCost:     b.TotalCost,
		Status:        b.Status,
	}
}
