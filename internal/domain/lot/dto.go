package lot

import "time"

// CreateLotRequest for POST /admin/add-lot
type CreateLotRequest struct {
	Name         string  `json:"name" validate:"required,min=2,max=100"`
	Location     string  `json:"location" validate:"required,min=2,max=255"`
	TotalSlots   int     `json:"total_slots" validate:"required,min=1,max=1000"`
	PricePerHour float64 `json:"price_per_hour" validate:"required,gt=0"`
}

// UpdateLotRequest for POST /admin/edit-lot/{id}. Slot count is fixed
// at creation; edits touch pricing and metadata only.
type UpdateLotRequest struct {
	Name         string  `json:"name" validate:"required,min=2,max=100"`
	Location     string  `json:"location" validate:"required,min=2,max=255"`
	PricePerHour float64 `json:"price_per_hour" validate:"required,gt=0"`
}

// ListFilter narrows the active-lot listing. Zero values mean no
// constraint; predicates are built as parameterized SQL. Location
// matches lot name or location. OnlyAvailable drops fully-occupied
// lots (the user dashboard view; admin listings show every lot).
type ListFilter struct {
	Location      string
	MaxPrice      float64
	OnlyAvailable bool
}

// LotResponse represents a lot in API responses
type LotResponse struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Location       string  `json:"location"`
	TotalSlots     int     `json:"total_slots"`
	PricePerHour   float64 `json:"price_per_hour"`
	AvailableSlots int     `json:"available_slots"`
	OccupiedSlots  int     `json:"occupied_slots"`
	CreatedAt      string  `json:"created_at"`
	DeletedAt      string  `json:"deleted_at,omitempty"`
}

// NewLotResponse converts a lot with availability counts
func NewLotResponse(l *LotAvailability) *LotResponse {
	resp := &LotResponse{
		ID:             l.ID.String(),
		Name:           l.Name,
		Location:       l.Location,
		TotalSlots:     l.TotalSlots,
		PricePerHour:   l.PricePerHour,
		AvailableSlots: l.AvailableSlots,
		OccupiedSlots:  l.OccupiedSlots,
		CreatedAt:      l.CreatedAt.Format(time.RFC3339),
	}
	if l.DeletedAt.Valid {
		resp.DeletedAt = l.DeletedAt.Time.Format(time.RFC3339)
	}
	return resp
}

// SlotMapResponse is one slot in the slot-map view
type SlotMapResponse struct {
	ID            string `json:"id"`
	SlotNumber    int    `json:"slot_number"`
	Status        string `json:"status"`
	VehicleNumber string `json:"vehicle_number,omitempty"`
	OccupiedUntil string `json:"occupied_until,omitempty"`
}

// NewSlotMapResponse converts a slot-map entry
func NewSlotMapResponse(e *SlotMapEntry) *SlotMapResponse {
	resp := &SlotMapResponse{
		ID:         e.ID.String(),
		SlotNumber: e.SlotNumber,
		Status:     e.Status,
	}
	if e.VehicleNumber.Valid {
		resp.VehicleNumber = e.VehicleNumber.String
	}
	if e.OccupiedUntil.Valid {
		resp.OccupiedUntil = e.OccupiedUntil.Time.Format(time.RFC3339)
	}
	return resp
}
