package report

import (
	"time"

	"github.com/google/uuid"
)

// Stats are the headline numbers on the admin dashboard. Slot counts
// only consider non-deleted lots; revenue sums active and completed
// bookings.
type Stats struct {
	TotalLots      int     `db:"total_lots" json:"total_lots"`
	TotalSlots     int     `db:"total_slots" json:"total_slots"`
	AvailableSlots int     `db:"available_slots" json:"available_slots"`
	OccupiedSlots  int     `db:"occupied_slots" json:"occupied_slots"`
	TotalRevenue   float64 `db:"total_revenue" json:"total_revenue"`
}

// AdminBooking is a booking joined with user, lot and slot fields for
// the admin listing and the bookings export.
type AdminBooking struct {
	ID            uuid.UUID `db:"id" json:"id"`
	Username      string    `db:"username" json:"username"`
	Email         string    `db:"email" json:"email"`
	LotName       string    `db:"lot_name" json:"lot_name"`
	Location      string    `db:"location" json:"location"`
	SlotNumber    int       `db:"slot_number" json:"slot_number"`
	VehicleNumber string    `db:"vehicle_number" json:"vehicle_number"`
	VehicleType   string    `db:"vehicle_type" json:"vehicle_type"`
	StartTime     time.Time `db:"start_time" json:"start_time"`
	EndTime       time.Time `db:"end_time" json:"end_time"`
	TotalCost     float64   `db:"total_cost" json:"total_cost"`
	Status        string    `db:"status" json:"status"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// LotSummary is a lot with its live slot counts for the lots export
type LotSummary struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Location     string    `db:"location" json:"location"`
	TotalSlots   int       `db:"total_slots" json:"total_slots"`
	PricePerHour float64   `db:"price_per_hour" json:"price_per_hour"`
	ActualSlots  int       `db:"actual_slots" json:"actual_slots"`
	Available    int       `db:"available" json:"available"`
	Occupied     int       `db:"occupied" json:"occupied"`
}

// RevenuePoint is one day of revenue in the last-7-days chart
type RevenuePoint struct {
	Date    string  `db:"date" json:"date"`
	Revenue float64 `db:"revenue" json:"revenue"`
}

// StatusCount is one slice of the bookings-by-status chart
type StatusCount struct {
	Status string `db:"status" json:"status"`
	Count  int    `db:"count" json:"count"`
}

// LotOccupancy is one bar of the occupancy-per-lot chart
type LotOccupancy struct {
	Name     string `db:"name" json:"name"`
	Total    int    `db:"total" json:"total"`
	Occupied int    `db:"occupied" json:"occupied"`
}

// ChartData bundles the admin dashboard chart aggregates
type ChartData struct {
	Revenue   []RevenuePoint `json:"revenue"`
	Status    []StatusCount  `json:"status"`
	Occupancy []LotOccupancy `json:"occupancy"`
}

// BookingFilter narrows the admin booking listing. Zero values mean no
// constraint; predicates are built as parameterized SQL.
type BookingFilter struct {
	SearchUser string
	SearchLot  string
	Status     string
	DateFrom   time.Time
	DateTo     time.Time
}
