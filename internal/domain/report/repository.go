package report

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"
)

// Repository defines the read-only reporting queries. Nothing here
// mutates booking or slot state.
type Repository interface {
	Stats(ctx context.Context) (*Stats, error)
	ListBookings(ctx context.Context, filter BookingFilter) ([]AdminBooking, error)
	ListLotSummaries(ctx context.Context) ([]LotSummary, error)
	Charts(ctx context.Context) (*ChartData, error)
}

// repository implements Repository
type repository struct {
	db *sqlx.DB
}

// NewRepository creates new report repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// Stats returns the admin dashboard headline numbers
func (r *repository) Stats(ctx context.Context) (*Stats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM parking_lots WHERE deleted_at IS NULL) AS total_lots,
			(SELECT COUNT(*) FROM parking_slots s JOIN parking_lots p ON p.id = s.lot_id
			 WHERE p.deleted_at IS NULL) AS total_slots,
			(SELECT COUNT(*) FROM parking_slots s JOIN parking_lots p ON p.id = s.lot_id
			 WHERE s.status = 'available' AND p.deleted_at IS NULL) AS available_slots,
			(SELECT COUNT(*) FROM parking_slots s JOIN parking_lots p ON p.id = s.lot_id
			 WHERE s.status = 'occupied' AND p.deleted_at IS NULL) AS occupied_slots,
			(SELECT COALESCE(SUM(total_cost), 0) FROM bookings
			 WHERE status IN ('active', 'completed')) AS total_revenue
	`

	var stats Stats
	if err := r.db.GetContext(ctx, &stats, query); err != nil {
		return nil, fmt.Errorf("report repository stats: %w", err)
	}

	return &stats, nil
}

// ListBookings returns all bookings joined with user, lot and slot
// fields, newest-first, narrowed by the filter.
func (r *repository) ListBookings(ctx context.Context, filter BookingFilter) ([]AdminBooking, error) {
	query := `
		SELECT b.id, u.username, u.email, p.name AS lot_name, p.location,
		       s.slot_number, b.vehicle_number, b.vehicle_type,
		       b.start_time, b.end_time, b.total_cost, b.status, b.created_at
		FROM bookings b
		JOIN users u ON u.id = b.user_id
		JOIN parking_lots p ON p.id = b.lot_id
		JOIN parking_slots s ON s.id = b.slot_id
	`

	var conditions []string
	var args []interface{}

	if filter.SearchUser != "" {
		args = append(args, "%"+filter.SearchUser+"%")
		n := strconv.Itoa(len(args))
		conditions = append(conditions, "(u.username ILIKE $"+n+" OR u.email ILIKE $"+n+")")
	}
	if filter.SearchLot != "" {
		args = append(args, "%"+filter.SearchLot+"%")
		conditions = append(conditions, "p.name ILIKE $"+strconv.Itoa(len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		conditions = append(conditions, "b.status = $"+strconv.Itoa(len(args)))
	}
	if !filter.DateFrom.IsZero() {
		args = append(args, filter.DateFrom)
		conditions = append(conditions, "b.created_at >= $"+strconv.Itoa(len(args)))
	}
	if !filter.DateTo.IsZero() {
		args = append(args, filter.DateTo)
		conditions = append(conditions, "b.created_at <= $"+strconv.Itoa(len(args)))
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY b.created_at DESC"

	bookings := []AdminBooking{}
	if err := r.db.SelectContext(ctx, &bookings, query, args...); err != nil {
		return nil, fmt.Errorf("report repository list bookings: %w", err)
	}

	return bookings, nil
}

// ListLotSummaries returns non-deleted lots with actual slot counts
func (r *repository) ListLotSummaries(ctx context.Context) ([]LotSummary, error) {
	query := `
		SELECT p.id, p.name, p.location, p.total_slots, p.price_per_hour,
		       COUNT(s.id) AS actual_slots,
		       COUNT(s.id) FILTER (WHERE s.status = 'available') AS available,
		       COUNT(s.id) FILTER (WHERE s.status = 'occupied') AS occupied
		FROM parking_lots p
		LEFT JOIN parking_slots s ON s.lot_id = p.id
		WHERE p.deleted_at IS NULL
		GROUP BY p.id
		ORDER BY p.name
	`

	lots := []LotSummary{}
	if err := r.db.SelectContext(ctx, &lots, query); err != nil {
		return nil, fmt.Errorf("report repository list lot summaries: %w", err)
	}

	return lots, nil
}

// Charts returns the admin dashboard chart aggregates: revenue by day
// over the last 7 days, bookings by status, occupancy per lot.
func (r *repository) Charts(ctx context.Context) (*ChartData, error) {
	revenue := []RevenuePoint{}
	err := r.db.SelectContext(ctx, &revenue, `
		SELECT TO_CHAR(created_at::date, 'YYYY-MM-DD') AS date,
		       COALESCE(SUM(total_cost), 0) AS revenue
		FROM bookings
		WHERE created_at >= NOW() - INTERVAL '7 days'
		AND status IN ('active', 'completed')
		GROUP BY created_at::date
		ORDER BY date
	`)
	if err != nil {
		return nil, fmt.Errorf("report repository revenue chart: %w", err)
	}

	status := []StatusCount{}
	err = r.db.SelectContext(ctx, &status, `
		SELECT status, COUNT(*) AS count FROM bookings GROUP BY status
	`)
	if err != nil {
		return nil, fmt.Errorf("report repository status chart: %w", err)
	}

	occupancy := []LotOccupancy{}
	err = r.db.SelectContext(ctx, &occupancy, `
		SELECT p.name,
		       COUNT(s.id) AS total,
		       COUNT(s.id) FILTER (WHERE s.status = 'occupied') AS occupied
		FROM parking_lots p
		LEFT JOIN parking_slots s ON s.lot_id = p.id
		WHERE p.deleted_at IS NULL
		GROUP BY p.id, p.name
	`)
	if err != nil {
		return nil, fmt.Errorf("report repository occupancy chart: %w", err)
	}

	return &ChartData{Revenue: revenue, Status: status, Occupancy: occupancy}, nil
}
