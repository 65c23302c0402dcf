package lot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines lot and slot data access interface
type Repository interface {
	CreateWithSlots(ctx context.Context, lot *ParkingLot) error
	GetByID(ctx context.Context, id uuid.UUID) (*ParkingLot, error)
	GetByIDAny(ctx context.Context, id uuid.UUID) (*ParkingLot, error)
	Update(ctx context.Context, lot *ParkingLot) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Restore(ctx context.Context, id uuid.UUID) error
	ListActive(ctx context.Context, filter ListFilter) ([]LotAvailability, error)
	ListDeleted(ctx context.Context) ([]LotAvailability, error)
	ListAvailableSlots(ctx context.Context, lotID uuid.UUID) ([]ParkingSlot, error)
	SlotMap(ctx context.Context, lotID uuid.UUID) ([]SlotMapEntry, error)
}

// repository implements Repository
type repository struct {
	db *sqlx.DB
}

// NewRepository creates new lot repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// CreateWithSlots inserts a lot and its slots numbered 1..TotalSlots in
// one transaction. Any failure rolls back both.
func (r *repository) CreateWithSlots(ctx context.Context, lot *ParkingLot) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("lot repository begin tx: %w", err)
	}
	defer tx.Rollback()

	insertLot := `
		INSERT INTO parking_lots (id, name, location, total_slots, price_per_hour, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err = tx.ExecContext(ctx, insertLot,
		lot.ID,
		lot.Name,
		lot.Location,
		lot.TotalSlots,
		lot.PricePerHour,
		lot.CreatedAt,
		lot.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("lot repository insert lot: %w", err)
	}

	insertSlot := `
		INSERT INTO parking_slots (id, lot_id, slot_number, status)
		VALUES ($1, $2, $3, $4)
	`
	for n := 1; n <= lot.TotalSlots; n++ {
		_, err = tx.ExecContext(ctx, insertSlot, uuid.New(), lot.ID, n, SlotAvailable)
		if err != nil {
			return fmt.Errorf("lot repository insert slot %d: %w", n, err)
		}
	}

	return tx.Commit()
}

// GetByID returns a lot by ID, excluding soft-deleted
func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*ParkingLot, error) {
	query := `
		SELECT id, name, location, total_slots, price_per_hour, created_at, updated_at, deleted_at
		FROM parking_lots
		WHERE id = $1 AND deleted_at IS NULL
	`

	var lot ParkingLot
	err := r.db.GetContext(ctx, &lot, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &lot, nil
}

// GetByIDAny returns a lot by ID including soft-deleted, used by the
// restore path.
func (r *repository) GetByIDAny(ctx context.Context, id uuid.UUID) (*ParkingLot, error) {
	query := `
		SELECT id, name, location, total_slots, price_per_hour, created_at, updated_at, deleted_at
		FROM parking_lots
		WHERE id = $1
	`

	var lot ParkingLot
	err := r.db.GetContext(ctx, &lot, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &lot, nil
}

// Update writes name, location and price. Slot rows are untouched.
func (r *repository) Update(ctx context.Context, lot *ParkingLot) error {
	query := `
		UPDATE parking_lots
		SET name = $1, location = $2, price_per_hour = $3, updated_at = $4
		WHERE id = $5 AND deleted_at IS NULL
	`

	result, err := r.db.ExecContext(ctx, query,
		lot.Name,
		lot.Location,
		lot.PricePerHour,
		lot.UpdatedAt,
		lot.ID,
	)
	if err != nil {
		return fmt.Errorf("lot repository update: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrLotNotFound
	}

	return nil
}

// SoftDelete marks the lot deleted without removing history
func (r *repository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE parking_lots SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("lot repository soft delete: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrLotNotFound
	}

	return nil
}

// Restore clears the deletion mark
func (r *repository) Restore(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE parking_lots SET deleted_at = NULL WHERE id = $1 AND deleted_at IS NOT NULL`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("lot repository restore: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrLotNotFound
	}

	return nil
}

// ListActive returns non-deleted lots with availability counts. Filter
// fields translate to parameterized predicates.
func (r *repository) ListActive(ctx context.Context, filter ListFilter) ([]LotAvailability, error) {
	query := `
		SELECT p.id, p.name, p.location, p.total_slots, p.price_per_hour,
		       p.created_at, p.updated_at, p.deleted_at,
		       COUNT(s.id) FILTER (WHERE s.status = 'available') AS available_slots,
		       COUNT(s.id) FILTER (WHERE s.status = 'occupied') AS occupied_slots
		FROM parking_lots p
		LEFT JOIN parking_slots s ON s.lot_id = p.id
		WHERE p.deleted_at IS NULL
	`

	var conditions []string
	var args []interface{}

	if filter.Location != "" {
		args = append(args, "%"+filter.Location+"%")
		n := strconv.Itoa(len(args))
		conditions = append(conditions, "(p.name ILIKE $"+n+" OR p.location ILIKE $"+n+")")
	}
	if filter.MaxPrice > 0 {
		args = append(args, filter.MaxPrice)
		conditions = append(conditions, "p.price_per_hour <= $"+strconv.Itoa(len(args)))
	}

	if len(conditions) > 0 {
		query += " AND " + strings.Join(conditions, " AND ")
	}
	query += " GROUP BY p.id"
	if filter.OnlyAvailable {
		query += " HAVING COUNT(s.id) FILTER (WHERE s.status = 'available') > 0"
	}
	query += " ORDER BY p.created_at DESC"

	lots := []LotAvailability{}
	if err := r.db.SelectContext(ctx, &lots, query, args...); err != nil {
		return nil, fmt.Errorf("lot repository list active: %w", err)
	}

	return lots, nil
}

// ListDeleted returns soft-deleted lots newest-deleted-first
func (r *repository) ListDeleted(ctx context.Context) ([]LotAvailability, error) {
	query := `
		SELECT p.id, p.name, p.location, p.total_slots, p.price_per_hour,
		       p.created_at, p.updated_at, p.deleted_at,
		       COUNT(s.id) FILTER (WHERE s.status = 'available') AS available_slots,
		       COUNT(s.id) FILTER (WHERE s.status = 'occupied') AS occupied_slots
		FROM parking_lots p
		LEFT JOIN parking_slots s ON s.lot_id = p.id
		WHERE p.deleted_at IS NOT NULL
		GROUP BY p.id
		ORDER BY p.deleted_at DESC
	`

	lots := []LotAvailability{}
	if err := r.db.SelectContext(ctx, &lots, query); err != nil {
		return nil, fmt.Errorf("lot repository list deleted: %w", err)
	}

	return lots, nil
}

// ListAvailableSlots returns available slots ordered by slot number.
// The ordering decides which slot a user sees first.
func (r *repository) ListAvailableSlots(ctx context.Context, lotID uuid.UUID) ([]ParkingSlot, error) {
	query := `
		SELECT id, lot_id, slot_number, status
		FROM parking_slots
		WHERE lot_id = $1 AND status = 'available'
		ORDER BY slot_number
	`

	slots := []ParkingSlot{}
	if err := r.db.SelectContext(ctx, &slots, query, lotID); err != nil {
		return nil, fmt.Errorf("lot repository list available slots: %w", err)
	}

	return slots, nil
}

// SlotMap returns every slot of the lot joined with its active booking
func (r *repository) SlotMap(ctx context.Context, lotID uuid.UUID) ([]SlotMapEntry, error) {
	query := `
		SELECT s.id, s.slot_number, s.status,
		       b.vehicle_number, b.end_time AS occupied_until
		FROM parking_slots s
		LEFT JOIN bookings b ON b.slot_id = s.id AND b.status = 'active'
		WHERE s.lot_id = $1
		ORDER BY s.slot_number
	`

	entries := []SlotMapEntry{}
	if err := r.db.SelectContext(ctx, &entries, query, lotID); err != nil {
		return nil, fmt.Errorf("lot repository slot map: %w", err)
	}

	return entries, nil
}
