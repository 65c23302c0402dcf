package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines booking data access. Every state transition runs
// as one transaction so slot status and booking status never disagree.
type Repository interface {
	Reserve(ctx context.Context, b *Booking) error
	Cancel(ctx context.Context, bookingID, userID uuid.UUID) error
	ForceRelease(ctx context.Context, slotID uuid.UUID) error
	ExpireDue(ctx context.Context, now time.Time) (int, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	ListByUser(ctx context.Context, userID uuid.UUID, filter ListFilter) ([]BookingDetail, error)
}

// repository implements Repository
type repository struct {
	db *sqlx.DB
}

// NewRepository creates new booking repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) beginTx(ctx context.Context) (*sqlx.Tx, error) {
	return r.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
}

// lockSlot takes the row lock that serializes racing reservations on
// the same slot.
func (r *repository) lockSlot(ctx context.Context, tx *sqlx.Tx, slotID uuid.UUID) (lotID uuid.UUID, status string, err error) {
	row := struct {
		LotID  uuid.UUID `db:"lot_id"`
		Status string    `db:"status"`
	}{}
	err = tx.GetContext(ctx, &row, `
		SELECT lot_id, status FROM parking_slots WHERE id = $1 FOR UPDATE
	`, slotID)
	if errors.Is(err, sql.ErrNoRows) {
		return uuid.Nil, "", ErrSlotUnavailable
	}
	if err != nil {
		return uuid.Nil, "", err
	}
	return row.LotID, row.Status, nil
}

func (r *repository) setSlotStatus(ctx context.Context, tx *sqlx.Tx, slotID uuid.UUID, status string) error {
	_, err := tx.ExecContext(ctx, `UPDATE parking_slots SET status = $1 WHERE id = $2`, status, slotID)
	return err
}

// Reserve inserts an active booking and occupies its slot. The slot is
// re-checked under the row lock so only one of two racing reservations
// wins; the loser gets ErrSlotUnavailable.
func (r *repository) Reserve(ctx context.Context, b *Booking) error {
	tx, err := r.beginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	lotID, status, err := r.lockSlot(ctx, tx, b.SlotID)
	if err != nil {
		return err
	}
	if lotID != b.LotID || status != "available" {
		return ErrSlotUnavailable
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO bookings (id, user_id, lot_id, slot_id, vehicle_number, vehicle_type,
		                      start_time, end_time, total_cost, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`,
		b.ID, b.UserID, b.LotID, b.SlotID, b.VehicleNumber, b.VehicleType,
		b.StartTime, b.EndTime, b.TotalCost, b.Status, b.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("booking repository insert: %w", err)
	}

	if err := r.setSlotStatus(ctx, tx, b.SlotID, "occupied"); err != nil {
		return err
	}

	return tx.Commit()
}

// Cancel transitions an active booking owned by the user to cancelled
// and frees its slot. Not-found, not-yours and already-terminal all
// surface as ErrBookingNotFound.
func (r *repository) Cancel(ctx context.Context, bookingID, userID uuid.UUID) error {
	tx, err := r.beginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var slotID uuid.UUID
	err = tx.GetContext(ctx, &slotID, `
		SELECT slot_id FROM bookings
		WHERE id = $1 AND user_id = $2 AND status = 'active'
	`, bookingID, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrBookingNotFound
	}
	if err != nil {
		return err
	}

	// Slot lock comes first, same order as Reserve and ForceRelease.
	if _, _, err := r.lockSlot(ctx, tx, slotID); err != nil {
		return err
	}

	// Re-checked under the slot lock; a concurrent force release or
	// expiry sweep may have closed the booking since the read above.
	res, err := tx.ExecContext(ctx, `
		UPDATE bookings SET status = 'cancelled'
		WHERE id = $1 AND user_id = $2 AND status = 'active'
	`, bookingID, userID)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrBookingNotFound
	}

	if err := r.setSlotStatus(ctx, tx, slotID, "available"); err != nil {
		return err
	}

	return tx.Commit()
}

// ForceRelease cancels any active booking on the slot and sets the
// slot available regardless. The unconditional free makes this a
// repair tool for a slot stuck occupied with no matching booking.
func (r *repository) ForceRelease(ctx context.Context, slotID uuid.UUID) error {
	tx, err := r.beginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var exists bool
	err = tx.GetContext(ctx, &exists, `SELECT true FROM parking_slots WHERE id = $1 FOR UPDATE`, slotID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrBookingNotFound
	}
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE bookings SET status = 'cancelled' WHERE slot_id = $1 AND status = 'active'
	`, slotID); err != nil {
		return err
	}
	if err := r.setSlotStatus(ctx, tx, slotID, "available"); err != nil {
		return err
	}

	return tx.Commit()
}

// ExpireDue closes out every active booking whose end time has passed
// and frees its slot. Running it again with nothing newly expired is a
// no-op; the returned count is for diagnostics.
func (r *repository) ExpireDue(ctx context.Context, now time.Time) (int, error) {
	tx, err := r.beginTx(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	slotIDs := []uuid.UUID{}
	err = tx.SelectContext(ctx, &slotIDs, `
		UPDATE bookings SET status = 'expired'
		WHERE status = 'active' AND end_time < $1
		RETURNING slot_id
	`, now)
	if err != nil {
		return 0, fmt.Errorf("booking repository expire: %w", err)
	}

	if len(slotIDs) > 0 {
		query, args, err := sqlx.In(`UPDATE parking_slots SET status = 'available' WHERE id IN (?)`, slotIDs)
		if err != nil {
			return 0, err
		}
		if _, err := tx.ExecContext(ctx, r.db.Rebind(query), args...); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(slotIDs), nil
}

// GetByID returns a booking by ID
func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	query := `
		SELECT id, user_id, lot_id, slot_id, vehicle_number, vehicle_type,
		       start_time, end_time, total_cost, status, created_at
		FROM bookings
		WHERE id = $1
	`

	var b Booking
	err := r.db.GetContext(ctx, &b, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &b, nil
}

// ListByUser returns the user's bookings newest-first with lot and
// slot display fields. Filter fields become parameterized predicates.
func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID, filter ListFilter) ([]BookingDetail, error) {
	query := `
		SELECT b.id, b.user_id, b.lot_id, b.slot_id, b.vehicle_number, b.vehicle_type,
		       b.start_time, b.end_time, b.total_cost, b.status, b.created_at,
		       p.name AS lot_name, p.location, s.slot_number
		FROM bookings b
		JOIN parking_lots p ON p.id = b.lot_id
		JOIN parking_slots s ON s.id = b.slot_id
		WHERE b.user_id = $1
	`

	args := []interface{}{userID}
	var conditions []string

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
		query += " AND " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY b.created_at DESC"

	bookings := []BookingDetail{}
	if err := r.db.SelectContext(ctx, &bookings, query, args...); err != nil {
		return nil, fmt.Errorf("booking repository list by user: %w", err)
	}

	return bookings, nil
}
