package report

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/parkeasy/parkeasy-api/internal/pkg/storage"
)

// Service handles admin reporting. Everything here reads booking and
// lot state; nothing mutates it.
type Service struct {
	repo    Repository
	archive *storage.S3Storage // nil if export archival disabled
}

// NewService creates report service
func NewService(repo Repository, archive *storage.S3Storage) *Service {
	return &Service{repo: repo, archive: archive}
}

// Dashboard returns the admin stats, per-lot summaries and charts
func (s *Service) Dashboard(ctx context.Context) (*Stats, []LotSummary, *ChartData, error) {
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, nil, nil, err
	}

	lots, err := s.repo.ListLotSummaries(ctx)
	if err != nil {
		return nil, nil, nil, err
	}

	charts, err := s.repo.Charts(ctx)
	if err != nil {
		return nil, nil, nil, err
	}

	return stats, lots, charts, nil
}

// Bookings returns the filtered admin booking listing
func (s *Service) Bookings(ctx context.Context, filter BookingFilter) ([]AdminBooking, error) {
	return s.repo.ListBookings(ctx, filter)
}

// Charts returns the chart aggregates alone
func (s *Service) Charts(ctx context.Context) (*ChartData, error) {
	return s.repo.Charts(ctx)
}

// Export renders a CSV export and returns its filename and contents.
// When an archive bucket is configured a copy is uploaded under
// exports/; an upload failure is logged and does not fail the export.
func (s *Service) Export(ctx context.Context, exportType string) (string, []byte, error) {
	var (
		data []byte
		err  error
	)

	switch exportType {
	case ExportLots:
		var lots []LotSummary
		lots, err = s.repo.ListLotSummaries(ctx)
		if err == nil {
			data, err = LotsCSV(lots)
		}
	case ExportBookings:
		var bookings []AdminBooking
		bookings, err = s.repo.ListBookings(ctx, BookingFilter{})
		if err == nil {
			data, err = BookingsCSV(bookings)
		}
	default:
		return "", nil, fmt.Errorf("unknown export type %q", exportType)
	}
	if err != nil {
		return "", nil, err
	}

	filename := ExportFilename(exportType, time.Now())

	if s.archive != nil {
		key := "exports/" + filename
		if err := s.archive.Put(ctx, key, data, "text/csv"); err != nil {
			log.Error().Err(err).Str("key", key).Msg("failed to archive export")
		}
	}

	return filename, data, nil
}
