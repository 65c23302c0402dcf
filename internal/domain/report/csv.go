package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"
)

// Export types accepted by /admin/export-csv
const (
	ExportBookings = "bookings"
	ExportLots     = "lots"
)

const exportTimeLayout = "2006-01-02 15:04:05"

// BookingCSVHeaders are the fixed columns of a bookings export
var BookingCSVHeaders = []string{
	"ID", "Username", "Email", "Parking Lot", "Location", "Slot",
	"Vehicle Number", "Vehicle Type", "Start Time", "End Time", "Cost", "Status",
}

// LotCSVHeaders are the fixed columns of a lots export
var LotCSVHeaders = []string{
	"ID", "Name", "Location", "Total Slots", "Price/Hour",
	"Actual Slots", "Available", "Occupied",
}

// BookingsCSV renders the bookings export
func BookingsCSV(bookings []AdminBooking) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(BookingCSVHeaders); err != nil {
		return nil, err
	}

	for i := range bookings {
		b := &bookings[i]
		record := []string{
			b.ID.String(),
			b.Username,
			b.Email,
			b.LotName,
			b.Location,
			fmt.Sprintf("%d", b.SlotNumber),
			b.VehicleNumber,
			b.VehicleType,
			b.StartTime.Format(exportTimeLayout),
			b.EndTime.Format(exportTimeLayout),
			fmt.Sprintf("%.2f", b.TotalCost),
			b.Status,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}

// LotsCSV renders the lots export
func LotsCSV(lots []LotSummary) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(LotCSVHeaders); err != nil {
		return nil, err
	}

	for i := range lots {
		l := &lots[i]
		record := []string{
			l.ID.String(),
			l.Name,
			l.Location,
			fmt.Sprintf("%d", l.TotalSlots),
			fmt.Sprintf("%.2f", l.PricePerHour),
			fmt.Sprintf("%d", l.ActualSlots),
			fmt.Sprintf("%d", l.Available),
			fmt.Sprintf("%d", l.Occupied),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}

// ExportFilename builds the timestamped attachment name
func ExportFilename(exportType string, now time.Time) string {
	stamp := now.Format("20060102_150405")
	if exportType == ExportLots {
		return fmt.Sprintf("parking_lots_export_%s.csv", stamp)
	}
	return fmt.Sprintf("bookings_export_%s.csv", stamp)
}
