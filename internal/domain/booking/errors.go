package booking

import "errors"

var (
	ErrLotNotFound     = errors.New("parking lot not found")
	ErrSlotUnavailable = errors.New("slot is not available")
	ErrBookingNotFound = errors.New("booking not found")
	ErrInvalidDuration = errors.New("booking duration out of bounds")
)
