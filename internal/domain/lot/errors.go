package lot

import "errors"

var (
	ErrLotNotFound = errors.New("parking lot not found")
)
