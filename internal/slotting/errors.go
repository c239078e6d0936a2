package slotting

import "errors"

var (
	// ErrDataUnavailable indicates that a collaborator fetch failed or the
	// warehouse snapshot is unusable (e.g. zero storage locations). The
	// analyzer does not guess defaults for missing catalogs.
	ErrDataUnavailable = errors.New("slotting: warehouse data unavailable")

	// ErrInvalidStrategy indicates a simulation strategy with missing fields
	// or percentages/weights outside their valid range.
	ErrInvalidStrategy = errors.New("slotting: invalid strategy")
)
