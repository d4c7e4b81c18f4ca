package domain

import "errors"

// Per-item prediction outcomes. These are filtered out silently when
// aggregating across the whole log, and surfaced to the caller when a single
// item was asked about. Only genuine I/O faults are treated as fatal.
var (
	// ErrInsufficientData means fewer than three events exist for the item.
	ErrInsufficientData = errors.New("not enough data for prediction")

	// ErrInvalidData means the usage rate is non-positive or undecidable
	// after filtering non-finite rates. Zero usage is "cannot predict",
	// not "infinite time".
	ErrInvalidData = errors.New("invalid consumption data")

	// ErrNoValidPredictions means no item in the log survived the per-item
	// guards during fleet-wide ranking.
	ErrNoValidPredictions = errors.New("no valid expiry predictions available")

	// ErrItemNotFound means the item has no recorded history at all.
	ErrItemNotFound = errors.New("item not found")
)
