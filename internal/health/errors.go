package health

import "errors"

var (
	// ErrNotFound is returned when no record exists for a key
	ErrNotFound = errors.New("record not found")
	// ErrDataFormat is returned when a stored record cannot be read into the expected shape
	ErrDataFormat = errors.New("record has unexpected format")
	// ErrStore is returned when the underlying store operation fails
	ErrStore = errors.New("store operation failed")
	// ErrModelUnavailable is returned by scorers that are not loaded or failed to run.
	// It never reaches report callers: prediction degrades to absent instead.
	ErrModelUnavailable = errors.New("risk model unavailable")
)
