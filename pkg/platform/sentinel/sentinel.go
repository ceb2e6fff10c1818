// Package sentinel holds the facts registry stores report about their data.
// Stores wrap these with context; the service decides what each one means to
// a caller. Input validation never uses them.
package sentinel

import "errors"

var (
	// ErrNotFound means no contribution or update record exists under the id.
	ErrNotFound = errors.New("not found")
	// ErrHashIndexed means the data hash already has an entry in the hash index.
	ErrHashIndexed = errors.New("data hash already indexed")
	// ErrIDConflict means a contribution already occupies the id being inserted.
	ErrIDConflict = errors.New("contribution id conflict")
	// ErrUnavailable means the backing database could not be reached.
	ErrUnavailable = errors.New("store unavailable")
)
