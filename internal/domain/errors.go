package domain

import "errors"

// ErrNotFound is returned by service functions when the addressed item does
// not exist (unknown id, or a day/item/flight index out of range).
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing item name, split count outside 1..5).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrDecode is returned when a stored slot or an imported backup code is not
// well-formed JSON of the expected shape.
// Load recovers from it with the caller's default; ImportAll surfaces it.
var ErrDecode = errors.New("decode error")

// ErrIntegrity is returned when a decoded value is well-formed but fails a
// shape check. Only the flights slot has one (at least two entries).
var ErrIntegrity = errors.New("integrity error")

// ErrUnavailable is returned when the durable store rejects a write
// (disk full, read-only file system, closed database).
// The in-memory change is kept; handlers should map this to HTTP 503.
var ErrUnavailable = errors.New("storage unavailable")

// ErrInvalidRange is returned by DayCount when either date does not parse or
// the end date is before the start date.
var ErrInvalidRange = errors.New("invalid date range")
