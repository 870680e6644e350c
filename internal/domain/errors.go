package domain

import "errors"

// Render pass failures. All three abort the pass before anything is drawn.
var (
	// ErrTransport is returned when the source could not be fetched or
	// answered with a non-success status.
	ErrTransport = errors.New("transport error")

	// ErrFormat is returned when the payload is not a list of row objects.
	ErrFormat = errors.New("format error")

	// ErrEmptyInput is returned when sanitization leaves no rows, or when an
	// aggregate that needs at least one record is given none.
	ErrEmptyInput = errors.New("empty input")
)
