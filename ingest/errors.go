package ingest

import "errors"

var (
	// ErrUnknownFormat is returned for an unrecognized input format name.
	ErrUnknownFormat = errors.New("unknown input format")

	// ErrEmptyInput is returned when the input contains no usable records.
	ErrEmptyInput = errors.New("input contains no usable records")

	// ErrMissingHeader is returned for CSV input without a text column.
	ErrMissingHeader = errors.New("csv header must name a text column")
)
