package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Input errors
	ErrUnsupportedFormat = errors.New("unsupported input format")
	ErrMalformedRecord   = errors.New("malformed input record")
	ErrInvalidTimestamp  = fmt.Errorf("%w: timestamp", ErrMalformedRecord)
	ErrInvalidDimension  = fmt.Errorf("%w: dimension value", ErrMalformedRecord)
)

// NewMalformedRecordError reports a bad record at a 1-based row/index.
func NewMalformedRecordError(index int, err error) error {
	return fmt.Errorf("record %d: %w", index, err)
}

// IsInputError reports whether err came from reading or decoding input.
func IsInputError(err error) bool {
	return errors.Is(err, ErrUnsupportedFormat) ||
		errors.Is(err, ErrMalformedRecord)
}
