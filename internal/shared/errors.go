package shared

import "fmt"

var (
	// Record errors
	ErrValidation   = fmt.Errorf("validation failed")
	ErrNotFound     = fmt.Errorf("record not found")
	ErrNotConfirmed = fmt.Errorf("deletion not confirmed")

	// Storage errors
	ErrCorruptCollection = fmt.Errorf("collection is unreadable")
	ErrUnknownCollection = fmt.Errorf("unknown collection")
	ErrUnsupportedFormat = fmt.Errorf("unsupported format")

	// Configuration errors
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
