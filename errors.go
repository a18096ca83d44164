package llparse

import "errors"

// Common errors used throughout the llparse package
var (
	// ErrConfigValidation is returned when configuration validation fails.
	ErrConfigValidation = errors.New("configuration validation failed")
	// ErrInvalidEscapeChar indicates escape_char is not a single character.
	ErrInvalidEscapeChar = errors.New("escape_char must be a single character")
)
