package config

import "errors"

var (
	// ErrInvalidOptionValue reports a malformed raw value for a known option.
	ErrInvalidOptionValue = errors.New("invalid option value")

	// ErrUnknownDefaultsFlag reports an unrecognized token in the
	// ELASTIC_OTEL_DEFAULTS_ENABLED list.
	ErrUnknownDefaultsFlag = errors.New("unknown defaults flag")

	// ErrInvalidDefaultsCombination reports "None" combined with other
	// defaults flags in the same value.
	ErrInvalidDefaultsCombination = errors.New(`defaults flag "None" cannot be combined with other flags`)
)
