// Package boarderr defines the configuration errors that abort board generation.
// Only two lookups can fail: an unknown chip family and an unsupported flash size.
// Everything else degrades to a default branch.
package boarderr

import (
	"errors"
	"fmt"
)

// Sentinel errors. Match with errors.Is.
var (
	ErrUnknownChip          = errors.New("unknown chip family")
	ErrUnsupportedFlashSize = errors.New("unsupported flash size")
)

// ConfigError records which board input failed a table lookup.
type ConfigError struct {
	Board string // internal board name, empty when not known
	Field string // "chip" or "flash_size"
	Value string
	Err   error
}

func (e *ConfigError) Error() string {
	if e.Board != "" {
		return fmt.Sprintf("board %s: %s %q: %v", e.Board, e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("%s %q: %v", e.Field, e.Value, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// UnknownChip builds the error for a chip family missing from the profile table.
func UnknownChip(family string) error {
	return &ConfigError{Field: "chip", Value: family, Err: ErrUnknownChip}
}

// UnsupportedFlashSize builds the error for a flash size with no partition catalog.
func UnsupportedFlashSize(board string, mb int) error {
	return &ConfigError{Board: board, Field: "flash_size", Value: fmt.Sprintf("%dMB", mb), Err: ErrUnsupportedFlashSize}
}

// WithBoard returns err annotated with the board name when it is a *ConfigError
// that does not carry one yet. Other errors are returned unchanged.
func WithBoard(err error, board string) error {
	var ce *ConfigError
	if errors.As(err, &ce) && ce.Board == "" {
		cp := *ce
		cp.Board = board
		return &cp
	}
	return err
}

// IsConfigError reports whether err is (or wraps) a ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}
