package config

import (
	"errors"
	"fmt"
)

// ErrMissingValue is matched by every *MissingError through errors.Is.
var ErrMissingValue = errors.New("missing required configuration value")

// MissingError reports a required entry that has neither an environment value nor a default.
type MissingError struct {
	// Key is the logical schema key.
	Key string
	// Name is the environment variable that was looked up.
	Name string
}

// Error implements the error interface.
func (e *MissingError) Error() string {
	return fmt.Sprintf("config: environment variable '%s' is not set", e.Name)
}

// Is reports whether target is ErrMissingValue.
func (e *MissingError) Is(target error) bool {
	return target == ErrMissingValue
}
