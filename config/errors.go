// Package config reads the YAML input document (family topology plus
// reduction targets) and lowers it to family.Spec and driver.ReduceSpec,
// performing the key/arity validation spec.md §6 requires.
package config

import (
	"errors"
	"fmt"
)

// ErrConfig is the sentinel every malformed-document error wraps.
var ErrConfig = errors.New("config: invalid document")

// ConfigError is a malformed-input error: a missing key, an arity
// mismatch, or an unparsable document. Undeclared or colliding symbols
// are not checked here; family.New reports those with its own errors.
// Always wraps ErrConfig, so callers can test with
// errors.Is(err, config.ErrConfig).
type ConfigError struct {
	msg string
	err error
}

func (e *ConfigError) Error() string { return e.msg }
func (e *ConfigError) Unwrap() error { return e.err }

func newConfigError(format string, args ...any) error {
	return &ConfigError{msg: fmt.Sprintf("config: "+format, args...), err: ErrConfig}
}
