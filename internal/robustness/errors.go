package robustness

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrNoCompetitors is returned by the encoder for single-label networks.
	ErrNoCompetitors = errors.New("network has a single output label, no competitor to encode")
)

// ConfigurationError reports a query that cannot be posed at all. It is
// raised before any solver call.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s: %s", e.Field, e.Reason)
}

func configErrorf(field, format string, args ...interface{}) error {
	return &ConfigurationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

func IsConfigurationError(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}

// EngineError wraps an abnormal termination of the solving backend.
type EngineError struct {
	Err error
}

func (e *EngineError) Error() string {
	return "engine error: " + e.Err.Error()
}

func (e *EngineError) Unwrap() error {
	return e.Err
}
