package hog

import "fmt"

// ConfigError reports invalid constructor parameters. It is returned only by
// New; the caller must reconstruct the extractor with valid parameters.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return "hog: invalid configuration: " + e.Message
}

// InputError reports an invalid image passed to Process or an invalid window
// passed to Retrieve.
type InputError struct {
	Op      string // "process" or "retrieve"
	Message string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("hog: %s: %s", e.Op, e.Message)
}

func configErrorf(format string, args ...interface{}) error {
	return &ConfigError{Message: fmt.Sprintf(format, args...)}
}

func inputErrorf(op, format string, args ...interface{}) error {
	return &InputError{Op: op, Message: fmt.Sprintf(format, args...)}
}
