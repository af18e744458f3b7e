package config

import "fmt"

// ConfigurationError reports a config file or environment value that could
// not be used.
type ConfigurationError struct {
	// Source is the file path or environment variable name.
	Source  string
	Message string
	Err     error
}

// Error implements the error interface
func (ce *ConfigurationError) Error() string {
	if ce.Err != nil {
		return fmt.Sprintf("invalid configuration in %s: %s: %v", ce.Source, ce.Message, ce.Err)
	}
	return fmt.Sprintf("invalid configuration in %s: %s", ce.Source, ce.Message)
}

// Unwrap returns the underlying error.
func (ce *ConfigurationError) Unwrap() error {
	return ce.Err
}
