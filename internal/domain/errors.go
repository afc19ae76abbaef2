package domain

import "fmt"

// ConfigurationError reports an invalid portfolio or simulation configuration.
// Configuration errors are raised before any run starts and are never silently
// corrected.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}
