package config

import (
	"fmt"
	"strings"
)

// ConfigurationError reports a malformed or semantically invalid
// configuration. It is always fatal to the load or validation attempt
// that produced it.
type ConfigurationError struct {
	Message    string
	Violations []string
}

func (e *ConfigurationError) Error() string {
	if len(e.Violations) == 0 {
		return e.Message
	}
	var b strings.Builder
	b.WriteString(e.Message)
	for _, violation := range e.Violations {
		b.WriteString("\n- ")
		b.WriteString(violation)
	}
	return b.String()
}

func newConfigError(format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Message: fmt.Sprintf(format, args...)}
}
