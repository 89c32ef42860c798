package config

import (
	"strings"
)

// ConfigError reports a structurally invalid or self-contradictory
// configuration, detected at construction or resolution time.
type ConfigError struct {
	Label  string   // direction or context tag, e.g. "provides"
	Reason string   // what is wrong
	Names  []string // offending port names, sorted
}

func (e *ConfigError) Error() string {
	var b strings.Builder
	b.WriteString("port configuration")

	if e.Label != "" {
		b.WriteString(" [")
		b.WriteString(e.Label)
		b.WriteByte(']')
	}

	b.WriteString(": ")
	b.WriteString(e.Reason)

	if len(e.Names) > 0 {
		b.WriteString(": ")
		b.WriteString(strings.Join(e.Names, ", "))
	}

	return b.String()
}

// MultiClientConfigError reports a claim/release event or reply-value
// binding failure against a provided port's interface.
type MultiClientConfigError struct {
	Port   string // configured multi-client port name
	Event  string // offending event name, if any
	Reason string
}

func (e *MultiClientConfigError) Error() string {
	var b strings.Builder
	b.WriteString("multi-client configuration")

	if e.Port != "" {
		b.WriteString(" [port ")
		b.WriteString(e.Port)
		b.WriteByte(']')
	}

	b.WriteString(": ")

	if e.Event != "" {
		b.WriteString("event ")
		b.WriteString(e.Event)
		b.WriteString(": ")
	}

	b.WriteString(e.Reason)
	return b.String()
}
