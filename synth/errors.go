package synth

import (
	"strings"

	"github.com/mikeftrict/dznshell/config"
)

// FacilityError reports overlapping or missing shared facilities detected
// while validating the construction phase.
type FacilityError struct {
	Origin   config.FacilitiesOrigin
	Facility string // "dispatcher" or "runtime"
	Reason   string // "overlapping" or "missing"
}

func (e *FacilityError) Error() string {
	var b strings.Builder
	b.WriteString("facility validation [origin ")
	b.WriteString(e.Origin.String())
	b.WriteString("]: ")
	b.WriteString(e.Reason)
	b.WriteByte(' ')
	b.WriteString(e.Facility)
	return b.String()
}

// BindingError reports an unset boundary binding detected at finalization,
// or a finalization attempted after the shell reached its terminal state.
type BindingError struct {
	Port   string // offending port, if any
	Event  string // offending event, if any
	Reason string
}

func (e *BindingError) Error() string {
	var b strings.Builder
	b.WriteString("shell binding")

	if e.Port != "" {
		b.WriteString(" [port ")
		b.WriteString(e.Port)
		if e.Event != "" {
			b.WriteString(", event ")
			b.WriteString(e.Event)
		}
		b.WriteByte(']')
	}

	b.WriteString(": ")
	b.WriteString(e.Reason)
	return b.String()
}
