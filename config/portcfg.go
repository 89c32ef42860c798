package config

import (
	"fmt"

	"github.com/mikeftrict/dznshell/model"
)

// MultiClientPolicy configures claim/release arbitration on one provided
// port: several logical clients share the port, and the one whose claim
// event returned the granting reply value holds exclusive access until it
// sends the release event.
type MultiClientPolicy struct {
	port         string
	claimEvent   string
	grantedReply model.ScopedName
	releaseEvent string
}

// NewMultiClientPolicy validates and builds a multi-client policy.
// The granting reply value is a qualified enum-value reference such as
// "Result.Ok".
func NewMultiClientPolicy(port, claimEvent, grantedReply, releaseEvent string) (MultiClientPolicy, error) {
	switch {
	case port == "":
		return MultiClientPolicy{}, &MultiClientConfigError{Reason: "port name must be set"}
	case claimEvent == "":
		return MultiClientPolicy{}, &MultiClientConfigError{Port: port, Reason: "claim event name must be set"}
	case releaseEvent == "":
		return MultiClientPolicy{}, &MultiClientConfigError{Port: port, Reason: "release event name must be set"}
	}

	reply := model.ParseScopedName(grantedReply)
	if len(reply) < 2 {
		return MultiClientPolicy{}, &MultiClientConfigError{
			Port:   port,
			Event:  claimEvent,
			Reason: fmt.Sprintf("claim-granting reply %q must be a qualified enum value", grantedReply),
		}
	}
	for _, seg := range reply {
		if seg == "" {
			return MultiClientPolicy{}, &MultiClientConfigError{
				Port:   port,
				Event:  claimEvent,
				Reason: fmt.Sprintf("claim-granting reply %q contains an empty segment", grantedReply),
			}
		}
	}

	return MultiClientPolicy{
		port:         port,
		claimEvent:   claimEvent,
		grantedReply: reply,
		releaseEvent: releaseEvent,
	}, nil
}

// Port returns the configured provided-port name.
func (p MultiClientPolicy) Port() string { return p.port }

// ClaimEvent returns the claim event name.
func (p MultiClientPolicy) ClaimEvent() string { return p.claimEvent }

// GrantedReply returns the qualified enum value granting a claim.
func (p MultiClientPolicy) GrantedReply() model.ScopedName { return p.grantedReply }

// ReleaseEvent returns the release event name.
func (p MultiClientPolicy) ReleaseEvent() string { return p.releaseEvent }

// PortConfiguration combines the provides-side and requires-side policies
// with an optional multi-client policy. Construct with NewPortConfiguration.
type PortConfiguration struct {
	provides    SemanticsPolicy
	requires    SemanticsPolicy
	multiClient *MultiClientPolicy
}

// NewPortConfiguration validates the cross-policy constraints and builds
// the combined configuration.
func NewPortConfiguration(provides, requires SemanticsPolicy) (PortConfiguration, error) {
	if !provides.valid() || !requires.valid() {
		return PortConfiguration{}, &ConfigError{Reason: "both direction policies must be constructed"}
	}

	// Mixed explicit assignment within the provides direction is
	// unsupported: naming some provided ports dispatched and others
	// passthrough in the same configuration has no generated-code shape.
	pd := explicitNames(provides.Dispatched())
	pp := explicitNames(provides.Passthrough())
	if len(pd) > 0 && len(pp) > 0 {
		return PortConfiguration{}, &ConfigError{
			Label:  "provides",
			Reason: "mixing explicit dispatched and explicit passthrough port sets is unsupported",
		}
	}

	return PortConfiguration{provides: provides, requires: requires}, nil
}

// WithMultiClient returns a copy of the configuration carrying the given
// multi-client policy. At most one policy is carried; setting a second one
// is an error.
func (c PortConfiguration) WithMultiClient(p MultiClientPolicy) (PortConfiguration, error) {
	if c.multiClient != nil {
		return PortConfiguration{}, &ConfigError{Reason: "multi-client policy already set"}
	}
	if p.port == "" {
		return PortConfiguration{}, &ConfigError{Reason: "multi-client policy not constructed"}
	}
	c.multiClient = &p
	return c, nil
}

// Provides returns the provides-side policy.
func (c PortConfiguration) Provides() SemanticsPolicy { return c.provides }

// Requires returns the requires-side policy.
func (c PortConfiguration) Requires() SemanticsPolicy { return c.requires }

// MultiClient returns the multi-client policy, or nil when none is set.
func (c PortConfiguration) MultiClient() *MultiClientPolicy {
	if c.multiClient == nil {
		return nil
	}
	cp := *c.multiClient
	return &cp
}

// FacilitiesOrigin selects where the generated shell obtains its shared
// facilities (dispatcher, runtime, locator).
type FacilitiesOrigin byte

const (
	// FacilitiesCreate makes the shell construct its own dispatcher and
	// runtime; the supplied context must not already carry them.
	FacilitiesCreate FacilitiesOrigin = iota

	// FacilitiesImport makes the shell use dispatcher and runtime found in
	// the supplied context; both must already be present.
	FacilitiesImport
)

func (o FacilitiesOrigin) String() string {
	switch o {
	case FacilitiesCreate:
		return "create"
	case FacilitiesImport:
		return "import"
	default:
		return fmt.Sprintf("facilities-origin(%d)", byte(o))
	}
}
