package config

import (
	"sort"
)

// Semantics is the runtime-execution semantics resolved for one port.
type Semantics byte

const (
	// Dispatched (MTS): events are marshaled through a dispatcher so
	// calls execute serialized on a designated execution context.
	Dispatched Semantics = iota + 1

	// Passthrough (STS): no additional marshaling; caller and callee
	// share an execution context.
	Passthrough
)

func (s Semantics) String() string {
	switch s {
	case Dispatched:
		return "MTS"
	case Passthrough:
		return "STS"
	default:
		return "unset"
	}
}

// SemanticsPolicy pairs a dispatched and a passthrough selector for one
// port direction. Construct with NewSemanticsPolicy; the zero value is not
// usable.
type SemanticsPolicy struct {
	dispatched  PortSelector
	passthrough PortSelector
}

// NewSemanticsPolicy validates and builds a policy for one direction.
// The two selectors must not be structurally equal, explicit members must
// be disjoint, and the All wildcard on either side conflicts with any
// positive selection on the other.
func NewSemanticsPolicy(dispatched, passthrough PortSelector) (SemanticsPolicy, error) {
	if dispatched == nil || passthrough == nil {
		return SemanticsPolicy{}, &ConfigError{Reason: "both selectors must be set"}
	}

	// Equality and overlap are checked independently: two wildcards can be
	// equal without sharing members, and the original configuration
	// validation reported the two conditions distinctly.
	if SelectorsEqual(dispatched, passthrough) {
		return SemanticsPolicy{}, &ConfigError{Reason: "dispatched and passthrough selectors are identical"}
	}

	if overlap := intersect(explicitNames(dispatched), explicitNames(passthrough)); len(overlap) > 0 {
		return SemanticsPolicy{}, &ConfigError{
			Reason: "dispatched and passthrough selectors overlap",
			Names:  overlap,
		}
	}

	if dispatched.IsWildcardAll() && passthrough.IsNonEmpty() {
		return SemanticsPolicy{}, &ConfigError{Reason: "dispatched selects all ports, passthrough must select none"}
	}
	if passthrough.IsWildcardAll() && dispatched.IsNonEmpty() {
		return SemanticsPolicy{}, &ConfigError{Reason: "passthrough selects all ports, dispatched must select none"}
	}

	return SemanticsPolicy{dispatched: dispatched, passthrough: passthrough}, nil
}

// Dispatched returns the dispatched-side selector.
func (p SemanticsPolicy) Dispatched() PortSelector { return p.dispatched }

// Passthrough returns the passthrough-side selector.
func (p SemanticsPolicy) Passthrough() PortSelector { return p.passthrough }

// valid reports whether the policy was built by NewSemanticsPolicy.
func (p SemanticsPolicy) valid() bool {
	return p.dispatched != nil && p.passthrough != nil
}

// Resolve decides the semantics of every port in expectedPorts. Match
// priority: explicit on dispatched, explicit on passthrough, wildcard on
// dispatched, wildcard on passthrough. Ports matching neither selector are
// absent from the result; the caller treats them as unresolved.
//
// Every explicitly named port absent from expectedPorts fails resolution
// up front with a ConfigError listing the offenders, tagged with label.
func (p SemanticsPolicy) Resolve(expectedPorts []string, label string) (map[string]Semantics, error) {
	if !p.valid() {
		return nil, &ConfigError{Label: label, Reason: "policy not constructed"}
	}

	expected := make(map[string]struct{}, len(expectedPorts))
	for _, name := range expectedPorts {
		expected[name] = struct{}{}
	}

	var unmatched []string
	for _, sel := range []PortSelector{p.dispatched, p.passthrough} {
		for _, name := range explicitNames(sel) {
			if _, ok := expected[name]; !ok {
				unmatched = append(unmatched, name)
			}
		}
	}
	if len(unmatched) > 0 {
		sort.Strings(unmatched)
		return nil, &ConfigError{
			Label:  label,
			Reason: "explicitly configured ports not present on the component",
			Names:  unmatched,
		}
	}

	result := make(map[string]Semantics, len(expectedPorts))
	for _, name := range expectedPorts {
		sem, matched, err := p.decide(name)
		if err != nil {
			return nil, err
		}
		if matched {
			result[name] = sem
		}
	}
	return result, nil
}

func (p SemanticsPolicy) decide(name string) (Semantics, bool, error) {
	type step struct {
		sel PortSelector
		sem Semantics
		fn  func(PortSelector, string) (bool, error)
	}
	explicit := func(s PortSelector, n string) (bool, error) { return s.MatchesExplicit(n) }
	wildcard := func(s PortSelector, n string) (bool, error) { return s.MatchesWildcard(n) }

	for _, st := range []step{
		{p.dispatched, Dispatched, explicit},
		{p.passthrough, Passthrough, explicit},
		{p.dispatched, Dispatched, wildcard},
		{p.passthrough, Passthrough, wildcard},
	} {
		ok, err := st.fn(st.sel, name)
		if err != nil {
			return 0, false, err
		}
		if ok {
			return st.sem, true, nil
		}
	}
	return 0, false, nil
}

// intersect returns the sorted intersection of two sorted name slices.
func intersect(a, b []string) []string {
	var out []string
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			i++
		case a[i] > b[j]:
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	return out
}
