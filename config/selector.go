package config

import (
	"fmt"
	"sort"
	"strings"
)

// PortSelector designates "which ports" either as an explicit named set or
// as one of three wildcards. The set of implementations is closed:
// ExplicitSet and Wildcard are the only two kinds.
type PortSelector interface {
	isPortSelector()

	// IsWildcardAll reports whether the selector is the All wildcard.
	IsWildcardAll() bool

	// IsNonEmpty reports whether the selector can match anything at all:
	// true for any explicit set and for any wildcard except None.
	IsNonEmpty() bool

	// MatchesExplicit reports whether name is an explicit member.
	// Wildcards never match explicitly. Fails on an empty name.
	MatchesExplicit(name string) (bool, error)

	// MatchesWildcard reports whether name is matched by wildcarding.
	// Explicit sets never match by wildcard. Fails on an empty name.
	MatchesWildcard(name string) (bool, error)

	String() string
}

// ExplicitSet selects a fixed, non-empty set of port names. Construction
// dedupes and sorts, so two sets built from the same names in any order
// are equal.
type ExplicitSet struct {
	names []string // sorted, deduplicated, no empty strings
}

// NewExplicitSet builds an explicit selector from one or more port names.
func NewExplicitSet(names ...string) (ExplicitSet, error) {
	if len(names) == 0 {
		return ExplicitSet{}, &ConfigError{Reason: "explicit port set must not be empty"}
	}
	seen := make(map[string]struct{}, len(names))
	sorted := make([]string, 0, len(names))
	for _, n := range names {
		if n == "" {
			return ExplicitSet{}, &ConfigError{Reason: "explicit port set contains an empty name"}
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		sorted = append(sorted, n)
	}
	sort.Strings(sorted)
	return ExplicitSet{names: sorted}, nil
}

// MustExplicitSet is NewExplicitSet for statically known names; it panics
// on invalid input and is intended for preset construction and tests.
func MustExplicitSet(names ...string) ExplicitSet {
	s, err := NewExplicitSet(names...)
	if err != nil {
		panic(err)
	}
	return s
}

func (ExplicitSet) isPortSelector() {}

func (ExplicitSet) IsWildcardAll() bool { return false }

func (ExplicitSet) IsNonEmpty() bool { return true }

func (s ExplicitSet) MatchesExplicit(name string) (bool, error) {
	if name == "" {
		return false, &ConfigError{Reason: "cannot match an empty port name"}
	}
	i := sort.SearchStrings(s.names, name)
	return i < len(s.names) && s.names[i] == name, nil
}

func (s ExplicitSet) MatchesWildcard(name string) (bool, error) {
	if name == "" {
		return false, &ConfigError{Reason: "cannot match an empty port name"}
	}
	return false, nil
}

// Names returns the member names, sorted. The returned slice is a copy.
func (s ExplicitSet) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

func (s ExplicitSet) String() string {
	return "{" + strings.Join(s.names, ", ") + "}"
}

// Wildcard selects ports without naming them.
type Wildcard byte

const (
	// All selects every port of the direction.
	All Wildcard = iota
	// Remaining selects every port not claimed by the paired selector.
	Remaining
	// None selects nothing.
	None
)

func (Wildcard) isPortSelector() {}

func (w Wildcard) IsWildcardAll() bool { return w == All }

func (w Wildcard) IsNonEmpty() bool { return w != None }

func (w Wildcard) MatchesExplicit(name string) (bool, error) {
	if name == "" {
		return false, &ConfigError{Reason: "cannot match an empty port name"}
	}
	return false, nil
}

func (w Wildcard) MatchesWildcard(name string) (bool, error) {
	if name == "" {
		return false, &ConfigError{Reason: "cannot match an empty port name"}
	}
	return w == All || w == Remaining, nil
}

func (w Wildcard) String() string {
	switch w {
	case All:
		return "*"
	case Remaining:
		return "remaining"
	case None:
		return "none"
	default:
		return fmt.Sprintf("wildcard(%d)", byte(w))
	}
}

// SelectorsEqual reports structural equality of two selectors: same kind,
// and for explicit sets the same member names.
func SelectorsEqual(a, b PortSelector) bool {
	switch av := a.(type) {
	case ExplicitSet:
		bv, ok := b.(ExplicitSet)
		if !ok || len(av.names) != len(bv.names) {
			return false
		}
		for i := range av.names {
			if av.names[i] != bv.names[i] {
				return false
			}
		}
		return true
	case Wildcard:
		bv, ok := b.(Wildcard)
		return ok && av == bv
	default:
		return false
	}
}

// explicitNames returns the member names of an explicit selector, or nil
// for wildcards.
func explicitNames(s PortSelector) []string {
	if es, ok := s.(ExplicitSet); ok {
		return es.names
	}
	return nil
}
