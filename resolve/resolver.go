package resolve

import (
	"sort"

	"github.com/mikeftrict/dznshell/config"
)

// ResolvedSemantics is the total mapping from port name to resolved
// semantics. It is produced once per synthesis run and immutable
// afterwards.
type ResolvedSemantics struct {
	m map[string]config.Semantics
}

// Of returns the semantics resolved for a port.
func (r ResolvedSemantics) Of(name string) (config.Semantics, bool) {
	s, ok := r.m[name]
	return s, ok
}

// Len returns the number of resolved ports.
func (r ResolvedSemantics) Len() int { return len(r.m) }

// All returns a copy of the full mapping.
func (r ResolvedSemantics) All() map[string]config.Semantics {
	out := make(map[string]config.Semantics, len(r.m))
	for k, v := range r.m {
		out[k] = v
	}
	return out
}

// Dispatched returns the names of all dispatched ports, sorted.
func (r ResolvedSemantics) Dispatched() []string {
	return r.withSemantics(config.Dispatched)
}

// Passthrough returns the names of all passthrough ports, sorted.
func (r ResolvedSemantics) Passthrough() []string {
	return r.withSemantics(config.Passthrough)
}

func (r ResolvedSemantics) withSemantics(want config.Semantics) []string {
	var names []string
	for name, sem := range r.m {
		if sem == want {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Semantics resolves the configuration against the component's actual
// provided and required port names. The result covers every given name;
// any port left unresolved by its direction's policy fails with a
// ConfigError naming the direction and the uncovered ports. That cannot
// happen for real component port sets resolved by a validated
// configuration, but it is checked here rather than silently ignored.
func Semantics(cfg config.PortConfiguration, providesPorts, requiresPorts []string) (ResolvedSemantics, error) {
	provided, err := cfg.Provides().Resolve(providesPorts, "provides")
	if err != nil {
		return ResolvedSemantics{}, err
	}
	required, err := cfg.Requires().Resolve(requiresPorts, "requires")
	if err != nil {
		return ResolvedSemantics{}, err
	}

	merged := make(map[string]config.Semantics, len(provided)+len(required))
	for name, sem := range provided {
		merged[name] = sem
	}
	for name, sem := range required {
		merged[name] = sem
	}

	if err := checkTotal(merged, providesPorts, "provides"); err != nil {
		return ResolvedSemantics{}, err
	}
	if err := checkTotal(merged, requiresPorts, "requires"); err != nil {
		return ResolvedSemantics{}, err
	}

	return ResolvedSemantics{m: merged}, nil
}

func checkTotal(merged map[string]config.Semantics, ports []string, label string) error {
	var missing []string
	for _, name := range ports {
		if _, ok := merged[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return &config.ConfigError{
			Label:  label,
			Reason: "ports not covered by the configuration",
			Names:  missing,
		}
	}
	return nil
}
