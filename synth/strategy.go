package synth

import (
	"github.com/mikeftrict/dznshell/config"
	"github.com/mikeftrict/dznshell/model"
)

// AccessorStrategy is the per-port accessor decision.
type AccessorStrategy byte

const (
	// StrategyDirect returns a typed reference directly into the
	// encapsulated component's own port; no additional storage.
	StrategyDirect AccessorStrategy = iota + 1

	// StrategyOwned returns a reference to a shell-owned instance of the
	// port type.
	StrategyOwned

	// StrategySelector returns the arbitrated exclusive sub-view of a
	// shell-owned multi-client selector.
	StrategySelector
)

func (s AccessorStrategy) String() string {
	switch s {
	case StrategyDirect:
		return "direct"
	case StrategyOwned:
		return "owned"
	case StrategySelector:
		return "selector"
	default:
		return "unset"
	}
}

// strategyFor applies the accessor decision table. Only dispatched
// provided ports may be multi-client; a passthrough multi-client port is
// a configuration contradiction.
func strategyFor(port model.Port, sem config.Semantics, multi bool) (AccessorStrategy, error) {
	if multi {
		if sem != config.Dispatched || port.Direction != model.Provides {
			return 0, &config.ConfigError{
				Reason: "multi-client arbitration requires a dispatched provided port",
				Names:  []string{port.Name},
			}
		}
		return StrategySelector, nil
	}

	switch sem {
	case config.Passthrough:
		return StrategyDirect, nil
	case config.Dispatched:
		return StrategyOwned, nil
	default:
		return 0, &config.ConfigError{
			Reason: "port has no resolved semantics",
			Names:  []string{port.Name},
		}
	}
}
