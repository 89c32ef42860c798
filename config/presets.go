package config

// Presets are pure factory functions: each call composes and validates a
// fresh PortConfiguration, with no shared state between calls.

// AllMTS dispatches every port, provided and required.
func AllMTS() (PortConfiguration, error) {
	return symmetric(All, None)
}

// AllSTS leaves every port passthrough.
func AllSTS() (PortConfiguration, error) {
	return symmetric(None, All)
}

// ProvidesMTSRequiresSTS dispatches all provided ports and leaves all
// required ports passthrough.
func ProvidesMTSRequiresSTS() (PortConfiguration, error) {
	provides, err := NewSemanticsPolicy(All, None)
	if err != nil {
		return PortConfiguration{}, err
	}
	requires, err := NewSemanticsPolicy(None, All)
	if err != nil {
		return PortConfiguration{}, err
	}
	return NewPortConfiguration(provides, requires)
}

// ProvidesSTSRequiresMTS leaves all provided ports passthrough and
// dispatches all required ports.
func ProvidesSTSRequiresMTS() (PortConfiguration, error) {
	provides, err := NewSemanticsPolicy(None, All)
	if err != nil {
		return PortConfiguration{}, err
	}
	requires, err := NewSemanticsPolicy(All, None)
	if err != nil {
		return PortConfiguration{}, err
	}
	return NewPortConfiguration(provides, requires)
}

// AllMTSMixedSTS dispatches every port except the named passthrough
// subsets. An empty subset means the whole direction is dispatched.
func AllMTSMixedSTS(providesSTS, requiresSTS []string) (PortConfiguration, error) {
	provides, err := mixedPolicy(providesSTS)
	if err != nil {
		return PortConfiguration{}, err
	}
	requires, err := mixedPolicy(requiresSTS)
	if err != nil {
		return PortConfiguration{}, err
	}
	return NewPortConfiguration(provides, requires)
}

// AllSTSMixedMTS is the mirror preset: passthrough everywhere except the
// named dispatched subsets.
func AllSTSMixedMTS(providesMTS, requiresMTS []string) (PortConfiguration, error) {
	provides, err := mixedPolicyMTS(providesMTS)
	if err != nil {
		return PortConfiguration{}, err
	}
	requires, err := mixedPolicyMTS(requiresMTS)
	if err != nil {
		return PortConfiguration{}, err
	}
	return NewPortConfiguration(provides, requires)
}

func symmetric(dispatched, passthrough PortSelector) (PortConfiguration, error) {
	provides, err := NewSemanticsPolicy(dispatched, passthrough)
	if err != nil {
		return PortConfiguration{}, err
	}
	requires, err := NewSemanticsPolicy(dispatched, passthrough)
	if err != nil {
		return PortConfiguration{}, err
	}
	return NewPortConfiguration(provides, requires)
}

// mixedPolicy builds "dispatched everywhere but these passthrough names".
func mixedPolicy(passthroughNames []string) (SemanticsPolicy, error) {
	if len(passthroughNames) == 0 {
		return NewSemanticsPolicy(All, None)
	}
	set, err := NewExplicitSet(passthroughNames...)
	if err != nil {
		return SemanticsPolicy{}, err
	}
	return NewSemanticsPolicy(Remaining, set)
}

// mixedPolicyMTS builds "passthrough everywhere but these dispatched names".
func mixedPolicyMTS(dispatchedNames []string) (SemanticsPolicy, error) {
	if len(dispatchedNames) == 0 {
		return NewSemanticsPolicy(None, All)
	}
	set, err := NewExplicitSet(dispatchedNames...)
	if err != nil {
		return SemanticsPolicy{}, err
	}
	return NewSemanticsPolicy(set, Remaining)
}
