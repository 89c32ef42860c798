package synth

import (
	"go.uber.org/zap"

	"github.com/mikeftrict/dznshell/config"
	"github.com/mikeftrict/dznshell/model"
	"github.com/mikeftrict/dznshell/multiclient"
	"github.com/mikeftrict/dznshell/resolve"
)

// FacilityContext describes what the caller-supplied context already
// carries when the shell is constructed.
type FacilityContext struct {
	HasDispatcher bool
	HasRuntime    bool
}

// Options configures one synthesis run.
type Options struct {
	// Facilities selects the facility origin (create by default).
	Facilities config.FacilitiesOrigin
	// Context is validated against the facility origin.
	Context FacilityContext
}

// PortBinding is the synthesis-time decision for one port. It is built
// during the single pass over the component's ports and consumed by
// rendering; nothing outside the owning Shell retains it.
type PortBinding struct {
	Port      model.Port
	Semantics config.Semantics
	Strategy  AccessorStrategy
	// Multi is set only on the multi-client-bound port.
	Multi *multiclient.Binding
}

type shellState byte

const (
	stateConstructed shellState = iota + 1
	stateFinalConstructed
)

// Shell is one synthesis run: the resolved semantics, per-port bindings
// and the ordered instruction stream. Synthesize leaves it in the
// constructed state; FinalConstruct moves it to its terminal state.
type Shell struct {
	comp     *model.Component
	resolved resolve.ResolvedSemantics
	ports    []PortBinding
	multi    *multiclient.Binding
	instrs   []Instruction
	state    shellState
}

// Synthesize resolves the configuration against the component and builds
// the construction phase of the shell plan. Any validation failure aborts
// the run before any instruction survives.
func Synthesize(comp *model.Component, cfg config.PortConfiguration, opts Options) (*Shell, error) {
	resolved, err := resolve.Semantics(cfg, comp.PortNames(model.Provides), comp.PortNames(model.Requires))
	if err != nil {
		return nil, err
	}

	multi, err := bindMultiClient(cfg, comp, resolved)
	if err != nil {
		return nil, err
	}

	s := &Shell{comp: comp, resolved: resolved, multi: multi}
	if err := s.bindPorts(); err != nil {
		return nil, err
	}
	if err := s.emitConstruction(opts); err != nil {
		return nil, err
	}

	s.state = stateConstructed
	Logger().Debug("shell constructed",
		zap.String("component", comp.Name.String()),
		zap.Int("ports", len(s.ports)),
		zap.Bool("multi_client", multi != nil))
	return s, nil
}

// bindMultiClient binds the policy, when present, against the provided
// ports. Exactly one provided port must bind it; a policy naming no
// actual provided port is a configuration error.
func bindMultiClient(cfg config.PortConfiguration, comp *model.Component, resolved resolve.ResolvedSemantics) (*multiclient.Binding, error) {
	policy := cfg.MultiClient()
	if policy == nil {
		return nil, nil
	}

	var bound *multiclient.Binding
	for _, p := range comp.Provides() {
		b, err := multiclient.Bind(*policy, p.Name, p.Interface)
		if err != nil {
			return nil, err
		}
		if b != nil {
			bound = b
		}
	}
	if bound == nil {
		return nil, &config.ConfigError{
			Reason: "multi-client port not found among the provided ports",
			Names:  []string{policy.Port()},
		}
	}

	if sem, _ := resolved.Of(bound.Port); sem != config.Dispatched {
		return nil, &config.ConfigError{
			Reason: "multi-client port must have dispatched semantics",
			Names:  []string{bound.Port},
		}
	}
	return bound, nil
}

// bindPorts runs the single pass over all ports: provides before
// requires, declaration order within each.
func (s *Shell) bindPorts() error {
	for _, p := range append(s.comp.Provides(), s.comp.Requires()...) {
		sem, ok := s.resolved.Of(p.Name)
		if !ok {
			// resolve.Semantics guarantees totality; a miss here means the
			// component changed between resolution and binding.
			return &config.ConfigError{
				Reason: "port has no resolved semantics",
				Names:  []string{p.Name},
			}
		}

		isMulti := s.multi != nil && s.multi.Port == p.Name
		strategy, err := strategyFor(p, sem, isMulti)
		if err != nil {
			return err
		}

		pb := PortBinding{Port: p, Semantics: sem, Strategy: strategy}
		if isMulti {
			pb.Multi = s.multi
		}
		s.ports = append(s.ports, pb)
	}
	return nil
}

// emitConstruction validates the facilities and emits the construction
// phase in member-initializer order: facilities, component, dispatched
// members, accessors, event rerouting.
func (s *Shell) emitConstruction(opts Options) error {
	if err := validateFacilities(opts); err != nil {
		return err
	}

	s.emit(Banner{Section: "Facilities"})
	facilities := []string{"locator"}
	if opts.Facilities == config.FacilitiesCreate {
		facilities = []string{"dispatcher", "runtime", "locator"}
	}
	s.emit(ConstructFacilities{Origin: opts.Facilities, Facilities: facilities})

	s.emit(Banner{Section: "Encapsulated component"})
	s.emit(ConstructComponent{Component: s.comp.Name})

	s.emit(Banner{Section: "Boundary members"})
	for _, pb := range s.ports {
		if pb.Semantics != config.Dispatched {
			continue
		}
		kind := MemberOwnedPort
		if pb.Multi != nil {
			kind = MemberSelector
		}
		s.emit(DeclareMember{Port: pb.Port.Name, Interface: pb.Port.Interface.Name, Kind: kind})
	}

	s.emit(Banner{Section: "Accessors"})
	for _, pb := range s.ports {
		s.emit(DeclareAccessor{Port: pb.Port.Name, Interface: pb.Port.Interface.Name, Strategy: pb.Strategy})
	}

	s.emit(Banner{Section: "Event rerouting"})
	for _, pb := range s.ports {
		switch {
		case pb.Multi != nil:
			s.emitMultiClient(pb)
		case pb.Semantics == config.Dispatched && pb.Port.Direction == model.Provides:
			for _, ev := range pb.Port.Interface.EventsIn() {
				s.emit(ForwardEvent{
					Port:      pb.Port.Name,
					Event:     ev.Name,
					Direction: model.EventIn,
					Captures:  captures(ev),
				})
			}
		case pb.Semantics == config.Dispatched && pb.Port.Direction == model.Requires:
			for _, ev := range pb.Port.Interface.EventsOut() {
				s.emit(ForwardEvent{
					Port:      pb.Port.Name,
					Event:     ev.Name,
					Direction: model.EventOut,
					Captures:  captures(ev),
				})
			}
		}
	}
	return nil
}

// emitMultiClient emits the arbitrated rerouting of the multi-client
// port: claim/release interception, generic rebinding of the remaining
// in-events, and selected-client-only routing of every out-event.
func (s *Shell) emitMultiClient(pb PortBinding) {
	mb := pb.Multi
	s.emit(InterceptClaim{Port: pb.Port.Name, Event: mb.Claim.Name, GrantedReply: mb.GrantedReply})
	s.emit(InterceptRelease{Port: pb.Port.Name, Event: mb.Release.Name})

	for _, ev := range pb.Port.Interface.EventsIn() {
		if ev.Name == mb.Claim.Name || ev.Name == mb.Release.Name {
			continue
		}
		s.emit(RebindInEvent{Port: pb.Port.Name, Event: ev.Name, Captures: captures(ev)})
	}
	for _, ev := range pb.Port.Interface.EventsOut() {
		s.emit(RouteOutEvent{Port: pb.Port.Name, Event: ev.Name})
	}
}

// FinalConstruct runs the finalization phase exactly once: selector
// lock-down first, then the structural binding check, then the late
// functor copies and the recursive component check. A second call fails
// with "already final constructed".
func (s *Shell) FinalConstruct() error {
	if s.state == stateFinalConstructed {
		return &BindingError{Reason: "already final constructed"}
	}

	if err := s.checkBoundaryBindings(); err != nil {
		return err
	}

	s.emit(Banner{Section: "Finalization"})
	if s.multi != nil {
		s.emit(FinalizeSelector{Port: s.multi.Port})
	}

	var boundary []string
	for _, pb := range s.ports {
		if pb.Semantics == config.Dispatched {
			boundary = append(boundary, pb.Port.Name)
		}
	}
	s.emit(CheckBindings{Ports: boundary})

	for _, pb := range s.ports {
		if pb.Semantics != config.Dispatched {
			continue
		}
		switch pb.Port.Direction {
		case model.Provides:
			s.emit(CopyFunctors{Port: pb.Port.Name, Direction: model.Provides, Functors: model.EventOut})
		case model.Requires:
			s.emit(CopyFunctors{Port: pb.Port.Name, Direction: model.Requires, Functors: model.EventIn})
		}
	}

	s.emit(PropagateMetadata{Component: s.comp.Name})
	s.emit(CheckBindings{Ports: []string{s.comp.Name.String()}, Recursive: true})

	s.state = stateFinalConstructed
	Logger().Debug("shell final constructed", zap.String("component", s.comp.Name.String()))
	return nil
}

// checkBoundaryBindings verifies that every event of every dispatched
// port received its construction-phase rerouting instruction. The functor
// copies of finalization are only valid once that holds.
func (s *Shell) checkBoundaryBindings() error {
	type key struct{ port, event string }
	bound := make(map[key]struct{})
	for _, in := range s.instrs {
		switch v := in.(type) {
		case ForwardEvent:
			bound[key{v.Port, v.Event}] = struct{}{}
		case InterceptClaim:
			bound[key{v.Port, v.Event}] = struct{}{}
		case InterceptRelease:
			bound[key{v.Port, v.Event}] = struct{}{}
		case RebindInEvent:
			bound[key{v.Port, v.Event}] = struct{}{}
		case RouteOutEvent:
			bound[key{v.Port, v.Event}] = struct{}{}
		}
	}

	for _, pb := range s.ports {
		if pb.Semantics != config.Dispatched {
			continue
		}
		for _, ev := range requiredBindings(pb) {
			if _, ok := bound[key{pb.Port.Name, ev}]; !ok {
				return &BindingError{Port: pb.Port.Name, Event: ev, Reason: "boundary event not bound"}
			}
		}
	}
	return nil
}

// requiredBindings lists the events a dispatched port must have rerouted:
// in-events for provides, out-events for requires, and additionally every
// out-event on the multi-client port.
func requiredBindings(pb PortBinding) []string {
	var events []string
	switch {
	case pb.Multi != nil:
		for _, ev := range pb.Port.Interface.Events {
			events = append(events, ev.Name)
		}
	case pb.Port.Direction == model.Provides:
		for _, ev := range pb.Port.Interface.EventsIn() {
			events = append(events, ev.Name)
		}
	default:
		for _, ev := range pb.Port.Interface.EventsOut() {
			events = append(events, ev.Name)
		}
	}
	return events
}

// Instructions returns the instruction stream emitted so far. The slice
// is a copy; the stream is complete once FinalConstruct succeeded.
func (s *Shell) Instructions() []Instruction {
	out := make([]Instruction, len(s.instrs))
	copy(out, s.instrs)
	return out
}

// Ports returns the per-port bindings in plan order (provides before
// requires, declaration order within each).
func (s *Shell) Ports() []PortBinding {
	out := make([]PortBinding, len(s.ports))
	copy(out, s.ports)
	return out
}

// Finalized reports whether the shell reached its terminal state.
func (s *Shell) Finalized() bool {
	return s.state == stateFinalConstructed
}

func (s *Shell) emit(in Instruction) {
	s.instrs = append(s.instrs, in)
}

// validateFacilities checks the origin-specific preconditions up front:
// a creating shell must not find facilities already in the context, an
// importing shell must find both.
func validateFacilities(opts Options) error {
	switch opts.Facilities {
	case config.FacilitiesCreate:
		if opts.Context.HasDispatcher {
			return &FacilityError{Origin: opts.Facilities, Facility: "dispatcher", Reason: "overlapping"}
		}
		if opts.Context.HasRuntime {
			return &FacilityError{Origin: opts.Facilities, Facility: "runtime", Reason: "overlapping"}
		}
	case config.FacilitiesImport:
		if !opts.Context.HasDispatcher {
			return &FacilityError{Origin: opts.Facilities, Facility: "dispatcher", Reason: "missing"}
		}
		if !opts.Context.HasRuntime {
			return &FacilityError{Origin: opts.Facilities, Facility: "runtime", Reason: "missing"}
		}
	}
	return nil
}

// captures computes the dispatch-boundary capture list of an event:
// in-direction formals by value, out/inout by reference.
func captures(ev model.Event) []Capture {
	var caps []Capture
	for _, p := range ev.Params {
		caps = append(caps, Capture{Param: p.Name, ByValue: p.Direction == model.ParamIn})
	}
	return caps
}
