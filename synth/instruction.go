package synth

import (
	"github.com/mikeftrict/dznshell/config"
	"github.com/mikeftrict/dznshell/model"
)

// Instruction is one rendering decision in the synthesized plan. The set
// of implementations is closed; back ends switch exhaustively over it and
// own all literal text and formatting.
type Instruction interface {
	isInstruction()
}

// Banner introduces a plan section.
type Banner struct {
	Section string
}

func (Banner) isInstruction() {}

// ConstructFacilities establishes the shared facilities, first in the
// member-initializer order.
type ConstructFacilities struct {
	Origin config.FacilitiesOrigin
	// Facilities lists what the shell establishes, in order.
	Facilities []string
}

func (ConstructFacilities) isInstruction() {}

// ConstructComponent constructs the encapsulated component with the
// resolved facility context.
type ConstructComponent struct {
	Component model.ScopedName
}

func (ConstructComponent) isInstruction() {}

// MemberKind is the storage form of a dispatched boundary port.
type MemberKind byte

const (
	// MemberOwnedPort is a shell-owned instance of the port type.
	MemberOwnedPort MemberKind = iota + 1
	// MemberSelector is a shell-owned multi-client selector parametrized
	// by the port type.
	MemberSelector
)

// DeclareMember lays out storage for one dispatched boundary port.
// Selector members are constructed with a logging sink, the port's name
// and a factory callback initializing one per-client port instance.
type DeclareMember struct {
	Port      string
	Interface model.ScopedName
	Kind      MemberKind
}

func (DeclareMember) isInstruction() {}

// DeclareAccessor declares the typed accessor for one port.
type DeclareAccessor struct {
	Port      string
	Interface model.ScopedName
	Strategy  AccessorStrategy
}

func (DeclareAccessor) isInstruction() {}

// Capture describes how one formal parameter crosses the dispatch
// boundary. In-direction formals are captured by value so no reference
// dangles once the caller returns; the rest stay by reference.
type Capture struct {
	Param   string
	ByValue bool
}

// ForwardEvent marshals one event through the dispatcher. For a provided
// port the boundary in-event is forwarded into the encapsulated
// component's matching event; for a required port the component's
// out-event is forwarded back to the shell's boundary port.
type ForwardEvent struct {
	Port      string
	Event     string
	Direction model.EventDirection
	Captures  []Capture
}

func (ForwardEvent) isInstruction() {}

// InterceptClaim intercepts the multi-client claim event: the call is
// dispatched as usual and, when the component's reply equals the granting
// value, the originating client becomes the selected one.
type InterceptClaim struct {
	Port         string
	Event        string
	GrantedReply model.ScopedName
}

func (InterceptClaim) isInstruction() {}

// InterceptRelease intercepts the multi-client release event and
// deselects the current client.
type InterceptRelease struct {
	Port  string
	Event string
}

func (InterceptRelease) isInstruction() {}

// RebindInEvent generically rebinds a remaining in-event of the
// multi-client port through the dispatcher.
type RebindInEvent struct {
	Port     string
	Event    string
	Captures []Capture
}

func (RebindInEvent) isInstruction() {}

// RouteOutEvent routes one out-event of the multi-client port to the
// currently selected client only; a no-op when no client is selected.
type RouteOutEvent struct {
	Port  string
	Event string
}

func (RouteOutEvent) isInstruction() {}

// FinalizeSelector locks further client registration on the multi-client
// selector. Emitted first in the finalization phase.
type FinalizeSelector struct {
	Port string
}

func (FinalizeSelector) isInstruction() {}

// CheckBindings verifies that every declared in/out functor of the named
// ports is set. With Recursive set it is the final check on the
// encapsulated component and everything below it.
type CheckBindings struct {
	Ports     []string
	Recursive bool
}

func (CheckBindings) isInstruction() {}

// CopyFunctors copies functors between the shell boundary and the
// encapsulated component. This copy is late on purpose: dispatched-port
// functors are only fully assigned after construction-phase rerouting.
type CopyFunctors struct {
	Port      string
	Direction model.PortDirection
	// Functors selects which set crosses: out-functors for dispatched
	// provided ports, in-functors for dispatched required ports.
	Functors model.EventDirection
}

func (CopyFunctors) isInstruction() {}

// PropagateMetadata propagates parent metadata into the encapsulated
// component before the final recursive check.
type PropagateMetadata struct {
	Component model.ScopedName
}

func (PropagateMetadata) isInstruction() {}
