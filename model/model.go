package model

import (
	"fmt"
	"strings"
)

// ScopedName is a dot-separated qualified name, outermost scope first.
type ScopedName []string

// ParseScopedName splits a dot-separated name. Empty segments are preserved
// so validation can reject them.
func ParseScopedName(s string) ScopedName {
	if s == "" {
		return nil
	}
	return ScopedName(strings.Split(s, "."))
}

func (n ScopedName) String() string {
	return strings.Join(n, ".")
}

// Leaf returns the last segment, or "" for an empty name.
func (n ScopedName) Leaf() string {
	if len(n) == 0 {
		return ""
	}
	return n[len(n)-1]
}

// Scope returns the name without its last segment.
func (n ScopedName) Scope() ScopedName {
	if len(n) == 0 {
		return nil
	}
	return n[:len(n)-1]
}

// Equal compares segment-wise.
func (n ScopedName) Equal(other ScopedName) bool {
	if len(n) != len(other) {
		return false
	}
	for i := range n {
		if n[i] != other[i] {
			return false
		}
	}
	return true
}

// PortDirection distinguishes provided from required ports.
type PortDirection byte

const (
	Provides PortDirection = iota
	Requires
)

func (d PortDirection) String() string {
	switch d {
	case Provides:
		return "provides"
	case Requires:
		return "requires"
	default:
		return fmt.Sprintf("direction(%d)", byte(d))
	}
}

// EventDirection distinguishes in-events (toward the component on a
// provided port) from out-events (emitted by the component).
type EventDirection byte

const (
	EventIn EventDirection = iota
	EventOut
)

func (d EventDirection) String() string {
	switch d {
	case EventIn:
		return "in"
	case EventOut:
		return "out"
	default:
		return fmt.Sprintf("event-direction(%d)", byte(d))
	}
}

// ParamDirection is the direction of a formal parameter.
type ParamDirection byte

const (
	ParamIn ParamDirection = iota
	ParamOut
	ParamInOut
)

func (d ParamDirection) String() string {
	switch d {
	case ParamIn:
		return "in"
	case ParamOut:
		return "out"
	case ParamInOut:
		return "inout"
	default:
		return fmt.Sprintf("param-direction(%d)", byte(d))
	}
}

// TypeRef is the closed set of type references an event signature can carry.
type TypeRef interface {
	isTypeRef()
	String() string
}

// VoidRef is the absent return type.
type VoidRef struct{}

func (VoidRef) isTypeRef()     {}
func (VoidRef) String() string { return "void" }

// BoolRef references the builtin boolean type.
type BoolRef struct{}

func (BoolRef) isTypeRef()     {}
func (BoolRef) String() string { return "bool" }

// EnumRef references an enumerated type declared on the interface.
type EnumRef struct {
	Name ScopedName
}

func (EnumRef) isTypeRef()       {}
func (r EnumRef) String() string { return r.Name.String() }

// SubintRef references a bounded integer type.
type SubintRef struct {
	Name ScopedName
}

func (SubintRef) isTypeRef()       {}
func (r SubintRef) String() string { return r.Name.String() }

// ExternRef references an opaque type defined outside the model.
type ExternRef struct {
	Name ScopedName
}

func (ExternRef) isTypeRef()       {}
func (r ExternRef) String() string { return r.Name.String() }

// Enum is an enumerated type declared by an interface.
type Enum struct {
	Name    ScopedName
	Members []string
}

// HasMember reports whether name is a declared member.
func (e Enum) HasMember(name string) bool {
	for _, m := range e.Members {
		if m == name {
			return true
		}
	}
	return false
}

// Param is one formal parameter of an event.
type Param struct {
	Type      TypeRef
	Name      string
	Direction ParamDirection
}

// Event is one event of an interface, with its declared direction,
// return type and ordered formal parameters.
type Event struct {
	ReturnType TypeRef
	Name       string
	Params     []Param
	Direction  EventDirection
}

// Interface is a named, ordered event list plus the types it declares.
type Interface struct {
	Name   ScopedName
	Events []Event
	Enums  []Enum
}

// Event looks up an event by name over the ordered event list.
// A miss is an error, never a zero Event.
func (i *Interface) Event(name string) (Event, error) {
	for _, ev := range i.Events {
		if ev.Name == name {
			return ev, nil
		}
	}
	return Event{}, fmt.Errorf("interface %s: event %q not found", i.Name, name)
}

// EventsIn returns the in-events in declaration order.
func (i *Interface) EventsIn() []Event {
	return i.eventsByDirection(EventIn)
}

// EventsOut returns the out-events in declaration order.
func (i *Interface) EventsOut() []Event {
	return i.eventsByDirection(EventOut)
}

func (i *Interface) eventsByDirection(d EventDirection) []Event {
	var out []Event
	for _, ev := range i.Events {
		if ev.Direction == d {
			out = append(out, ev)
		}
	}
	return out
}

// ResolveEnum resolves a type reference to one of the interface's declared
// enums. Any other reference kind, and any dangling enum reference, is an
// error: the claim-event binding only supports enumerated return types.
func (i *Interface) ResolveEnum(ref TypeRef) (Enum, error) {
	er, ok := ref.(EnumRef)
	if !ok {
		return Enum{}, fmt.Errorf("interface %s: type %s is not an enumerated type", i.Name, ref)
	}
	for _, e := range i.Enums {
		if e.Name.Equal(er.Name) {
			return e, nil
		}
		// Unqualified references match by leaf name.
		if len(er.Name) == 1 && e.Name.Leaf() == er.Name[0] {
			return e, nil
		}
	}
	return Enum{}, fmt.Errorf("interface %s: enum %s not declared", i.Name, er.Name)
}

// Port is a named, directional instance of an interface on the component
// boundary.
type Port struct {
	Interface *Interface
	Name      string
	Direction PortDirection
}

// Component is the encapsulated component: a name and its boundary ports
// in declaration order.
type Component struct {
	Name  ScopedName
	Ports []Port
}

// Provides returns the provided ports in declaration order.
func (c *Component) Provides() []Port {
	return c.portsByDirection(Provides)
}

// Requires returns the required ports in declaration order.
func (c *Component) Requires() []Port {
	return c.portsByDirection(Requires)
}

func (c *Component) portsByDirection(d PortDirection) []Port {
	var out []Port
	for _, p := range c.Ports {
		if p.Direction == d {
			out = append(out, p)
		}
	}
	return out
}

// Port looks up a port by name. A miss is an error.
func (c *Component) Port(name string) (Port, error) {
	for _, p := range c.Ports {
		if p.Name == name {
			return p, nil
		}
	}
	return Port{}, fmt.Errorf("component %s: port %q not found", c.Name, name)
}

// PortNames returns the names of all ports with the given direction,
// in declaration order.
func (c *Component) PortNames(d PortDirection) []string {
	var names []string
	for _, p := range c.Ports {
		if p.Direction == d {
			names = append(names, p.Name)
		}
	}
	return names
}
