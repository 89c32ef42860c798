package model

import (
	"encoding/json"
	"fmt"
)

// Wire format of a model dump. Interfaces are declared once and referenced
// by name from ports, matching how the upstream model compiler emits them.
type wireModel struct {
	Component  wireComponent   `json:"component"`
	Interfaces []wireInterface `json:"interfaces"`
}

type wireComponent struct {
	Name  string     `json:"name"`
	Ports []wirePort `json:"ports"`
}

type wirePort struct {
	Name      string `json:"name"`
	Direction string `json:"direction"`
	Interface string `json:"interface"`
}

type wireInterface struct {
	Name   string      `json:"name"`
	Enums  []wireEnum  `json:"enums,omitempty"`
	Events []wireEvent `json:"events"`
}

type wireEnum struct {
	Name    string   `json:"name"`
	Members []string `json:"members"`
}

type wireEvent struct {
	Name      string      `json:"name"`
	Direction string      `json:"direction"`
	Returns   *wireType   `json:"returns,omitempty"`
	Params    []wireParam `json:"params,omitempty"`
}

type wireParam struct {
	Name      string   `json:"name"`
	Direction string   `json:"direction,omitempty"`
	Type      wireType `json:"type"`
}

type wireType struct {
	Kind string `json:"kind"` // void, bool, enum, subint, extern
	Name string `json:"name,omitempty"`
}

// DecodeComponent parses a JSON model dump and assembles the component with
// its interfaces resolved. The dump is assumed type-checked upstream; only
// structural referential integrity is verified here.
func DecodeComponent(data []byte) (*Component, error) {
	var w wireModel
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("model: decode: %w", err)
	}
	if w.Component.Name == "" {
		return nil, fmt.Errorf("model: component name missing")
	}

	ifaces := make(map[string]*Interface, len(w.Interfaces))
	for _, wi := range w.Interfaces {
		if wi.Name == "" {
			return nil, fmt.Errorf("model: interface with empty name")
		}
		iface, err := decodeInterface(wi)
		if err != nil {
			return nil, err
		}
		if _, dup := ifaces[wi.Name]; dup {
			return nil, fmt.Errorf("model: interface %q declared twice", wi.Name)
		}
		ifaces[wi.Name] = iface
	}

	comp := &Component{Name: ParseScopedName(w.Component.Name)}
	seen := make(map[string]struct{}, len(w.Component.Ports))
	for _, wp := range w.Component.Ports {
		if wp.Name == "" {
			return nil, fmt.Errorf("model: component %s: port with empty name", comp.Name)
		}
		if _, dup := seen[wp.Name]; dup {
			return nil, fmt.Errorf("model: component %s: port %q declared twice", comp.Name, wp.Name)
		}
		seen[wp.Name] = struct{}{}

		dir, err := parsePortDirection(wp.Direction)
		if err != nil {
			return nil, fmt.Errorf("model: port %q: %w", wp.Name, err)
		}
		iface, ok := ifaces[wp.Interface]
		if !ok {
			return nil, fmt.Errorf("model: port %q references undeclared interface %q", wp.Name, wp.Interface)
		}
		comp.Ports = append(comp.Ports, Port{
			Name:      wp.Name,
			Direction: dir,
			Interface: iface,
		})
	}
	return comp, nil
}

func decodeInterface(wi wireInterface) (*Interface, error) {
	iface := &Interface{Name: ParseScopedName(wi.Name)}

	for _, we := range wi.Enums {
		if we.Name == "" || len(we.Members) == 0 {
			return nil, fmt.Errorf("model: interface %q: malformed enum declaration", wi.Name)
		}
		iface.Enums = append(iface.Enums, Enum{
			Name:    ParseScopedName(we.Name),
			Members: we.Members,
		})
	}

	for _, we := range wi.Events {
		if we.Name == "" {
			return nil, fmt.Errorf("model: interface %q: event with empty name", wi.Name)
		}
		dir, err := parseEventDirection(we.Direction)
		if err != nil {
			return nil, fmt.Errorf("model: interface %q: event %q: %w", wi.Name, we.Name, err)
		}
		ev := Event{Name: we.Name, Direction: dir, ReturnType: VoidRef{}}
		if we.Returns != nil {
			rt, err := decodeTypeRef(*we.Returns)
			if err != nil {
				return nil, fmt.Errorf("model: interface %q: event %q: %w", wi.Name, we.Name, err)
			}
			ev.ReturnType = rt
		}
		for _, wp := range we.Params {
			if wp.Name == "" {
				return nil, fmt.Errorf("model: interface %q: event %q: parameter with empty name", wi.Name, we.Name)
			}
			pd, err := parseParamDirection(wp.Direction)
			if err != nil {
				return nil, fmt.Errorf("model: interface %q: event %q: parameter %q: %w", wi.Name, we.Name, wp.Name, err)
			}
			pt, err := decodeTypeRef(wp.Type)
			if err != nil {
				return nil, fmt.Errorf("model: interface %q: event %q: parameter %q: %w", wi.Name, we.Name, wp.Name, err)
			}
			ev.Params = append(ev.Params, Param{Name: wp.Name, Direction: pd, Type: pt})
		}
		iface.Events = append(iface.Events, ev)
	}
	return iface, nil
}

func decodeTypeRef(w wireType) (TypeRef, error) {
	switch w.Kind {
	case "void", "":
		return VoidRef{}, nil
	case "bool":
		return BoolRef{}, nil
	case "enum":
		if w.Name == "" {
			return nil, fmt.Errorf("enum reference without name")
		}
		return EnumRef{Name: ParseScopedName(w.Name)}, nil
	case "subint":
		if w.Name == "" {
			return nil, fmt.Errorf("subint reference without name")
		}
		return SubintRef{Name: ParseScopedName(w.Name)}, nil
	case "extern":
		if w.Name == "" {
			return nil, fmt.Errorf("extern reference without name")
		}
		return ExternRef{Name: ParseScopedName(w.Name)}, nil
	default:
		return nil, fmt.Errorf("unknown type kind %q", w.Kind)
	}
}

func parsePortDirection(s string) (PortDirection, error) {
	switch s {
	case "provides":
		return Provides, nil
	case "requires":
		return Requires, nil
	default:
		return 0, fmt.Errorf("unknown port direction %q", s)
	}
}

func parseEventDirection(s string) (EventDirection, error) {
	switch s {
	case "in":
		return EventIn, nil
	case "out":
		return EventOut, nil
	default:
		return 0, fmt.Errorf("unknown event direction %q", s)
	}
}

func parseParamDirection(s string) (ParamDirection, error) {
	switch s {
	case "in", "":
		return ParamIn, nil
	case "out":
		return ParamOut, nil
	case "inout":
		return ParamInOut, nil
	default:
		return 0, fmt.Errorf("unknown parameter direction %q", s)
	}
}
