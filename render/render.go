package render

import (
	"fmt"
	"strings"

	"github.com/mikeftrict/dznshell/model"
	"github.com/mikeftrict/dznshell/synth"
)

// Text renders the instruction stream to C++-flavored shell code.
func Text(instrs []synth.Instruction) string {
	var r renderer
	for _, in := range instrs {
		r.instruction(in)
	}
	return r.b.String()
}

type renderer struct {
	b strings.Builder
}

func (r *renderer) linef(format string, args ...any) {
	fmt.Fprintf(&r.b, format, args...)
	r.b.WriteByte('\n')
}

func (r *renderer) instruction(in synth.Instruction) {
	switch v := in.(type) {
	case synth.Banner:
		r.linef("")
		r.linef("// ----- %s -----", v.Section)
	case synth.ConstructFacilities:
		r.linef("// facilities origin: %s", v.Origin)
		for _, f := range v.Facilities {
			r.linef("facilities.%s()", f)
		}
	case synth.ConstructComponent:
		r.linef("%s component{facilities.locator()}", cpp(v.Component))
	case synth.DeclareMember:
		switch v.Kind {
		case synth.MemberOwnedPort:
			r.linef("%s %s", cpp(v.Interface), member(v.Port))
		case synth.MemberSelector:
			r.linef("MultiClientSelector<%s> %s{log, %q, [&](ClientId id) { return initializePort(id); }}",
				cpp(v.Interface), member(v.Port), v.Port)
		}
	case synth.DeclareAccessor:
		switch v.Strategy {
		case synth.StrategyDirect:
			r.linef("%s& %s() { return component.%s; }", cpp(v.Interface), v.Port, v.Port)
		case synth.StrategyOwned:
			r.linef("%s& %s() { return %s; }", cpp(v.Interface), v.Port, member(v.Port))
		case synth.StrategySelector:
			r.linef("%s& %s(ClientId id) { return %s.select(id); }", cpp(v.Interface), v.Port, member(v.Port))
		}
	case synth.ForwardEvent:
		if v.Direction == model.EventIn {
			r.linef("%s.in.%s = [%s] { return dispatch([&] { return component.%s.in.%s(%s); }); }",
				member(v.Port), v.Event, captureList(v.Captures), v.Port, v.Event, paramList(v.Captures))
		} else {
			r.linef("component.%s.out.%s = [%s] { dispatch([&] { %s.out.%s(%s); }); }",
				v.Port, v.Event, captureList(v.Captures), member(v.Port), v.Event, paramList(v.Captures))
		}
	case synth.InterceptClaim:
		r.linef("%s.in.%s = [&](ClientId id) { auto reply = dispatch(component.%s.in.%s); if (reply == %s) %s.select(id); return reply; }",
			member(v.Port), v.Event, v.Port, v.Event, cpp(v.GrantedReply), member(v.Port))
	case synth.InterceptRelease:
		r.linef("%s.in.%s = [&](ClientId id) { dispatch(component.%s.in.%s); %s.deselect(id); }",
			member(v.Port), v.Event, v.Port, v.Event, member(v.Port))
	case synth.RebindInEvent:
		r.linef("%s.in.%s = [%s] { return dispatch([&] { return component.%s.in.%s(%s); }); }",
			member(v.Port), v.Event, captureList(v.Captures), v.Port, v.Event, paramList(v.Captures))
	case synth.RouteOutEvent:
		r.linef("component.%s.out.%s = [&] { if (auto* c = %s.selected()) c->out.%s(); }",
			v.Port, v.Event, member(v.Port), v.Event)
	case synth.FinalizeSelector:
		r.linef("%s.finalize()", member(v.Port))
	case synth.CheckBindings:
		if v.Recursive {
			r.linef("component.check_bindings() // recursive")
		} else {
			r.linef("check_bindings(%s)", strings.Join(v.Ports, ", "))
		}
	case synth.CopyFunctors:
		r.linef("component.%s.%s = %s.%s", v.Port, functorSet(v.Functors), member(v.Port), functorSet(v.Functors))
	case synth.PropagateMetadata:
		r.linef("component.dzn_meta.parent = &dzn_meta // %s", cpp(v.Component))
	}
}

func member(port string) string {
	return "m_" + port
}

func functorSet(d model.EventDirection) string {
	if d == model.EventIn {
		return "in"
	}
	return "out"
}

// cpp joins a scoped name with the C++ scope resolution operator.
func cpp(n model.ScopedName) string {
	return strings.Join(n, "::")
}

// captureList renders the lambda capture clause: by-value copies for
// in-direction formals, references for the rest.
func captureList(caps []synth.Capture) string {
	parts := []string{"&"}
	for _, c := range caps {
		if c.ByValue {
			parts = append(parts, c.Param)
		}
	}
	return strings.Join(parts, ", ")
}

func paramList(caps []synth.Capture) string {
	var parts []string
	for _, c := range caps {
		parts = append(parts, c.Param)
	}
	return strings.Join(parts, ", ")
}
