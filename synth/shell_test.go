package synth

import (
	"errors"
	"strings"
	"testing"

	"github.com/mikeftrict/dznshell/config"
	"github.com/mikeftrict/dznshell/model"
)

func toasterInterface() *model.Interface {
	return &model.Interface{
		Name: model.ScopedName{"IToaster"},
		Enums: []model.Enum{
			{Name: model.ScopedName{"IToaster", "Result"}, Members: []string{"Ok", "Busy"}},
		},
		Events: []model.Event{
			{Name: "Claim", Direction: model.EventIn, ReturnType: model.EnumRef{Name: model.ScopedName{"Result"}}},
			{Name: "Release", Direction: model.EventIn, ReturnType: model.VoidRef{}},
			{Name: "Toast", Direction: model.EventIn, ReturnType: model.VoidRef{}, Params: []model.Param{
				{Name: "motd", Direction: model.ParamIn, Type: model.ExternRef{Name: model.ScopedName{"MyType"}}},
				{Name: "status", Direction: model.ParamOut, Type: model.ExternRef{Name: model.ScopedName{"Status"}}},
			}},
			{Name: "Done", Direction: model.EventOut, ReturnType: model.VoidRef{}},
		},
	}
}

func powerInterface() *model.Interface {
	return &model.Interface{
		Name: model.ScopedName{"IPower"},
		Events: []model.Event{
			{Name: "On", Direction: model.EventIn, ReturnType: model.VoidRef{}},
			{Name: "Off", Direction: model.EventIn, ReturnType: model.VoidRef{}},
			{Name: "Tripped", Direction: model.EventOut, ReturnType: model.VoidRef{}},
		},
	}
}

func toaster() *model.Component {
	return &model.Component{
		Name: model.ScopedName{"My", "Toaster"},
		Ports: []model.Port{
			{Name: "api", Direction: model.Provides, Interface: toasterInterface()},
			{Name: "cord", Direction: model.Requires, Interface: powerInterface()},
			{Name: "led", Direction: model.Requires, Interface: powerInterface()},
		},
	}
}

func mustPreset(t *testing.T, preset func() (config.PortConfiguration, error)) config.PortConfiguration {
	t.Helper()
	cfg, err := preset()
	if err != nil {
		t.Fatalf("preset: %v", err)
	}
	return cfg
}

func TestSynthesizeStrategies(t *testing.T) {
	tests := []struct {
		name string
		cfg  func() (config.PortConfiguration, error)
		want map[string]AccessorStrategy
	}{
		{
			name: "provides MTS requires STS",
			cfg:  config.ProvidesMTSRequiresSTS,
			want: map[string]AccessorStrategy{"api": StrategyOwned, "cord": StrategyDirect, "led": StrategyDirect},
		},
		{
			name: "all STS",
			cfg:  config.AllSTS,
			want: map[string]AccessorStrategy{"api": StrategyDirect, "cord": StrategyDirect, "led": StrategyDirect},
		},
		{
			name: "all MTS",
			cfg:  config.AllMTS,
			want: map[string]AccessorStrategy{"api": StrategyOwned, "cord": StrategyOwned, "led": StrategyOwned},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shell, err := Synthesize(toaster(), mustPreset(t, tt.cfg), Options{})
			if err != nil {
				t.Fatalf("Synthesize: %v", err)
			}
			for _, pb := range shell.Ports() {
				if want := tt.want[pb.Port.Name]; pb.Strategy != want {
					t.Errorf("port %s strategy = %v, want %v", pb.Port.Name, pb.Strategy, want)
				}
			}
		})
	}
}

func TestSynthesizePortOrder(t *testing.T) {
	shell, err := Synthesize(toaster(), mustPreset(t, config.AllMTS), Options{})
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}

	var order []string
	for _, pb := range shell.Ports() {
		order = append(order, pb.Port.Name)
	}
	want := []string{"api", "cord", "led"}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("port order = %v, want %v (provides first, declaration order)", order, want)
		}
	}
}

func TestSynthesizeConstructionOrdering(t *testing.T) {
	shell, err := Synthesize(toaster(), mustPreset(t, config.AllMTS), Options{})
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}

	instrs := shell.Instructions()
	idxFacilities, idxComponent, idxFirstMember, idxFirstForward := -1, -1, -1, -1
	for i, in := range instrs {
		switch in.(type) {
		case ConstructFacilities:
			idxFacilities = i
		case ConstructComponent:
			idxComponent = i
		case DeclareMember:
			if idxFirstMember < 0 {
				idxFirstMember = i
			}
		case ForwardEvent:
			if idxFirstForward < 0 {
				idxFirstForward = i
			}
		}
	}

	if idxFacilities < 0 || idxComponent < 0 || idxFirstMember < 0 || idxFirstForward < 0 {
		t.Fatalf("plan misses construction steps: %v %v %v %v",
			idxFacilities, idxComponent, idxFirstMember, idxFirstForward)
	}
	if !(idxFacilities < idxComponent && idxComponent < idxFirstMember && idxFirstMember < idxFirstForward) {
		t.Errorf("construction order violated: facilities=%d component=%d member=%d forward=%d",
			idxFacilities, idxComponent, idxFirstMember, idxFirstForward)
	}
}

func TestForwardEventCaptures(t *testing.T) {
	shell, err := Synthesize(toaster(), mustPreset(t, config.ProvidesMTSRequiresSTS), Options{})
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}

	var toast *ForwardEvent
	for _, in := range shell.Instructions() {
		if fe, ok := in.(ForwardEvent); ok && fe.Event == "Toast" {
			toast = &fe
			break
		}
	}
	if toast == nil {
		t.Fatal("no forwarding binding for Toast")
	}
	if len(toast.Captures) != 2 {
		t.Fatalf("Toast captures = %+v, want 2", toast.Captures)
	}
	// In-direction formals cross the dispatch boundary by value, the rest
	// stay by reference.
	if !toast.Captures[0].ByValue || toast.Captures[0].Param != "motd" {
		t.Errorf("capture[0] = %+v, want motd by value", toast.Captures[0])
	}
	if toast.Captures[1].ByValue || toast.Captures[1].Param != "status" {
		t.Errorf("capture[1] = %+v, want status by reference", toast.Captures[1])
	}
}

func TestRequiredPortMirrorBindings(t *testing.T) {
	cfg := mustPreset(t, config.AllMTS)
	shell, err := Synthesize(toaster(), cfg, Options{})
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}

	// Dispatched required ports forward their out-events only.
	var cordEvents []string
	for _, in := range shell.Instructions() {
		if fe, ok := in.(ForwardEvent); ok && fe.Port == "cord" {
			cordEvents = append(cordEvents, fe.Event)
			if fe.Direction != model.EventOut {
				t.Errorf("cord forwarding direction = %v, want out", fe.Direction)
			}
		}
	}
	if len(cordEvents) != 1 || cordEvents[0] != "Tripped" {
		t.Errorf("cord forwarded events = %v, want [Tripped]", cordEvents)
	}
}

func TestFacilityValidation(t *testing.T) {
	tests := []struct {
		name     string
		opts     Options
		facility string
		reason   string
	}{
		{
			"create with pre-existing dispatcher",
			Options{Facilities: config.FacilitiesCreate, Context: FacilityContext{HasDispatcher: true}},
			"dispatcher", "overlapping",
		},
		{
			"create with pre-existing runtime",
			Options{Facilities: config.FacilitiesCreate, Context: FacilityContext{HasRuntime: true}},
			"runtime", "overlapping",
		},
		{
			"import without dispatcher",
			Options{Facilities: config.FacilitiesImport, Context: FacilityContext{HasRuntime: true}},
			"dispatcher", "missing",
		},
		{
			"import without runtime",
			Options{Facilities: config.FacilitiesImport, Context: FacilityContext{HasDispatcher: true}},
			"runtime", "missing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Synthesize(toaster(), mustPreset(t, config.AllMTS), tt.opts)
			if err == nil {
				t.Fatal("Synthesize accepted an invalid facility context")
			}
			var fe *FacilityError
			if !errors.As(err, &fe) {
				t.Fatalf("error type = %T, want *FacilityError", err)
			}
			if fe.Facility != tt.facility || fe.Reason != tt.reason {
				t.Errorf("facility error = %s/%s, want %s/%s", fe.Reason, fe.Facility, tt.reason, tt.facility)
			}
		})
	}
}

func TestFacilityValidOrigins(t *testing.T) {
	if _, err := Synthesize(toaster(), mustPreset(t, config.AllMTS),
		Options{Facilities: config.FacilitiesCreate}); err != nil {
		t.Errorf("create origin with empty context: %v", err)
	}
	if _, err := Synthesize(toaster(), mustPreset(t, config.AllMTS),
		Options{Facilities: config.FacilitiesImport, Context: FacilityContext{HasDispatcher: true, HasRuntime: true}}); err != nil {
		t.Errorf("import origin with full context: %v", err)
	}
}

func multiClientConfig(t *testing.T, port string) config.PortConfiguration {
	t.Helper()
	cfg := mustPreset(t, config.AllMTS)
	policy, err := config.NewMultiClientPolicy(port, "Claim", "Result.Ok", "Release")
	if err != nil {
		t.Fatalf("NewMultiClientPolicy: %v", err)
	}
	cfg, err = cfg.WithMultiClient(policy)
	if err != nil {
		t.Fatalf("WithMultiClient: %v", err)
	}
	return cfg
}

func TestMultiClientSynthesis(t *testing.T) {
	shell, err := Synthesize(toaster(), multiClientConfig(t, "api"), Options{})
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}

	var api *PortBinding
	for _, pb := range shell.Ports() {
		if pb.Port.Name == "api" {
			pb := pb
			api = &pb
		}
	}
	if api == nil || api.Multi == nil {
		t.Fatal("api port is not multi-client bound")
	}
	if api.Strategy != StrategySelector {
		t.Errorf("api strategy = %v, want selector", api.Strategy)
	}

	var (
		claims, releases, rebinds, routes int
		member                            *DeclareMember
	)
	for _, in := range shell.Instructions() {
		switch v := in.(type) {
		case InterceptClaim:
			claims++
			if v.GrantedReply.String() != "IToaster.Result.Ok" {
				t.Errorf("granted reply = %s", v.GrantedReply)
			}
		case InterceptRelease:
			releases++
		case RebindInEvent:
			rebinds++
			if v.Event == "Claim" || v.Event == "Release" {
				t.Errorf("intercepted event %s also generically rebound", v.Event)
			}
		case RouteOutEvent:
			routes++
		case DeclareMember:
			if v.Port == "api" {
				v := v
				member = &v
			}
		}
	}
	if claims != 1 || releases != 1 {
		t.Errorf("claim/release interceptions = %d/%d, want 1/1", claims, releases)
	}
	if rebinds != 1 {
		t.Errorf("generic rebinds = %d, want 1 (Toast)", rebinds)
	}
	if routes != 1 {
		t.Errorf("routed out-events = %d, want 1 (Done)", routes)
	}
	if member == nil || member.Kind != MemberSelector {
		t.Errorf("api member = %+v, want selector kind", member)
	}
}

func TestMultiClientUnmatchedPort(t *testing.T) {
	_, err := Synthesize(toaster(), multiClientConfig(t, "ghost"), Options{})
	if err == nil {
		t.Fatal("Synthesize accepted a multi-client policy naming no provided port")
	}
	var ce *config.ConfigError
	if !errors.As(err, &ce) {
		t.Fatalf("error type = %T, want *config.ConfigError", err)
	}
	if len(ce.Names) != 1 || ce.Names[0] != "ghost" {
		t.Errorf("Names = %v, want [ghost]", ce.Names)
	}
}

func TestMultiClientRequiresDispatched(t *testing.T) {
	cfg := mustPreset(t, config.AllSTS)
	policy, err := config.NewMultiClientPolicy("api", "Claim", "Result.Ok", "Release")
	if err != nil {
		t.Fatalf("NewMultiClientPolicy: %v", err)
	}
	cfg, err = cfg.WithMultiClient(policy)
	if err != nil {
		t.Fatalf("WithMultiClient: %v", err)
	}

	_, err = Synthesize(toaster(), cfg, Options{})
	if err == nil {
		t.Fatal("Synthesize accepted a passthrough multi-client port")
	}
	if !strings.Contains(err.Error(), "dispatched") {
		t.Errorf("error %q does not mention dispatched semantics", err)
	}
}

func TestFinalConstruct(t *testing.T) {
	shell, err := Synthesize(toaster(), mustPreset(t, config.AllMTS), Options{})
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if shell.Finalized() {
		t.Fatal("shell finalized before FinalConstruct")
	}

	if err := shell.FinalConstruct(); err != nil {
		t.Fatalf("FinalConstruct: %v", err)
	}
	if !shell.Finalized() {
		t.Fatal("shell not finalized after FinalConstruct")
	}

	err = shell.FinalConstruct()
	if err == nil {
		t.Fatal("second FinalConstruct succeeded")
	}
	var be *BindingError
	if !errors.As(err, &be) {
		t.Fatalf("error type = %T, want *BindingError", err)
	}
	if !strings.Contains(err.Error(), "already final constructed") {
		t.Errorf("error %q lacks the terminal-state message", err)
	}
}

func TestFinalConstructMissingBinding(t *testing.T) {
	shell, err := Synthesize(toaster(), mustPreset(t, config.AllMTS), Options{})
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}

	// Simulate a boundary port whose forwarding binding never got emitted.
	kept := shell.instrs[:0]
	for _, in := range shell.instrs {
		if fe, ok := in.(ForwardEvent); ok && fe.Port == "cord" && fe.Event == "Tripped" {
			continue
		}
		kept = append(kept, in)
	}
	shell.instrs = kept

	err = shell.FinalConstruct()
	if err == nil {
		t.Fatal("FinalConstruct accepted a missing boundary binding")
	}
	var be *BindingError
	if !errors.As(err, &be) {
		t.Fatalf("error type = %T, want *BindingError", err)
	}
	if be.Port != "cord" || be.Event != "Tripped" {
		t.Errorf("binding error names %s/%s, want cord/Tripped", be.Port, be.Event)
	}
	if shell.Finalized() {
		t.Error("shell finalized despite the binding failure")
	}
}

func TestFinalizationOrdering(t *testing.T) {
	shell, err := Synthesize(toaster(), multiClientConfig(t, "api"), Options{})
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if err := shell.FinalConstruct(); err != nil {
		t.Fatalf("FinalConstruct: %v", err)
	}

	instrs := shell.Instructions()
	idxSelector, idxCheck, idxFirstCopy, idxRecursive := -1, -1, -1, -1
	for i, in := range instrs {
		switch v := in.(type) {
		case FinalizeSelector:
			idxSelector = i
		case CheckBindings:
			if v.Recursive {
				idxRecursive = i
			} else if idxCheck < 0 {
				idxCheck = i
			}
		case CopyFunctors:
			if idxFirstCopy < 0 {
				idxFirstCopy = i
			}
		}
	}

	if idxSelector < 0 || idxCheck < 0 || idxFirstCopy < 0 || idxRecursive < 0 {
		t.Fatalf("finalization steps missing: selector=%d check=%d copy=%d recursive=%d",
			idxSelector, idxCheck, idxFirstCopy, idxRecursive)
	}
	if !(idxSelector < idxCheck && idxCheck < idxFirstCopy && idxFirstCopy < idxRecursive) {
		t.Errorf("finalization order violated: selector=%d check=%d copy=%d recursive=%d",
			idxSelector, idxCheck, idxFirstCopy, idxRecursive)
	}
}

func TestCopyFunctorDirections(t *testing.T) {
	shell, err := Synthesize(toaster(), mustPreset(t, config.AllMTS), Options{})
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if err := shell.FinalConstruct(); err != nil {
		t.Fatalf("FinalConstruct: %v", err)
	}

	for _, in := range shell.Instructions() {
		cf, ok := in.(CopyFunctors)
		if !ok {
			continue
		}
		switch cf.Direction {
		case model.Provides:
			if cf.Functors != model.EventOut {
				t.Errorf("provided port %s copies %v functors, want out", cf.Port, cf.Functors)
			}
		case model.Requires:
			if cf.Functors != model.EventIn {
				t.Errorf("required port %s copies %v functors, want in", cf.Port, cf.Functors)
			}
		}
	}
}

func TestSynthesizeUnresolvedConfiguration(t *testing.T) {
	cfg, err := config.AllMTSMixedSTS([]string{"glue"}, nil)
	if err != nil {
		t.Fatalf("preset: %v", err)
	}

	_, err = Synthesize(toaster(), cfg, Options{})
	if err == nil {
		t.Fatal("Synthesize accepted a configuration naming an unknown port")
	}
	if !strings.Contains(err.Error(), "glue") {
		t.Errorf("error %q does not list the offending port", err)
	}
}
