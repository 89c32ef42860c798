// Package dznshell synthesizes a thread-safety boundary ("advanced shell")
// around a component whose ports are described by an external interface model.
//
// For each port of the encapsulated component the user selects a runtime
// execution semantics: passthrough (single-threaded, the caller's thread) or
// dispatched (multi-threaded safe, marshaled through a dispatcher onto its
// own execution context). The library resolves a compact, possibly
// wildcarded configuration into a total semantics assignment, validates it,
// and produces the construction plan of the generated shell: accessors,
// owned port members, event-rerouting bindings and a two-phase
// construct/final-construct protocol.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	dznshell/            Root package re-exporting the common entry points
//	├── model/           Interface/port/event model and JSON ingestion
//	├── config/          Port selectors, semantics policies, presets, YAML
//	├── resolve/         Configuration-to-port semantics resolution
//	├── multiclient/     Claim/release binding for shared provided ports
//	├── synth/           Shell synthesis: plan, instructions, finalization
//	├── render/          Reference text back end for the instruction stream
//	└── cmd/shellgen/    CLI and interactive inspector
//
// # Quick Start
//
// Resolve a configuration and synthesize a shell plan:
//
//	comp, err := model.DecodeComponent(modelJSON)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	cfg, err := config.ProvidesMTSRequiresSTS()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	shell, err := synth.Synthesize(comp, cfg, synth.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := shell.FinalConstruct(); err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println(render.Text(shell.Instructions()))
//
// # Thread Safety
//
// Synthesis is a pure, single-threaded transform; no package here starts
// goroutines or performs I/O beyond explicit Load/Decode entry points. The
// concurrency the plan describes belongs to the generated shell, which
// marshals dispatched-port events through a dispatcher assumed to exist at
// the shell's runtime. This library only decides those marshaling bindings,
// it never executes them.
package dznshell
