// Package synth is the shell synthesizer: it turns a component model plus
// a resolved port configuration into the construction plan of the
// thread-safety boundary around the component.
//
// # Main Types
//
//   - Shell: one synthesis run; created by Synthesize, finalized once by
//     FinalConstruct
//   - PortBinding: per-port decision (semantics, accessor strategy,
//     multi-client binding)
//   - Instruction: closed sum of rendering instructions consumed by a text
//     back end such as the render package
//
// # Two-Phase Protocol
//
// Synthesize corresponds to the generated constructor: facilities are
// validated and established, the encapsulated component is constructed,
// dispatched-port members are laid out and every event-rerouting binding
// is emitted, in an order that is stable across runs (provides before
// requires, declaration order within each). FinalConstruct corresponds to
// the generated finalization: it runs exactly once, checks that every
// boundary event obtained its binding, and emits the late functor copies
// that are only valid after all rerouting exists. A second FinalConstruct
// fails with "already final constructed".
//
// The synthesizer never executes any of this; it only decides and orders
// the instructions.
package synth
