// Package model holds the in-memory interface model the shell synthesizer
// reasons about: components, ports, interfaces, events and their formal
// parameters, plus the enumerated and extern types an interface declares.
//
// # Main Types
//
//   - Component: the encapsulated component with its provided/required ports
//   - Interface: an ordered event list plus declared types, with indexed
//     name lookup that fails fast instead of returning a zero value
//   - Event, Param: directional event signatures
//   - TypeRef: closed sum of the type references an event can carry
//
// The model is produced once by DecodeComponent (or assembled directly in
// tests) and consumed read-only by the resolve, multiclient and synth
// packages.
package model
