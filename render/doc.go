// Package render is a reference back end for the synthesizer's
// instruction stream: it turns the ordered decisions into C++-flavored
// shell code. All literal text and formatting live here; the synthesizer
// itself never produces output text.
//
// Real generators are expected to implement their own back end against
// synth.Instruction; this one exists for the CLI and for golden-style
// tests of instruction ordering.
package render
