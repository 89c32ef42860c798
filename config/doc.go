// Package config defines the caller-facing configuration surface of the
// shell synthesizer: port selectors, per-direction semantics policies, the
// combined port configuration, the multi-client arbitration policy, named
// presets and a YAML file loader.
//
// # Main Types
//
//   - PortSelector: "which ports" as an explicit set or a wildcard
//   - SemanticsPolicy: dispatched/passthrough selector pair for one direction
//   - PortConfiguration: provides + requires policies plus optional
//     multi-client policy
//   - MultiClientPolicy: claim/release arbitration on one provided port
//
// # Validation
//
// Every type is validated at construction and immutable afterwards; there
// is no shared or global configuration state. Violations surface as
// *ConfigError or *MultiClientConfigError carrying the offending names.
// Presets are pure factory functions composing the same constructors.
package config
