// Package multiclient binds a multi-client arbitration policy against one
// provided port's interface: it locates the claim and release events by
// name, verifies the claim event's return type is an enumerated type, and
// verifies the configured granting reply names a declared enum member.
//
// Binding is bind-or-skip: a candidate port whose name differs from the
// policy's port simply does not apply (nil binding, nil error). All actual
// violations surface as *config.MultiClientConfigError.
package multiclient
