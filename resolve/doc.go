// Package resolve turns a validated port configuration into a total,
// unambiguous semantics assignment over a component's actual port names.
//
// Resolution happens per direction through the configuration's policies,
// then the two maps are merged. The provides and requires name spaces are
// disjoint by construction, so the merge cannot collide; totality over the
// union is still enforced as a hard invariant at this boundary.
package resolve
