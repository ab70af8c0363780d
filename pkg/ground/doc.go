// Package ground holds the entity model of the interchange format: the
// document root, ground models, materials with engineering properties, and
// the spatial components tying materials to geometry.
//
// The package is pure data plus construction and lookup helpers. Adds are
// append-only, lookups are linear scans, and absence is a nil result rather
// than an error. Cross-entity references (a component's material id) are
// plain string keys (relations, never ownership), so removing a material
// leaves referencing components stale until the next validation pass.
// Document-level rules live in the validate package; encoding in codec.
package ground
