// Package descriptor holds the persisted, text-shaped forms of scene entities.
//
// Descriptors are plain values: they are parsed from TOML, built from explicit
// fields or builders, and rendered back to canonical TOML. They are consumed by
// the resolver and serializer and are never mutated after construction.
//
// Parsing rules:
//
// - a missing [mesh] table yields a nil Mesh
//
// - a missing required key is a deserialization error naming the key
//
// - a transform vector without exactly 3 components is rejected
//
// - unknown keys are ignored
package descriptor
