// Package dataerr defines the unified error space of the scene pipeline.
//
// Failures from three unrelated subsystems are merged into one type:
//
// - TOML encoding and decoding (KindSerialization, KindDeserialization)
//
// - filesystem access (KindFileSystem)
//
// - binary asset decoding (KindAssetDecode)
//
// Every Error carries a human-readable description, the offending path when one
// is known, and the original cause for errors.Is / errors.As chaining.
package dataerr
