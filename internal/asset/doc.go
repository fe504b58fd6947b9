// Package asset decodes and validates the binary 3D assets referenced by
// mesh descriptors.
package asset
