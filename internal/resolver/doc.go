// Package resolver turns descriptors into scene objects and back.
//
// Loading reads text through a storage.FileSystem, parses it with the
// descriptor package and decodes referenced meshes with an asset.Decoder.
// Every failure is a *dataerr.Error carrying the innermost offending path.
// Resolution of a level is all-or-nothing in both the sequential and the
// parallel shape.
//
// Saving is the inverse: one file per game object at the path named by its
// id, and one level file at the path named by its title.
package resolver
