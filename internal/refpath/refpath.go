// Package refpath interprets the paths stored in scene descriptors.
//
// A stored reference (a level's game-object path, a game object's id, a mesh
// path) is always relative to the root of the filesystem collaborator. It is
// never resolved against the file that contains it.
package refpath

import (
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	"github.com/danmuck/scenectl/internal/dataerr"
)

// Normalize turns a stored reference into the canonical slash-separated form
// used as a storage key.
func Normalize(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", dataerr.ErrEmptyPath
	}
	slashed := filepath.ToSlash(trimmed)
	if path.IsAbs(slashed) || filepath.IsAbs(trimmed) {
		return "", dataerr.ErrAbsolutePath
	}
	cleaned := path.Clean(slashed)
	if cleaned == "." {
		return "", dataerr.ErrEmptyPath
	}
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", dataerr.ErrPathEscapesRoot
	}
	if !fs.ValidPath(cleaned) {
		return "", dataerr.ErrPathEscapesRoot
	}
	return cleaned, nil
}

// Equal reports whether two references name the same storage key.
func Equal(a, b string) bool {
	na, errA := Normalize(a)
	nb, errB := Normalize(b)
	return errA == nil && errB == nil && na == nb
}

// WithExt appends ext when p has no extension.
func WithExt(p, ext string) string {
	if ext == "" || path.Ext(p) != "" {
		return p
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return p + ext
}

// Dir returns the directory part of a normalized reference, or "." at the root.
func Dir(p string) string {
	return path.Dir(p)
}
