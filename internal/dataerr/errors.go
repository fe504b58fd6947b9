package dataerr

import (
	"errors"
	"fmt"
	"strings"
)

// Kind identifies which subsystem a pipeline failure came from.
// New kinds are appended; existing values never change meaning.
type Kind int

const (
	KindDeserialization Kind = iota + 1
	KindSerialization
	KindFileSystem
	KindAssetDecode
)

func (k Kind) String() string {
	switch k {
	case KindDeserialization:
		return "deserialization"
	case KindSerialization:
		return "serialization"
	case KindFileSystem:
		return "filesystem"
	case KindAssetDecode:
		return "asset decode"
	default:
		return "unknown"
	}
}

var (
	ErrMissingField    = errors.New("missing required field")
	ErrVectorLength    = errors.New("vector must have exactly 3 components")
	ErrEmptyID         = errors.New("empty identifier")
	ErrEmptyPath       = errors.New("empty path")
	ErrPathEscapesRoot = errors.New("path escapes storage root")
	ErrAbsolutePath    = errors.New("absolute path not allowed")
)

// Error is the single error type returned by every pipeline operation.
type Error struct {
	Kind        Kind
	Description string
	Path        string
	Err         error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	var b strings.Builder
	b.WriteString(e.Kind.String())
	b.WriteString(" error: ")
	b.WriteString(e.Description)
	if e.Path != "" {
		fmt.Fprintf(&b, " (path=%q)", e.Path)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func newError(kind Kind, path, description string, err error) *Error {
	return &Error{Kind: kind, Description: description, Path: path, Err: err}
}

func Deserialization(path, description string, err error) *Error {
	return newError(KindDeserialization, path, description, err)
}

func Serialization(path, description string, err error) *Error {
	return newError(KindSerialization, path, description, err)
}

func FileSystem(path, description string, err error) *Error {
	return newError(KindFileSystem, path, description, err)
}

func AssetDecode(path, description string, err error) *Error {
	return newError(KindAssetDecode, path, description, err)
}

// WithContext prefixes the description of a pipeline error, keeping its kind
// and cause. The path is filled in only when the wrapped error has none, so the
// innermost offending file is what gets reported. Foreign errors come from the
// filesystem side of the pipeline and are classified as KindFileSystem.
func WithContext(err error, path, description string) error {
	if err == nil {
		return nil
	}
	var e *Error
	if !errors.As(err, &e) {
		return FileSystem(path, description, err)
	}
	out := *e
	out.Description = description + ": " + e.Description
	if out.Path == "" {
		out.Path = path
	}
	return &out
}

// KindOf returns the kind of the first pipeline error in the chain, or 0.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// PathOf returns the offending path recorded on a pipeline error.
func PathOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Path
	}
	return ""
}
