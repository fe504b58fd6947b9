package storage

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/danmuck/scenectl/internal/dataerr"
	"github.com/danmuck/scenectl/internal/refpath"
	"github.com/hack-pad/hackpadfs"
	"github.com/hack-pad/hackpadfs/mem"
	osfs "github.com/hack-pad/hackpadfs/os"
	"github.com/rs/zerolog/log"
)

const (
	// DefaultRoot is used when no scene root is configured.
	DefaultRoot = "."

	dirPerm = 0o755
)

// FileSystem is the storage boundary consumed by the resolver and serializer.
// Handles are never cached across calls.
type FileSystem interface {
	Open(path string) (io.ReadCloser, error)
	Create(path string) (io.WriteCloser, error)
	ReadToString(r io.Reader) (string, error)
	WriteAll(w io.Writer, data []byte) error
	Exists(path string) bool
}

// FS is a FileSystem scoped to one hackpadfs tree. Every path handed to it is
// a stored reference and is normalized by refpath before use.
type FS struct {
	fsys  hackpadfs.FS
	label string
}

var _ FileSystem = (*FS)(nil)

// New wraps an existing hackpadfs tree. label names it in logs and errors.
func New(fsys hackpadfs.FS, label string) *FS {
	return &FS{fsys: fsys, label: label}
}

// NewOS returns a FileSystem rooted at a directory on the host.
func NewOS(root string) (*FS, error) {
	resolved := strings.TrimSpace(root)
	if resolved == "" {
		resolved = DefaultRoot
	}
	abs, err := filepath.Abs(resolved)
	if err != nil {
		return nil, fmt.Errorf("storage: resolve root %q: %w", resolved, err)
	}
	host := osfs.NewFS()
	rootKey, err := host.FromOSPath(abs)
	if err != nil {
		return nil, fmt.Errorf("storage: root %q: %w", abs, err)
	}
	sub, err := host.Sub(rootKey)
	if err != nil {
		return nil, fmt.Errorf("storage: root %q: %w", abs, err)
	}
	return New(sub, abs), nil
}

// NewMemory returns an empty in-memory FileSystem.
func NewMemory() (*FS, error) {
	fsys, err := mem.NewFS()
	if err != nil {
		return nil, fmt.Errorf("storage: memory fs: %w", err)
	}
	return New(fsys, "mem"), nil
}

func (s *FS) Label() string {
	return s.label
}

func (s *FS) Open(path string) (io.ReadCloser, error) {
	key, err := s.key(path)
	if err != nil {
		return nil, err
	}
	f, err := s.fsys.Open(key)
	if err != nil {
		return nil, dataerr.FileSystem(key, "open failed", err)
	}
	log.Debug().Str("fs", s.label).Str("path", key).Msg("opened")
	return f, nil
}

// Create truncates or creates the file at path, making parent directories.
func (s *FS) Create(path string) (io.WriteCloser, error) {
	key, err := s.key(path)
	if err != nil {
		return nil, err
	}
	if dir := refpath.Dir(key); dir != "." {
		if err := hackpadfs.MkdirAll(s.fsys, dir, dirPerm); err != nil {
			return nil, dataerr.FileSystem(key, "create parent directories failed", err)
		}
	}
	f, err := hackpadfs.Create(s.fsys, key)
	if err != nil {
		return nil, dataerr.FileSystem(key, "create failed", err)
	}
	w, ok := f.(io.WriteCloser)
	if !ok {
		_ = f.Close()
		return nil, dataerr.FileSystem(key, "create failed", hackpadfs.ErrNotImplemented)
	}
	log.Debug().Str("fs", s.label).Str("path", key).Msg("created")
	return w, nil
}

func (s *FS) ReadToString(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", dataerr.FileSystem("", "read failed", err)
	}
	return string(data), nil
}

func (s *FS) WriteAll(w io.Writer, data []byte) error {
	for len(data) > 0 {
		n, err := w.Write(data)
		if err != nil {
			return dataerr.FileSystem("", "write failed", err)
		}
		if n == 0 {
			return dataerr.FileSystem("", "write failed", io.ErrShortWrite)
		}
		data = data[n:]
	}
	return nil
}

func (s *FS) Exists(path string) bool {
	key, err := refpath.Normalize(path)
	if err != nil {
		return false
	}
	_, err = hackpadfs.Stat(s.fsys, key)
	return err == nil
}

// Remove deletes path; a missing file is not an error.
func (s *FS) Remove(path string) error {
	key, err := s.key(path)
	if err != nil {
		return err
	}
	if err := hackpadfs.Remove(s.fsys, key); err != nil && !errors.Is(err, hackpadfs.ErrNotExist) {
		return dataerr.FileSystem(key, "remove failed", err)
	}
	return nil
}

func (s *FS) key(path string) (string, error) {
	key, err := refpath.Normalize(path)
	if err != nil {
		return "", dataerr.FileSystem(path, "invalid reference", err)
	}
	return key, nil
}
