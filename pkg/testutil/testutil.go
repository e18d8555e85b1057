// Package testutil provides hermetic fixtures for engine tests: an
// in-memory filesystem with unreadable-path injection, and a fully
// stubbed environment.
package testutil

import (
	"io/fs"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/clickpath/clickpath/pkg/filesystem"
	"github.com/clickpath/clickpath/pkg/pathtext"
	"github.com/clickpath/clickpath/pkg/platform"
)

// FS is an afero-backed in-memory filesystem implementing the engine's
// capability, with per-path readability injection since in-memory files
// ignore permission bits.
type FS struct {
	filesystem.FS
	mem        afero.Fs
	unreadable map[string]bool
}

// NewFS returns an empty in-memory filesystem.
func NewFS() *FS {
	mem := afero.NewMemMapFs()
	return &FS{
		FS:         filesystem.NewAfero(mem),
		mem:        mem,
		unreadable: make(map[string]bool),
	}
}

// WriteFile creates a file with content, making parent directories.
func (f *FS) WriteFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, f.mem.MkdirAll(parent(path), 0o755))
	require.NoError(t, afero.WriteFile(f.mem, path, []byte(content), 0o644))
}

// MkdirAll creates a directory and its parents.
func (f *FS) MkdirAll(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, f.mem.MkdirAll(path, 0o755))
}

// MarkUnreadable makes Readable report false for path.
func (f *FS) MarkUnreadable(path string) {
	f.unreadable[path] = true
}

func (f *FS) Readable(name string) bool {
	if f.unreadable[name] {
		return false
	}
	return f.FS.Readable(name)
}

func (f *FS) Mkdir(name string, perm fs.FileMode) error {
	return f.mem.Mkdir(name, perm)
}

func parent(path string) string {
	for i := len(path) - 1; i > 0; i-- {
		if path[i] == '/' {
			return path[:i]
		}
	}
	return "/"
}

// Env returns a hermetic environment: fixed home, map-backed variables
// and ~user lookups, existence checks against fsys.
func Env(conv *pathtext.Conventions, fsys filesystem.FS, home string, vars map[string]string) *platform.Env {
	return platform.New(conv, fsys,
		platform.WithHome(home),
		platform.WithLookup(func(name string) (string, bool) {
			v, ok := vars[name]
			return v, ok
		}),
		platform.WithUserHome(func(name string) (string, bool) {
			v, ok := vars["user:"+name]
			return v, ok
		}),
	)
}
