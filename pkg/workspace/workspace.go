// Package workspace computes the search space for one resolution
// request: the ordered base directories, the working directory, and the
// short labels used in human-readable messages.
package workspace

import (
	"iter"

	"github.com/clickpath/clickpath/pkg/filesystem"
	"github.com/clickpath/clickpath/pkg/logging"
	"github.com/clickpath/clickpath/pkg/pathtext"
	"github.com/clickpath/clickpath/pkg/platform"
)

// Config carries the host-supplied settings for one resolution request.
// It replaces any notion of a global settings store; callers build one
// per request.
type Config struct {
	// Folders are the workspace root folders, in configured order.
	Folders []string

	// WorkingDir optionally overrides the working directory. May start
	// with ~; ignored unless it expands to an existing absolute directory.
	WorkingDir string

	// CurrentFile is the absolute path of the file behind the buffer, if
	// any. Its directory is the working-directory fallback.
	CurrentFile string

	// ExcludedFolders lists folder basenames never searched or descended
	// into.
	ExcludedFolders []string
}

// Layout is the resolved search space. Compute once per request with
// Resolve; immutable afterwards.
type Layout struct {
	conv *pathtext.Conventions
	env  *platform.Env

	// WorkingDir is the request's primary base directory.
	WorkingDir pathtext.AbsolutePath

	// Folders are the kept workspace folders, overlap-pruned, in order.
	Folders []pathtext.AbsolutePath

	labels   map[string]string
	excluded map[string]struct{}
}

// Resolve prunes the configured folders, picks the working directory and
// assigns labels.
//
// A folder is dropped when an already-kept folder contains it, or when a
// folder later in the list strictly contains it; nested folders collapse
// to their outermost representative regardless of input order.
//
// Working directory order: the override when it expands to an existing
// absolute directory, else the current file's directory, else the first
// kept folder, else home.
func Resolve(cfg Config, conv *pathtext.Conventions, env *platform.Env, fsys filesystem.FS) *Layout {
	log := logging.GetLogger("workspace")

	all := make([]pathtext.AbsolutePath, len(cfg.Folders))
	count := make(map[string]int)
	for i, f := range cfg.Folders {
		all[i] = conv.NewAbsolute(f)
		count[conv.NormalizeCase(conv.Base(all[i].String()))]++
	}

	var kept []pathtext.AbsolutePath
	for i, folder := range all {
		drop := false
		for _, k := range kept {
			if k.ContainsOrEquals(folder) {
				drop = true
				break
			}
		}
		if !drop {
			for _, later := range all[i+1:] {
				if later.IsAncestorOf(folder) {
					drop = true
					break
				}
			}
		}
		if drop {
			log.Trace().Str("folder", folder.String()).Msg("pruned nested folder")
			continue
		}
		kept = append(kept, folder)
	}

	labels := make(map[string]string)
	for _, folder := range kept {
		base := conv.Base(folder.String())
		if count[conv.NormalizeCase(base)] == 1 {
			labels[folder.Canonical()] = base
		}
	}

	var pwd pathtext.AbsolutePath
	if cfg.WorkingDir != "" {
		expanded := env.ExpandUser(cfg.WorkingDir)
		if conv.IsAbs(expanded) && filesystem.IsDir(fsys, conv.NormalizePath(expanded)) {
			pwd = conv.NewAbsolute(expanded)
		}
	}
	if pwd.IsZero() && cfg.CurrentFile != "" {
		pwd = conv.NewAbsolute(conv.Dir(conv.NormalizePath(cfg.CurrentFile)))
	}
	if pwd.IsZero() && len(kept) > 0 {
		pwd = kept[0]
	}
	if pwd.IsZero() {
		pwd = conv.NewAbsolute(env.Home())
	}

	excluded := make(map[string]struct{}, len(cfg.ExcludedFolders))
	for _, name := range cfg.ExcludedFolders {
		excluded[conv.NormalizeCase(name)] = struct{}{}
	}

	log.Debug().
		Str("pwd", pwd.String()).
		Int("folders", len(kept)).
		Msg("resolved search space")

	return &Layout{
		conv:       conv,
		env:        env,
		WorkingDir: pwd,
		Folders:    kept,
		labels:     labels,
		excluded:   excluded,
	}
}

// SearchFolders yields every kept folder in order, then the working
// directory unless it is itself a kept folder. A working directory nested
// inside a kept folder is yielded only when includeNestedWorkingDir is
// set; callers that will recurse through the containing folder anyway
// pass false to avoid searching it twice.
func (l *Layout) SearchFolders(includeNestedWorkingDir bool) iter.Seq[pathtext.AbsolutePath] {
	return func(yield func(pathtext.AbsolutePath) bool) {
		pwdIsFolder := false
		pwdInFolder := false
		for _, folder := range l.Folders {
			if !yield(folder) {
				return
			}
			if l.WorkingDir.Equal(folder) {
				pwdIsFolder = true
			} else if folder.IsAncestorOf(l.WorkingDir) {
				pwdInFolder = true
			}
		}
		if pwdInFolder {
			if includeNestedWorkingDir {
				yield(l.WorkingDir)
			}
		} else if !pwdIsFolder {
			yield(l.WorkingDir)
		}
	}
}

// Contains reports whether p is one of the kept folders or nested under
// one.
func (l *Layout) Contains(p pathtext.AbsolutePath) bool {
	for _, folder := range l.Folders {
		if folder.ContainsOrEquals(p) {
			return true
		}
	}
	return false
}

// ContainsPath is Contains for a plain path string.
func (l *Layout) ContainsPath(name string) bool {
	return l.Contains(l.conv.NewAbsolute(name))
}

// Label returns the short label of a kept folder, if it has one.
func (l *Layout) Label(folder pathtext.AbsolutePath) (string, bool) {
	label, ok := l.labels[folder.Canonical()]
	return label, ok
}

// IsExcluded reports whether a folder basename is in the exclusion list.
func (l *Layout) IsExcluded(name string) bool {
	_, ok := l.excluded[l.conv.NormalizeCase(name)]
	return ok
}

// Shorten rewrites name for display: a kept folder prefix becomes its
// short label, or the home prefix becomes ~. The first matching folder
// wins; folders are already pruned to non-overlapping so order is
// arbitrary but deterministic.
func (l *Layout) Shorten(name string) string {
	p := l.conv.NewAbsolute(name)
	for _, folder := range l.Folders {
		if folder.ContainsOrEquals(p) {
			if label, ok := l.labels[folder.Canonical()]; ok {
				return label + p.String()[len(folder.String()):]
			}
		}
	}
	home := l.conv.NewAbsolute(l.env.Home())
	if home.String() != "/" && !home.Equal(p) && home.IsAncestorOf(p) {
		return "~" + p.String()[len(home.String()):]
	}
	return name
}
