// Package resolver implements the path-inference engine: given a click
// position or a selected fragment, it produces a lazy, ordered sequence
// of candidate paths drawn from the filesystem around the configured base
// directories.
//
// Candidates are yielded in a fixed priority order (absolute checks, then
// environment expansion, then basename search, then prefixed search; base
// directories in their resolved order), so longest-match tie-breaking by
// the consumer is deterministic for a given filesystem state. The
// consumer may stop iterating at any yield point; no resources outlive
// the iteration.
package resolver

import (
	"fmt"
	"iter"

	"github.com/rs/zerolog"

	"github.com/clickpath/clickpath/pkg/buffer"
	"github.com/clickpath/clickpath/pkg/filesystem"
	"github.com/clickpath/clickpath/pkg/logging"
	"github.com/clickpath/clickpath/pkg/pathtext"
	"github.com/clickpath/clickpath/pkg/platform"
	"github.com/clickpath/clickpath/pkg/region"
	"github.com/clickpath/clickpath/pkg/workspace"
)

// Kind tags a candidate with what the match attempt concluded.
type Kind int

const (
	// KindText is the verbatim selected text, emitted first as an audit
	// record when the user selection overrides the heuristics.
	KindText Kind = iota

	// KindFile is an existing readable file.
	KindFile

	// KindFolder is an existing directory.
	KindFolder

	// KindMissingFile is a path whose parent directory exists but whose
	// leaf does not.
	KindMissingFile

	// KindMissingFolder is the outermost missing directory on the way to
	// a path none of whose ancestors past some point exist.
	KindMissingFolder
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindFile:
		return "file"
	case KindFolder:
		return "folder"
	case KindMissingFile:
		return "missing-file"
	case KindMissingFolder:
		return "missing-folder"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Candidate is one hypothesis about what path the clicked text refers
// to: the buffer region it matched and the resolved absolute path.
type Candidate struct {
	Kind   Kind
	Region region.Region
	Path   string
}

// Resolver runs one resolution request. Construct a new one per user
// action; the base-directory layout is computed lazily on first use and
// cached only for the lifetime of the request.
type Resolver struct {
	buf  buffer.Buffer
	fsys filesystem.FS
	conv *pathtext.Conventions
	env  *platform.Env
	cfg  workspace.Config
	exp  *region.Expander
	log  zerolog.Logger

	lay *workspace.Layout
}

// New builds a Resolver over the given capabilities and request
// configuration.
func New(buf buffer.Buffer, fsys filesystem.FS, conv *pathtext.Conventions, env *platform.Env, cfg workspace.Config) *Resolver {
	return &Resolver{
		buf:  buf,
		fsys: fsys,
		conv: conv,
		env:  env,
		cfg:  cfg,
		exp:  region.NewExpander(buf, conv),
		log:  logging.GetLogger("resolver"),
	}
}

// Layout returns the request's base-directory layout, computing it on
// first call.
func (r *Resolver) Layout() *workspace.Layout {
	if r.lay == nil {
		r.lay = workspace.Resolve(r.cfg, r.conv, r.env, r.fsys)
	}
	return r.lay
}

// sink adapts a push-iterator yield function so that nested producers
// can keep emitting until the consumer stops, then go quiet.
type sink struct {
	yield func(Candidate) bool
	done  bool
}

func (s *sink) send(c Candidate) bool {
	if s.done {
		return false
	}
	if !s.yield(c) {
		s.done = true
	}
	return !s.done
}

// recovered stops a host or filesystem panic from crashing the caller;
// the sequence simply ends and the feature reports itself inactive.
func (r *Resolver) recovered() {
	if p := recover(); p != nil {
		r.log.Error().Interface("panic", p).Msg("resolution aborted")
	}
}

// FromPoint yields candidates for a click at the given byte offset.
func (r *Resolver) FromPoint(click int) iter.Seq[Candidate] {
	return func(yield func(Candidate) bool) {
		defer r.recovered()
		r.fromPoint(click, &sink{yield: yield})
	}
}

// FromRegion yields candidates for an explicitly selected region. The
// selection overrides boundary detection: its exact text is the path
// hypothesis, after tilde and environment expansion. A KindText audit
// candidate is always yielded first.
func (r *Resolver) FromRegion(sel region.Region) iter.Seq[Candidate] {
	return func(yield func(Candidate) bool) {
		defer r.recovered()
		s := &sink{yield: yield}
		r.fromText(sel, r.buf.Slice(sel.Begin, sel.End), s)
	}
}

// FromText yields candidates for standalone text with no backing buffer,
// such as clipboard contents. Candidates carry empty regions; consumers
// rank them by path length instead.
func (r *Resolver) FromText(text string) iter.Seq[Candidate] {
	return func(yield func(Candidate) bool) {
		defer r.recovered()
		r.fromText(region.Region{}, text, &sink{yield: yield})
	}
}

// fromText handles both the selection override and the standalone
// variant: expand, then classify the exact text.
func (r *Resolver) fromText(sel region.Region, text string, s *sink) {
	if !s.send(Candidate{Kind: KindText, Region: sel, Path: text}) {
		return
	}
	userOnly := r.env.ExpandUser(text)
	full := r.env.ExpandUser(r.env.ExpandVars(text))
	if userOnly != full {
		r.classifyExact(sel, userOnly, s)
		if s.done {
			return
		}
	}
	r.classifyExact(sel, full, s)
}

// classifyExact reports what the filesystem says about one exact path
// hypothesis. Relative hypotheses are joined against each search folder.
func (r *Resolver) classifyExact(sel region.Region, text string, s *sink) {
	if text == "" {
		return
	}
	if r.conv.IsAbs(text) {
		p := r.conv.NormalizePath(text)
		switch {
		case filesystem.IsFile(r.fsys, p):
			if r.fsys.Readable(p) {
				s.send(Candidate{Kind: KindFile, Region: sel, Path: p})
			}
		case filesystem.IsDir(r.fsys, p):
			s.send(Candidate{Kind: KindFolder, Region: sel, Path: p})
		case filesystem.IsDir(r.fsys, r.conv.Dir(p)):
			s.send(Candidate{Kind: KindMissingFile, Region: sel, Path: p})
		default:
			s.send(Candidate{Kind: KindMissingFolder, Region: sel, Path: r.outermostMissing(p)})
		}
		return
	}
	for folder := range r.Layout().SearchFolders(true) {
		if s.done {
			return
		}
		abs := r.conv.NormalizePath(r.conv.Join(folder.String(), text))
		if filesystem.IsFile(r.fsys, abs) {
			if r.fsys.Readable(abs) {
				if !s.send(Candidate{Kind: KindFile, Region: sel, Path: abs}) {
					return
				}
			}
		} else if filesystem.IsDir(r.fsys, abs) {
			if !s.send(Candidate{Kind: KindFolder, Region: sel, Path: abs}) {
				return
			}
		}
	}
}

// outermostMissing walks up from p's parent to the first directory whose
// own parent exists. Creating that directory is the actionable first
// step toward p.
func (r *Resolver) outermostMissing(p string) string {
	dir := r.conv.Dir(p)
	parent := r.conv.Dir(dir)
	for parent != dir && parent != "" && !filesystem.IsDir(r.fsys, parent) {
		dir = parent
		parent = r.conv.Dir(dir)
	}
	return dir
}
