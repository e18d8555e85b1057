// Package action turns a candidate stream into the user-facing decision:
// which editor action applies, against which path, with what label.
package action

import (
	"fmt"
	"iter"

	"github.com/clickpath/clickpath/pkg/buffer"
	"github.com/clickpath/clickpath/pkg/linecol"
	"github.com/clickpath/clickpath/pkg/resolver"
	"github.com/clickpath/clickpath/pkg/workspace"
)

// Action names what the host should do with the decision's path.
type Action string

const (
	Open         Action = "Open"
	Goto         Action = "Goto"
	NewFile      Action = "New File"
	CreateFolder Action = "Create Folder"
	AddFolder    Action = "Add Folder"
	Reveal       Action = "Reveal"
)

// Decision is the engine's sole output per invocation.
type Decision struct {
	Action Action

	// Path is the resolved filesystem path.
	Path string

	// Target is what the dispatcher receives: equal to Path except for
	// Goto, where it is always path:line:col with col defaulting to 0.
	Target string

	// Line and Col are set for Goto; Col 0 means unknown.
	Line int
	Col  int

	// Label is the display string, with base-directory or home prefixes
	// shortened.
	Label string
}

// best tracks the longest-region candidate of each kind; first seen wins
// ties.
type best struct {
	byKind map[resolver.Kind]resolver.Candidate
	seen   map[resolver.Kind]bool
	better func(challenger, incumbent resolver.Candidate) bool
}

func (b *best) add(c resolver.Candidate) {
	if !b.seen[c.Kind] || b.better(c, b.byKind[c.Kind]) {
		b.byKind[c.Kind] = c
	}
	b.seen[c.Kind] = true
}

func collect(candidates iter.Seq[resolver.Candidate], better func(a, b resolver.Candidate) bool) *best {
	b := &best{
		byKind: make(map[resolver.Kind]resolver.Candidate),
		seen:   make(map[resolver.Kind]bool),
		better: better,
	}
	for c := range candidates {
		b.add(c)
	}
	return b
}

func byRegion(a, b resolver.Candidate) bool { return a.Region.Size() > b.Region.Size() }
func byPath(a, b resolver.Candidate) bool   { return len(a.Path) > len(b.Path) }

// Select drains the candidate stream and classifies the best candidate,
// in priority order file > folder > missing file > missing folder. For a
// found file the text after the match is consulted for a line/column
// suffix. Returns ok false when no candidate of any kind was produced.
func Select(layout *workspace.Layout, buf buffer.Buffer, candidates iter.Seq[resolver.Candidate]) (Decision, bool) {
	return pick(layout, buf, collect(candidates, byRegion))
}

// SelectText is the standalone variant used when candidates come from
// bare text rather than a buffer: no regions exist, so the longest
// resolved path wins, and no line/column suffix applies.
func SelectText(layout *workspace.Layout, candidates iter.Seq[resolver.Candidate]) (Decision, bool) {
	return pick(layout, nil, collect(candidates, byPath))
}

func pick(layout *workspace.Layout, buf buffer.Buffer, b *best) (Decision, bool) {
	if c, ok := b.byKind[resolver.KindFile]; ok {
		d := Decision{Action: Open, Path: c.Path, Target: c.Path, Label: layout.Shorten(c.Path)}
		if buf != nil {
			if pos, ok := linecol.Parse(buf, c.Region.End); ok {
				d.Action = Goto
				d.Line, d.Col = pos.Line, pos.Col
				d.Target = fmt.Sprintf("%s:%d:%d", c.Path, pos.Line, pos.Col)
				if pos.Col == 0 {
					d.Label = fmt.Sprintf("%s:%d", d.Label, pos.Line)
				} else {
					d.Label = fmt.Sprintf("%s:%d:%d", d.Label, pos.Line, pos.Col)
				}
			}
		}
		return d, true
	}
	if c, ok := b.byKind[resolver.KindFolder]; ok {
		act := AddFolder
		if layout.ContainsPath(c.Path) {
			act = Reveal
		}
		return Decision{Action: act, Path: c.Path, Target: c.Path, Label: layout.Shorten(c.Path)}, true
	}
	if c, ok := b.byKind[resolver.KindMissingFile]; ok {
		return Decision{Action: NewFile, Path: c.Path, Target: c.Path, Label: layout.Shorten(c.Path)}, true
	}
	if c, ok := b.byKind[resolver.KindMissingFolder]; ok {
		return Decision{Action: CreateFolder, Path: c.Path, Target: c.Path, Label: layout.Shorten(c.Path)}, true
	}
	return Decision{}, false
}
