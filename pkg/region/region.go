// Package region implements the match-region arithmetic of the engine:
// growing a clicked window to a likely path fragment, and extending a
// matched filesystem name left over directory components or right over a
// name suffix, always under canonical path comparison.
package region

import (
	"strings"

	"github.com/clickpath/clickpath/pkg/buffer"
	"github.com/clickpath/clickpath/pkg/pathtext"
)

// Region is a byte-offset range into a buffer, half open [Begin, End).
type Region struct {
	Begin int
	End   int
}

// Size returns the region length in bytes.
func (r Region) Size() int { return r.End - r.Begin }

// Empty reports whether the region covers no text.
func (r Region) Empty() bool { return r.End <= r.Begin }

// Contains reports whether pos lies within the region, ends included.
func (r Region) Contains(pos int) bool { return r.Begin <= pos && pos <= r.End }

// Expander grows regions against a buffer under a set of path
// conventions.
type Expander struct {
	buf  buffer.Buffer
	conv *pathtext.Conventions
}

// NewExpander returns an Expander reading from buf.
func NewExpander(buf buffer.Buffer, conv *pathtext.Conventions) *Expander {
	return &Expander{buf: buf, conv: conv}
}

// ExpandPathRegion grows the window [begin, end) outward while adjacent
// bytes are likely path characters, stopping at the buffer boundaries.
func (e *Expander) ExpandPathRegion(begin, end int) Region {
	for begin > 0 && e.conv.IsLikelyPathChar(rune(e.buf.Byte(begin-1))) {
		begin--
	}
	for end < e.buf.Len() && e.conv.IsLikelyPathChar(rune(e.buf.Byte(end))) {
		end++
	}
	return Region{Begin: begin, End: end}
}

// ExpandRight reads forward from the end of prefix for as long as the text
// read so far is a canonical prefix of suffix. On a full canonical match
// it returns the combined region; otherwise ok is false. The read is
// character-count driven rather than byte-length driven because
// case-insensitive comparison can consume a different number of raw
// bytes than the suffix holds.
func (e *Expander) ExpandRight(prefix Region, suffix pathtext.PartialPath) (Region, bool) {
	begin := prefix.End
	target := suffix.Canonical()
	end := begin
	for {
		read := e.conv.NormalizeCase(e.buf.Slice(begin, end))
		if read == target {
			return Region{Begin: prefix.Begin, End: end}, true
		}
		if end >= e.buf.Len() || !strings.HasPrefix(target, read) {
			return Region{}, false
		}
		end++
	}
}

// ExpandLeft walks backward from a region matching a basename, consuming
// separators and the components of dirname innermost first, for as long
// as buffer text canonically matches. Doubled separators and '/.' self
// references are skipped without consuming a component. Returns the
// region reached when a component fails to match or the root is reached.
func (e *Expander) ExpandLeft(r Region, dirname string) Region {
	matchStart := r.Begin
	dir := dirname
	pos := matchStart - 1
	for dir != "" && pos >= 0 && e.conv.IsSeparator(e.buf.Byte(pos)) {
		if pos >= 1 && e.conv.IsSeparator(e.buf.Byte(pos-1)) {
			pos--
			continue
		}
		if pos >= 2 && e.buf.Byte(pos-1) == '.' && e.conv.IsSeparator(e.buf.Byte(pos-2)) {
			pos -= 2
			continue
		}
		if dir == "/" {
			// Consume the root separator itself so the region covers the
			// whole absolute path.
			matchStart = pos
			break
		}
		parent, base := e.conv.Split(dir)
		blen := len(base)
		if pos < blen {
			break
		}
		read := e.buf.Slice(pos-blen, pos)
		if e.conv.NormalizeCase(read) != e.conv.NormalizeCase(base) {
			break
		}
		dir = parent
		matchStart = pos - blen
		pos = matchStart - 1
	}
	return Region{Begin: matchStart, End: r.End}
}
