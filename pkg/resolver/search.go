package resolver

import (
	"io/fs"
	"strings"

	"github.com/clickpath/clickpath/pkg/filesystem"
	"github.com/clickpath/clickpath/pkg/pathtext"
	"github.com/clickpath/clickpath/pkg/region"
)

// emitFunc forwards a candidate toward the consumer, possibly adjusting
// its region first. Emitters route into the request's sink, so a stopped
// consumer is always visible as s.done.
type emitFunc func(Candidate)

// fromPoint is the heuristic click path: delimit a likely fragment around
// the click, then try absolute, environment-expanded, basename and
// prefixed matching, in that order, stopping at the first group that
// finds anything.
func (r *Resolver) fromPoint(click int, s *sink) {
	reg := r.exp.ExpandPathRegion(click, click)
	begin, end := reg.Begin, reg.End
	if begin == end {
		// The click may have landed on a boundary character, as in the
		// middle of ' [' in '/file [x86].txt'. Nudge one left, then one
		// right.
		if begin != 0 {
			reg = r.exp.ExpandPathRegion(begin-1, begin)
			begin, end = reg.Begin, reg.End
		}
		if end < r.buf.Len() && end-begin < 2 {
			reg = r.exp.ExpandPathRegion(end, end+1)
			begin, end = reg.Begin, reg.End
		}
	}

	text := r.buf.Slice(begin, end)
	// Trailing dots and separators rarely end a meaningful path.
	for len(text) > 0 {
		c := text[len(text)-1]
		if c != '.' && !r.conv.IsSeparator(c) {
			break
		}
		text = text[:len(text)-1]
	}
	end = begin + len(text)
	if end == begin {
		return
	}
	reg = region.Region{Begin: begin, End: end}
	base := r.conv.Base(text)

	r.log.Debug().Str("text", text).Msg("looking for path")

	if found := r.checkAbsolute(reg, text, s); found || s.done {
		return
	}

	if expanded := r.env.ExpandVars(text); expanded != text {
		// e.g. ${HOME}/file
		if found := r.checkAbsolute(reg, expanded, s); found || s.done {
			return
		}
	}

	if base == text {
		// Only a basename: search *base* in the direct listings of the
		// search folders, then grow each hit leftward over whatever real
		// parent-directory text precedes it.
		r.searchContains(reg, base, s, func(c Candidate) {
			c.Region = r.exp.ExpandLeft(c.Region, r.conv.Dir(c.Path))
			s.send(c)
		})
		return
	}

	// A separator precedes the basename, so search base* and verify the
	// directory text to the left. A hit whose leftward expansion captures
	// no directory at all is likely a coincidental name reuse; keep it
	// only behind an explicit ./ marker.
	baseReg := region.Region{Begin: end - len(base), End: end}
	r.searchPrefix(baseReg, base, s, func(c Candidate) {
		left := r.exp.ExpandLeft(c.Region, r.conv.Dir(c.Path))
		if left == c.Region {
			if !r.dotSlashBefore(left.Begin) {
				return
			}
		} else {
			c.Region = left
		}
		s.send(c)
	})
}

// dotSlashBefore reports whether the two bytes before begin are exactly a
// ./ marker not itself preceded by another path character.
func (r *Resolver) dotSlashBefore(begin int) bool {
	if begin < 2 {
		return false
	}
	if !r.conv.IsSeparator(r.buf.Byte(begin-1)) || r.buf.Byte(begin-2) != '.' {
		return false
	}
	if begin == 2 {
		return true
	}
	return !r.conv.IsLikelyPathChar(rune(r.buf.Byte(begin - 3)))
}

// checkAbsolute handles rooted fragments, including ~ forms. A ~user that
// does not resolve leaves the fragment to the relative searches.
func (r *Resolver) checkAbsolute(reg region.Region, text string, s *sink) bool {
	if r.conv.IsAbs(text) {
		r.log.Trace().Str("text", text).Msg("absolute")
		return r.allPrefixedBy(r.conv.NormalizePath(text), reg, s, func(c Candidate) { s.send(c) })
	}
	if text[0] == '~' {
		if expanded := r.env.ExpandUser(text); expanded != text {
			r.log.Trace().Str("text", expanded).Msg("absolute after ~")
			return r.allPrefixedBy(r.conv.NormalizePath(expanded), reg, s, func(c Candidate) { s.send(c) })
		}
	}
	return false
}

// entryIsDir reports whether ent names a directory, following symlinks.
func (r *Resolver) entryIsDir(ent fs.DirEntry, path string) bool {
	if ent.IsDir() {
		return true
	}
	return ent.Type()&fs.ModeSymlink != 0 && filesystem.IsDir(r.fsys, path)
}

// allPrefixedBy emits every filesystem path starting with the absolute
// prefix, where the buffer text past the prefix region keeps matching.
// Directory matches followed by a separator in the buffer are descended
// into. Reports whether anything matched.
func (r *Resolver) allPrefixedBy(prefix string, prefixReg region.Region, s *sink, emit emitFunc) bool {
	found := false
	dir, basePrefix := r.conv.Split(prefix)
	entries, err := r.fsys.ReadDir(dir)
	if err != nil {
		return false
	}
	canonPrefix := r.conv.NormalizeCase(basePrefix)
	for _, ent := range entries {
		if s.done {
			return found
		}
		name := ent.Name()
		if len(name) < len(basePrefix) || !strings.HasPrefix(r.conv.NormalizeCase(name), canonPrefix) {
			continue
		}
		path := r.conv.Join(dir, name)
		creg, ok := r.exp.ExpandRight(prefixReg, r.conv.NewPartial(name[len(basePrefix):]))
		if !ok {
			continue
		}
		if r.entryIsDir(ent, path) {
			if r.Layout().IsExcluded(name) {
				r.log.Trace().Str("path", r.Layout().Shorten(path)).Msg("skip excluded")
				continue
			}
			found = true
			emit(Candidate{Kind: KindFolder, Region: creg, Path: path})
			if !s.done && r.conv.IsSeparator(r.buf.Byte(creg.End)) {
				r.matchingDescendants(path, creg, s, emit)
			}
		} else {
			if !r.fsys.Readable(path) {
				continue
			}
			found = true
			emit(Candidate{Kind: KindFile, Region: creg, Path: path})
		}
	}
	return found
}

// matchingDescendants walks the tree under folder, emitting every entry
// whose path suffix keeps matching the buffer text after folderReg.
// Branches are abandoned the moment text stops matching; excluded folder
// names are never entered.
func (r *Resolver) matchingDescendants(folder string, folderReg region.Region, s *sink, emit emitFunc) {
	plen := len(folder)
	filesystem.Walk(r.fsys, folder, func(dir string, dirs, files []fs.DirEntry) ([]string, bool) {
		var descend []string
		for _, ent := range dirs {
			if s.done {
				return nil, true
			}
			path := filesystem.JoinName(dir, ent.Name())
			if r.Layout().IsExcluded(ent.Name()) {
				r.log.Trace().Str("path", r.Layout().Shorten(path)).Msg("skip excluded")
				continue
			}
			creg, ok := r.exp.ExpandRight(folderReg, r.conv.NewPartial(path[plen:]))
			if !ok {
				continue
			}
			emit(Candidate{Kind: KindFolder, Region: creg, Path: path})
			descend = append(descend, ent.Name())
		}
		for _, ent := range files {
			if s.done {
				return nil, true
			}
			path := filesystem.JoinName(dir, ent.Name())
			creg, ok := r.exp.ExpandRight(folderReg, r.conv.NewPartial(path[plen:]))
			if !ok {
				continue
			}
			if !r.fsys.Readable(path) {
				continue
			}
			emit(Candidate{Kind: KindFile, Region: creg, Path: path})
		}
		return descend, s.done
	})
}

// searchContains looks for the bare basename as a substring of every
// entry name in the search folders' direct listings, at every possible
// offset, keeping a hit only when the surrounding buffer text really
// spells the entry name.
func (r *Resolver) searchContains(reg region.Region, base string, s *sink, emit emitFunc) {
	begin := reg.Begin
	canonBase := r.conv.NormalizeCase(base)
	for folder := range r.Layout().SearchFolders(true) {
		if s.done {
			return
		}
		r.log.Trace().Str("folder", r.Layout().Shorten(folder.String())).Msg("searching in")
		entries, err := r.fsys.ReadDir(folder.String())
		if err != nil {
			continue
		}
		for _, ent := range entries {
			name := ent.Name()
			full := r.conv.Join(folder.String(), name)
			for idx := range pathtext.FindAll(canonBase, r.conv.NormalizeCase(name)) {
				if s.done {
					return
				}
				// The matched name starts idx bytes before the basename.
				textStart := begin - idx
				textEnd := textStart + len(name)
				if textStart < 0 || textEnd > r.buf.Len() {
					continue
				}
				treg := region.Region{Begin: textStart, End: textEnd}
				read := r.buf.Slice(treg.Begin, treg.End)
				if r.conv.NormalizeCase(read) != r.conv.NormalizeCase(name) {
					continue
				}
				if r.entryIsDir(ent, full) {
					if r.Layout().IsExcluded(name) {
						continue
					}
					emit(Candidate{Kind: KindFolder, Region: treg, Path: full})
					if !s.done && r.conv.IsSeparator(r.buf.Byte(textEnd)) {
						r.matchingDescendants(full, treg, s, emit)
					}
				} else if filesystem.IsFile(r.fsys, full) && r.fsys.Readable(full) {
					emit(Candidate{Kind: KindFile, Region: treg, Path: full})
				}
			}
		}
	}
}

// searchPrefix looks for entries named base* in the search folders'
// direct listings, then walks each folder's whole subtree rooting the
// basename at every non-excluded directory and retrying the absolute
// prefix match there. This recovers fragments like project/sub/file.txt
// when project is nested somewhere inside a base directory. Folders
// containing the home directory are too large to walk and are skipped.
func (r *Resolver) searchPrefix(baseReg region.Region, base string, s *sink, emit emitFunc) {
	for folder := range r.Layout().SearchFolders(true) {
		if s.done {
			return
		}
		r.log.Trace().Str("folder", r.Layout().Shorten(folder.String())).Msg("searching in")
		if !filesystem.IsDir(r.fsys, folder.String()) {
			continue
		}
		r.allPrefixedBy(r.conv.Join(folder.String(), base), baseReg, s, emit)
	}

	home := r.conv.NewAbsolute(r.env.Home())
	pwd := r.Layout().WorkingDir
	for folder := range r.Layout().SearchFolders(false) {
		if s.done {
			return
		}
		if folder.Equal(home) || folder.IsAncestorOf(home) {
			// too big to search recursively
			continue
		}
		r.log.Trace().Str("folder", r.Layout().Shorten(folder.String())).Msg("searching under")
		filesystem.Walk(r.fsys, folder.String(), func(dir string, dirs, _ []fs.DirEntry) ([]string, bool) {
			var descend []string
			for _, ent := range dirs {
				if s.done {
					return nil, true
				}
				path := filesystem.JoinName(dir, ent.Name())
				if r.conv.NewAbsolute(path).Equal(pwd) {
					// The pwd listing was already searched, but paths
					// below it were not.
					descend = append(descend, ent.Name())
					continue
				}
				if r.Layout().IsExcluded(ent.Name()) {
					r.log.Trace().Str("path", r.Layout().Shorten(path)).Msg("skip excluded")
					continue
				}
				r.allPrefixedBy(r.conv.Join(path, base), baseReg, s, emit)
				descend = append(descend, ent.Name())
			}
			return descend, s.done
		})
	}
}
