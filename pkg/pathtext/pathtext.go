// Package pathtext provides the text and path primitives underneath the
// resolution engine: path-character classification, overlapping substring
// search, and case-aware path comparison.
//
// All OS-dependent behavior is captured in a Conventions value constructed
// once at startup and passed explicitly. Nothing in this package consults
// the runtime OS after construction, which lets tests exercise Windows
// semantics on a POSIX host and vice versa.
package pathtext

import (
	"iter"
	"path"
	"runtime"
	"strings"
)

// likelyPathExclusions are characters more commonly found next to paths
// than inside them. Some explicit decisions:
//   - '=' is excluded so NAME=PATH isolates PATH
//   - '#' and '()' are excluded so [AWS](docs/install.md#aws) isolates the path
//   - '$', '{' and '}' are kept so $ENVNAME and ${ENVNAME} stay in the fragment
const likelyPathExclusions = "<>&|'\",;:[]()*?`=#!"

// Conventions captures the OS-dependent pieces of path handling.
type Conventions struct {
	caseInsensitive bool
	percentEnv      bool
	driveLetters    bool
	backslashSep    bool
}

// POSIX returns conventions for Unix-like systems: case-sensitive paths,
// '/' separators, $NAME and ${NAME} environment syntax.
func POSIX() *Conventions {
	return &Conventions{}
}

// Windows returns conventions for Windows: case-insensitive paths, both
// separators, drive-letter absolutes, and %NAME% environment syntax.
func Windows() *Conventions {
	return &Conventions{
		caseInsensitive: true,
		percentEnv:      true,
		driveLetters:    true,
		backslashSep:    true,
	}
}

// Native returns the conventions for the running OS.
func Native() *Conventions {
	if runtime.GOOS == "windows" {
		return Windows()
	}
	return POSIX()
}

// PercentEnv reports whether %NAME% environment references are recognized.
func (c *Conventions) PercentEnv() bool { return c.percentEnv }

// CaseInsensitive reports whether path comparison folds case.
func (c *Conventions) CaseInsensitive() bool { return c.caseInsensitive }

// IsLikelyPathChar reports whether ch plausibly belongs to a filesystem
// path. Control characters, spaces and the fixed exclusion set are
// rejected; '%' is additionally rejected when the conventions use %NAME%
// environment syntax.
func (c *Conventions) IsLikelyPathChar(ch rune) bool {
	if ch <= ' ' {
		return false
	}
	if strings.ContainsRune(likelyPathExclusions, ch) {
		return false
	}
	if ch == '%' && c.percentEnv {
		return false
	}
	return true
}

// IsSeparator reports whether b is a path separator byte.
func (c *Conventions) IsSeparator(b byte) bool {
	return b == '/' || (c.backslashSep && b == '\\')
}

// IsAbs reports whether p is a rooted path: a leading separator, or a
// drive-letter prefix where the conventions allow one.
func (c *Conventions) IsAbs(p string) bool {
	if p == "" {
		return false
	}
	if c.IsSeparator(p[0]) {
		return true
	}
	if c.driveLetters && len(p) >= 3 && p[1] == ':' && c.IsSeparator(p[2]) {
		b := p[0]
		return ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
	}
	return false
}

// NormalizeCase folds p for comparison. Identity under case-sensitive
// conventions. Every name comparison in the engine must route through
// this, never raw string equality.
func (c *Conventions) NormalizeCase(p string) string {
	if !c.caseInsensitive {
		return p
	}
	return strings.ToLower(p)
}

// NormalizePath collapses '.' and '..' components and doubled separators.
// Under Windows conventions backslashes are rewritten to forward slashes
// first; the engine works on slash-normalized paths throughout.
func (c *Conventions) NormalizePath(p string) string {
	if p == "" {
		return ""
	}
	if c.backslashSep {
		p = strings.ReplaceAll(p, "\\", "/")
	}
	if c.driveLetters && len(p) >= 2 && p[1] == ':' {
		return p[:2] + path.Clean(p[2:])
	}
	return path.Clean(p)
}

// Split splits p into its parent directory and last component. The parent
// keeps no trailing separator except at the root.
func (c *Conventions) Split(p string) (dir, base string) {
	i := len(p) - 1
	for i >= 0 && !c.IsSeparator(p[i]) {
		i--
	}
	if i < 0 {
		return "", p
	}
	dir = p[:i]
	if dir == "" {
		dir = "/"
	}
	return dir, p[i+1:]
}

// Dir returns the parent directory of p, "" when p has no separator.
func (c *Conventions) Dir(p string) string {
	dir, _ := c.Split(p)
	return dir
}

// Base returns the last component of p.
func (c *Conventions) Base(p string) string {
	_, base := c.Split(p)
	return base
}

// Join appends elem to dir with a single separator. A rooted elem wins.
func (c *Conventions) Join(dir, elem string) string {
	if c.IsAbs(elem) {
		return elem
	}
	if dir == "" {
		return elem
	}
	if strings.HasSuffix(dir, "/") {
		return dir + elem
	}
	return dir + "/" + elem
}

// FindAll yields the start offset of every occurrence of needle in
// haystack, left to right, including overlapping ones. The sequence is
// restartable; an empty needle yields nothing.
func FindAll(needle, haystack string) iter.Seq[int] {
	return func(yield func(int) bool) {
		if needle == "" {
			return
		}
		for i := 0; ; {
			j := strings.Index(haystack[i:], needle)
			if j < 0 {
				return
			}
			if !yield(i + j) {
				return
			}
			i += j + 1
		}
	}
}
