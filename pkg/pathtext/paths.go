package pathtext

import "strings"

// AbsolutePath is a normalized, OS-comparable absolute path. The canonical
// (case-folded) form is used for all equality and ancestor checks; the
// normalized form is what callers display and hand to the filesystem.
// Immutable once constructed.
type AbsolutePath struct {
	raw   string
	norm  string
	canon string
}

// NewAbsolute builds an AbsolutePath from s under these conventions.
func (c *Conventions) NewAbsolute(s string) AbsolutePath {
	norm := c.NormalizePath(s)
	return AbsolutePath{raw: s, norm: norm, canon: c.NormalizeCase(norm)}
}

// String returns the normalized form.
func (p AbsolutePath) String() string { return p.norm }

// Raw returns the string the path was constructed from.
func (p AbsolutePath) Raw() string { return p.raw }

// Canonical returns the case-folded comparison form.
func (p AbsolutePath) Canonical() string { return p.canon }

// IsZero reports whether p was never constructed.
func (p AbsolutePath) IsZero() bool { return p.norm == "" }

// Equal reports canonical-form equality.
func (p AbsolutePath) Equal(o AbsolutePath) bool { return p.canon == o.canon }

// IsAncestorOf reports whether o is strictly nested inside p: o's
// canonical form starts with p's followed by a separator. Irreflexive.
func (p AbsolutePath) IsAncestorOf(o AbsolutePath) bool {
	if p.canon == o.canon || len(o.canon) <= len(p.canon) {
		return false
	}
	return strings.HasPrefix(o.canon, p.canon) && o.canon[len(p.canon)] == '/'
}

// ContainsOrEquals reports whether o is p itself or nested inside it.
func (p AbsolutePath) ContainsOrEquals(o AbsolutePath) bool {
	return p.Equal(o) || p.IsAncestorOf(o)
}

// PartialPath is a non-absolute path fragment, comparable to buffer text
// under the same canonical-equality rule as AbsolutePath. Immutable.
type PartialPath struct {
	raw   string
	canon string
}

// NewPartial builds a PartialPath from s under these conventions.
func (c *Conventions) NewPartial(s string) PartialPath {
	return PartialPath{raw: s, canon: c.NormalizeCase(s)}
}

// String returns the fragment as constructed.
func (p PartialPath) String() string { return p.raw }

// Canonical returns the case-folded comparison form.
func (p PartialPath) Canonical() string { return p.canon }

// Len returns the byte length of the raw fragment.
func (p PartialPath) Len() int { return len(p.raw) }

// Equal reports canonical-form equality.
func (p PartialPath) Equal(o PartialPath) bool { return p.canon == o.canon }
