package region

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/clickpath/clickpath/pkg/buffer"
	"github.com/clickpath/clickpath/pkg/pathtext"
)

func expander(text string) *Expander {
	return NewExpander(buffer.NewString(text), pathtext.POSIX())
}

func TestExpandPathRegion(t *testing.T) {
	tests := []struct {
		name string
		text string
		pos  int
		want Region
	}{
		{"inside brackets", "[abc]", 2, Region{1, 4}},
		{"whole buffer", "abc", 1, Region{0, 3}},
		{"at start", "abc def", 0, Region{0, 3}},
		{"second word", "abc def", 5, Region{4, 7}},
		{"env assignment", "NAME=/etc/hosts", 8, Region{5, 15}},
		{"markdown anchor", "docs/install.md#aws", 3, Region{0, 15}},
		{"click on boundary", "x [y", 2, Region{2, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := expander(tt.text).ExpandPathRegion(tt.pos, tt.pos)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExpandRight(t *testing.T) {
	conv := pathtext.POSIX()
	e := expander("some /tmp/dir/file.txt after")

	// region covering "/tmp/dir" is 5..13
	got, ok := e.ExpandRight(Region{5, 13}, conv.NewPartial("/file.txt"))
	assert.True(t, ok)
	assert.Equal(t, Region{5, 22}, got)

	_, ok = e.ExpandRight(Region{5, 13}, conv.NewPartial("/other.txt"))
	assert.False(t, ok)

	// empty suffix matches in place
	got, ok = e.ExpandRight(Region{5, 13}, conv.NewPartial(""))
	assert.True(t, ok)
	assert.Equal(t, Region{5, 13}, got)

	// suffix running past the buffer end fails
	_, ok = e.ExpandRight(Region{23, 28}, conv.NewPartial("xxxxx"))
	assert.False(t, ok)
}

func TestExpandRightCaseInsensitive(t *testing.T) {
	e := NewExpander(buffer.NewString("see Src/Main.GO here"), pathtext.Windows())
	got, ok := e.ExpandRight(Region{4, 7}, pathtext.Windows().NewPartial("/main.go"))
	assert.True(t, ok)
	assert.Equal(t, Region{4, 15}, got)
}

func TestExpandLeft(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		base    Region
		dirname string
		want    Region
	}{
		{
			"full path present",
			"in /home/x/parent/file go",
			Region{18, 22},
			"/home/x/parent",
			Region{3, 22},
		},
		{
			"partial path present",
			"see parent/file now",
			Region{11, 15},
			"/home/x/parent",
			Region{4, 15},
		},
		{
			"no separator before region",
			"just file here",
			Region{5, 9},
			"/home/x/parent",
			Region{5, 9},
		},
		{
			"doubled separator skipped",
			"x parent//file",
			Region{10, 14},
			"/home/x/parent",
			Region{2, 14},
		},
		{
			"self reference skipped",
			"x parent/./file",
			Region{11, 15},
			"/home/x/parent",
			Region{2, 15},
		},
		{
			"mismatched component stops",
			"a nomatch/file b",
			Region{10, 14},
			"/home/x/parent",
			Region{10, 14},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := expander(tt.text).ExpandLeft(tt.base, tt.dirname)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExpandLeftThenRightRoundTrip(t *testing.T) {
	conv := pathtext.POSIX()
	text := "at /data/proj/lib/util.go line"
	e := expander(text)

	full := Region{3, 25}

	// expanding the basename region left recovers the full region
	left := e.ExpandLeft(Region{18, 25}, "/data/proj/lib")
	assert.Equal(t, full, left)

	// expanding the directory region right recovers it too
	right, ok := e.ExpandRight(Region{3, 13}, conv.NewPartial("/lib/util.go"))
	assert.True(t, ok)
	assert.Equal(t, full, right)
}

func TestRegionHelpers(t *testing.T) {
	r := Region{2, 5}
	assert.Equal(t, 3, r.Size())
	assert.False(t, r.Empty())
	assert.True(t, r.Contains(2))
	assert.True(t, r.Contains(5))
	assert.False(t, r.Contains(6))
	assert.True(t, Region{4, 4}.Empty())
}
