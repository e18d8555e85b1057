package pathtext

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsLikelyPathChar(t *testing.T) {
	conv := POSIX()

	for _, ch := range "abcXYZ019._-+/~$ступ{}%" {
		assert.True(t, conv.IsLikelyPathChar(ch), "expected %q to be path-like", ch)
	}
	for _, ch := range "<>&|'\",;:[]()*?`=#! \t\n" {
		assert.False(t, conv.IsLikelyPathChar(ch), "expected %q to be rejected", ch)
	}
}

func TestIsLikelyPathCharPercent(t *testing.T) {
	// %VAR% syntax makes % a boundary character, but only there.
	assert.True(t, POSIX().IsLikelyPathChar('%'))
	assert.False(t, Windows().IsLikelyPathChar('%'))
}

func TestFindAll(t *testing.T) {
	tests := []struct {
		name     string
		needle   string
		haystack string
		want     []int
	}{
		{"no match", "xyz", "abcabc", nil},
		{"single", "b", "abc", []int{1}},
		{"repeated", "ab", "ababab", []int{0, 2, 4}},
		{"overlapping", "aa", "aaaa", []int{0, 1, 2}},
		{"empty needle", "", "abc", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := slices.Collect(FindAll(tt.needle, tt.haystack))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFindAllEarlyStop(t *testing.T) {
	var got []int
	for i := range FindAll("a", "aaaa") {
		got = append(got, i)
		if len(got) == 2 {
			break
		}
	}
	assert.Equal(t, []int{0, 1}, got)
}

func TestIsAbs(t *testing.T) {
	posix := POSIX()
	assert.True(t, posix.IsAbs("/etc/hosts"))
	assert.False(t, posix.IsAbs("etc/hosts"))
	assert.False(t, posix.IsAbs("~/file"))
	assert.False(t, posix.IsAbs(""))
	assert.False(t, posix.IsAbs("C:\\Windows"))

	win := Windows()
	assert.True(t, win.IsAbs("C:\\Windows"))
	assert.True(t, win.IsAbs("c:/tools"))
	assert.True(t, win.IsAbs("\\share\\x"))
	assert.False(t, win.IsAbs("1:\\x"))
	assert.False(t, win.IsAbs("src\\main.go"))
}

func TestNormalizePath(t *testing.T) {
	conv := POSIX()
	assert.Equal(t, "/a/c", conv.NormalizePath("/a/b/../c"))
	assert.Equal(t, "/a/b", conv.NormalizePath("/a//b/"))
	assert.Equal(t, "/a/b", conv.NormalizePath("/a/./b"))
	assert.Equal(t, "/", conv.NormalizePath("/.."))

	win := Windows()
	assert.Equal(t, "C:/tools/bin", win.NormalizePath("C:\\tools\\x\\..\\bin"))
}

func TestSplitDirBase(t *testing.T) {
	conv := POSIX()

	dir, base := conv.Split("/a/b")
	assert.Equal(t, "/a", dir)
	assert.Equal(t, "b", base)

	dir, base = conv.Split("/a")
	assert.Equal(t, "/", dir)
	assert.Equal(t, "a", base)

	dir, base = conv.Split("name")
	assert.Equal(t, "", dir)
	assert.Equal(t, "name", base)

	assert.Equal(t, "/", conv.Dir("/"))
	assert.Equal(t, "file.go", conv.Base("src/file.go"))
}

func TestJoin(t *testing.T) {
	conv := POSIX()
	assert.Equal(t, "/a/b", conv.Join("/a", "b"))
	assert.Equal(t, "/a/b", conv.Join("/a/", "b"))
	assert.Equal(t, "/abs", conv.Join("/a", "/abs"))
	assert.Equal(t, "rel", conv.Join("", "rel"))
}

func TestAbsolutePathComparison(t *testing.T) {
	conv := POSIX()
	a := conv.NewAbsolute("/home/user/project")
	b := conv.NewAbsolute("/home/user/project/src")
	c := conv.NewAbsolute("/home/user/project2")

	assert.True(t, a.IsAncestorOf(b))
	assert.False(t, b.IsAncestorOf(a))
	assert.False(t, a.IsAncestorOf(a), "ancestor relation is irreflexive")
	assert.False(t, a.IsAncestorOf(c), "sibling prefix without separator is not nesting")
	assert.True(t, a.ContainsOrEquals(a))
	assert.True(t, a.ContainsOrEquals(b))
}

func TestAbsolutePathCaseFolding(t *testing.T) {
	win := Windows()
	a := win.NewAbsolute("C:/Users/Dev")
	b := win.NewAbsolute("c:/users/dev")
	assert.True(t, a.Equal(b))
	assert.True(t, a.IsAncestorOf(win.NewAbsolute("C:/USERS/DEV/src")))

	posix := POSIX()
	assert.False(t, posix.NewAbsolute("/a/B").Equal(posix.NewAbsolute("/a/b")))
}

func TestPartialPathComparison(t *testing.T) {
	win := Windows()
	assert.True(t, win.NewPartial("Sub/File.TXT").Equal(win.NewPartial("sub/file.txt")))
	assert.False(t, POSIX().NewPartial("File").Equal(POSIX().NewPartial("file")))
	assert.Equal(t, 3, POSIX().NewPartial("abc").Len())
}
