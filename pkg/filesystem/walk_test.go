package filesystem_test

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/clickpath/clickpath/pkg/filesystem"
	"github.com/clickpath/clickpath/pkg/testutil"
)

func names(entries []fs.DirEntry) []string {
	var out []string
	for _, e := range entries {
		out = append(out, e.Name())
	}
	return out
}

func TestWalkOrderAndPruning(t *testing.T) {
	fsys := testutil.NewFS()
	fsys.WriteFile(t, "/root/a.txt", "")
	fsys.WriteFile(t, "/root/sub/b.txt", "")
	fsys.WriteFile(t, "/root/sub/deep/c.txt", "")
	fsys.WriteFile(t, "/root/skip/d.txt", "")

	var visited []string
	filesystem.Walk(fsys, "/root", func(dir string, dirs, files []fs.DirEntry) ([]string, bool) {
		visited = append(visited, dir)
		var descend []string
		for _, name := range names(dirs) {
			if name != "skip" {
				descend = append(descend, name)
			}
		}
		return descend, false
	})

	assert.Equal(t, []string{"/root", "/root/sub", "/root/sub/deep"}, visited)
}

func TestWalkStop(t *testing.T) {
	fsys := testutil.NewFS()
	fsys.WriteFile(t, "/root/sub/a.txt", "")
	fsys.WriteFile(t, "/root/sub/deep/b.txt", "")

	var visited []string
	filesystem.Walk(fsys, "/root", func(dir string, dirs, files []fs.DirEntry) ([]string, bool) {
		visited = append(visited, dir)
		return names(dirs), dir == "/root/sub"
	})

	assert.Equal(t, []string{"/root", "/root/sub"}, visited)
}

func TestWalkMissingRoot(t *testing.T) {
	fsys := testutil.NewFS()
	called := false
	filesystem.Walk(fsys, "/nope", func(dir string, dirs, files []fs.DirEntry) ([]string, bool) {
		called = true
		return nil, false
	})
	assert.False(t, called)
}

func TestJoinName(t *testing.T) {
	assert.Equal(t, "/a/b", filesystem.JoinName("/a", "b"))
	assert.Equal(t, "/b", filesystem.JoinName("/", "b"))
}

func TestHelpers(t *testing.T) {
	fsys := testutil.NewFS()
	fsys.WriteFile(t, "/dir/file.txt", "x")

	assert.True(t, filesystem.IsDir(fsys, "/dir"))
	assert.False(t, filesystem.IsDir(fsys, "/dir/file.txt"))
	assert.True(t, filesystem.IsFile(fsys, "/dir/file.txt"))
	assert.False(t, filesystem.IsFile(fsys, "/dir"))
	assert.True(t, filesystem.Exists(fsys, "/dir"))
	assert.False(t, filesystem.Exists(fsys, "/other"))
}
