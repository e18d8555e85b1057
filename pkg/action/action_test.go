package action_test

import (
	"iter"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clickpath/clickpath/pkg/action"
	"github.com/clickpath/clickpath/pkg/buffer"
	"github.com/clickpath/clickpath/pkg/pathtext"
	"github.com/clickpath/clickpath/pkg/region"
	"github.com/clickpath/clickpath/pkg/resolver"
	"github.com/clickpath/clickpath/pkg/testutil"
	"github.com/clickpath/clickpath/pkg/workspace"
)

func layout(t *testing.T, folders ...string) *workspace.Layout {
	t.Helper()
	fsys := testutil.NewFS()
	conv := pathtext.POSIX()
	env := testutil.Env(conv, fsys, "/home/me", nil)
	return workspace.Resolve(workspace.Config{Folders: folders}, conv, env, fsys)
}

func seqOf(cs ...resolver.Candidate) iter.Seq[resolver.Candidate] {
	return func(yield func(resolver.Candidate) bool) {
		for _, c := range cs {
			if !yield(c) {
				return
			}
		}
	}
}

func TestSelectOpen(t *testing.T) {
	lay := layout(t, "/x/proj")
	buf := buffer.NewString("see /x/proj/a.go done")

	dec, ok := action.Select(lay, buf, seqOf(resolver.Candidate{
		Kind: resolver.KindFile, Region: region.Region{Begin: 4, End: 16}, Path: "/x/proj/a.go",
	}))
	require.True(t, ok)
	assert.Equal(t, action.Open, dec.Action)
	assert.Equal(t, "/x/proj/a.go", dec.Path)
	assert.Equal(t, "/x/proj/a.go", dec.Target)
	assert.Equal(t, "proj/a.go", dec.Label)
}

func TestSelectGoto(t *testing.T) {
	lay := layout(t, "/x/proj")
	file := resolver.Candidate{
		Kind: resolver.KindFile, Region: region.Region{Begin: 4, End: 16}, Path: "/x/proj/a.go",
	}

	tests := []struct {
		name   string
		text   string
		line   int
		col    int
		target string
		label  string
	}{
		{"line and col", "see /x/proj/a.go:42:7 x", 42, 7, "/x/proj/a.go:42:7", "proj/a.go:42:7"},
		{"line only", "see /x/proj/a.go:12 x", 12, 0, "/x/proj/a.go:12:0", "proj/a.go:12"},
		{"timestamp col dropped", "see /x/proj/a.go:12:2024-01-01", 12, 0, "/x/proj/a.go:12:0", "proj/a.go:12"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dec, ok := action.Select(lay, buffer.NewString(tt.text), seqOf(file))
			require.True(t, ok)
			assert.Equal(t, action.Goto, dec.Action)
			assert.Equal(t, tt.line, dec.Line)
			assert.Equal(t, tt.col, dec.Col)
			assert.Equal(t, tt.target, dec.Target)
			assert.Equal(t, tt.label, dec.Label)
		})
	}
}

func TestSelectPriority(t *testing.T) {
	lay := layout(t, "/x/proj")
	buf := buffer.NewString("irrelevant")

	dec, ok := action.Select(lay, buf, seqOf(
		resolver.Candidate{Kind: resolver.KindMissingFolder, Path: "/x/a"},
		resolver.Candidate{Kind: resolver.KindFolder, Path: "/x/proj/sub"},
		resolver.Candidate{Kind: resolver.KindFile, Path: "/x/proj/f"},
	))
	require.True(t, ok)
	assert.Equal(t, action.Open, dec.Action)
	assert.Equal(t, "/x/proj/f", dec.Path)
}

func TestSelectLongestRegionWins(t *testing.T) {
	lay := layout(t, "/base")
	buf := buffer.NewString("also present")

	dec, ok := action.Select(lay, buf, seqOf(
		resolver.Candidate{Kind: resolver.KindFile, Region: region.Region{Begin: 5, End: 12}, Path: "/base/present"},
		resolver.Candidate{Kind: resolver.KindFile, Region: region.Region{Begin: 0, End: 12}, Path: "/base/also present"},
	))
	require.True(t, ok)
	assert.Equal(t, "/base/also present", dec.Path)
}

func TestSelectFolderInOrOutOfWorkspace(t *testing.T) {
	lay := layout(t, "/x/proj")
	buf := buffer.NewString("x")

	dec, ok := action.Select(lay, buf, seqOf(
		resolver.Candidate{Kind: resolver.KindFolder, Path: "/x/proj/sub"},
	))
	require.True(t, ok)
	assert.Equal(t, action.Reveal, dec.Action)

	dec, ok = action.Select(lay, buf, seqOf(
		resolver.Candidate{Kind: resolver.KindFolder, Path: "/elsewhere"},
	))
	require.True(t, ok)
	assert.Equal(t, action.AddFolder, dec.Action)
}

func TestSelectMissing(t *testing.T) {
	lay := layout(t, "/x/proj")
	buf := buffer.NewString("x")

	dec, ok := action.Select(lay, buf, seqOf(
		resolver.Candidate{Kind: resolver.KindMissingFile, Path: "/x/proj/new.go"},
	))
	require.True(t, ok)
	assert.Equal(t, action.NewFile, dec.Action)
	assert.Equal(t, "/x/proj/new.go", dec.Path)

	dec, ok = action.Select(lay, buf, seqOf(
		resolver.Candidate{Kind: resolver.KindMissingFolder, Path: "/x/proj/a"},
	))
	require.True(t, ok)
	assert.Equal(t, action.CreateFolder, dec.Action)
}

func TestSelectNoCandidates(t *testing.T) {
	lay := layout(t)
	_, ok := action.Select(lay, buffer.NewString("x"), seqOf())
	assert.False(t, ok)

	// a lone text candidate is an audit record, not a decision
	_, ok = action.Select(lay, buffer.NewString("x"), seqOf(
		resolver.Candidate{Kind: resolver.KindText, Path: "x"},
	))
	assert.False(t, ok)
}

func TestSelectText(t *testing.T) {
	lay := layout(t, "/x/proj")

	dec, ok := action.SelectText(lay, seqOf(
		resolver.Candidate{Kind: resolver.KindFile, Path: "/x/proj/a.go"},
		resolver.Candidate{Kind: resolver.KindFile, Path: "/x/proj/sub/a.go"},
	))
	require.True(t, ok)
	assert.Equal(t, action.Open, dec.Action)
	// no buffer, so the longer path wins and no line suffix applies
	assert.Equal(t, "/x/proj/sub/a.go", dec.Path)
	assert.Equal(t, 0, dec.Line)
}

type recordingDispatcher struct {
	calls []string
	path  string
	line  int
	col   int
}

func (d *recordingDispatcher) OpenFile(path string, line, col int) error {
	d.calls = append(d.calls, "open")
	d.path, d.line, d.col = path, line, col
	return nil
}

func (d *recordingDispatcher) AddFolder(path string) error {
	d.calls = append(d.calls, "add")
	d.path = path
	return nil
}

func (d *recordingDispatcher) RevealFolder(path string) error {
	d.calls = append(d.calls, "reveal")
	d.path = path
	return nil
}

func (d *recordingDispatcher) CreateFolder(path string) error {
	d.calls = append(d.calls, "create")
	d.path = path
	return nil
}

func TestDispatch(t *testing.T) {
	tests := []struct {
		dec  action.Decision
		call string
		line int
	}{
		{action.Decision{Action: action.Open, Path: "/f"}, "open", 0},
		{action.Decision{Action: action.Goto, Path: "/f", Line: 3, Col: 1}, "open", 3},
		{action.Decision{Action: action.NewFile, Path: "/f"}, "open", 0},
		{action.Decision{Action: action.AddFolder, Path: "/d"}, "add", 0},
		{action.Decision{Action: action.Reveal, Path: "/d"}, "reveal", 0},
		{action.Decision{Action: action.CreateFolder, Path: "/d"}, "create", 0},
	}
	for _, tt := range tests {
		d := &recordingDispatcher{}
		require.NoError(t, action.Dispatch(d, tt.dec))
		assert.Equal(t, []string{tt.call}, d.calls)
		assert.Equal(t, tt.dec.Path, d.path)
		assert.Equal(t, tt.line, d.line)
	}

	err := action.Dispatch(&recordingDispatcher{}, action.Decision{Action: "bogus"})
	assert.Error(t, err)
}

func TestFirstRevealTarget(t *testing.T) {
	fsys := testutil.NewFS()
	fsys.WriteFile(t, "/top/zeta.txt", "")
	fsys.WriteFile(t, "/top/Alpha.txt", "")

	target, ok := action.FirstRevealTarget(fsys, "/top")
	require.True(t, ok)
	assert.Equal(t, "/top/Alpha.txt", target)

	// descend when the level itself holds no files
	fsys = testutil.NewFS()
	fsys.WriteFile(t, "/top/b/inner.txt", "")
	fsys.MkdirAll(t, "/top/a")
	target, ok = action.FirstRevealTarget(fsys, "/top")
	require.True(t, ok)
	assert.Equal(t, "/top/b/inner.txt", target)

	_, ok = action.FirstRevealTarget(fsys, "/top/a")
	assert.False(t, ok)
}

func TestMakeFolder(t *testing.T) {
	fsys := testutil.NewFS()
	fsys.MkdirAll(t, "/base")

	require.NoError(t, action.MakeFolder(fsys, "/base/sub"))
	assert.NoError(t, action.MakeFolder(fsys, "/base/sub2"))

	err := action.MakeFolder(fsys, "/base/sub")
	assert.Error(t, err)
}
