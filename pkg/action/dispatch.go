package action

import (
	"io/fs"
	"sort"
	"strings"

	"github.com/clickpath/clickpath/pkg/clerr"
	"github.com/clickpath/clickpath/pkg/filesystem"
)

// Dispatcher performs the editor-side effect of a decision. The engine
// never calls it; hosts wire a Decision to their own implementation.
type Dispatcher interface {
	OpenFile(path string, line, col int) error
	AddFolder(path string) error
	RevealFolder(path string) error
	CreateFolder(path string) error
}

// Dispatch routes a decision to the matching Dispatcher method.
func Dispatch(d Dispatcher, dec Decision) error {
	switch dec.Action {
	case Open:
		return d.OpenFile(dec.Path, 0, 0)
	case Goto:
		return d.OpenFile(dec.Path, dec.Line, dec.Col)
	case AddFolder:
		return d.AddFolder(dec.Path)
	case Reveal:
		return d.RevealFolder(dec.Path)
	case NewFile:
		return d.OpenFile(dec.Path, 0, 0)
	case CreateFolder:
		return d.CreateFolder(dec.Path)
	}
	return clerr.Newf(clerr.ErrDispatch, "no dispatch for action %q", dec.Action)
}

// FirstRevealTarget finds a file near the top of folder's listing, the
// one an editor would show first when revealing the folder: the
// case-insensitively first file, descending into subfolders in sorted
// order when a level has none.
func FirstRevealTarget(fsys filesystem.FS, folder string) (string, bool) {
	var target string
	filesystem.Walk(fsys, folder, func(dir string, dirs, files []fs.DirEntry) ([]string, bool) {
		if len(files) > 0 {
			names := entryNames(files)
			sortFolded(names)
			target = filesystem.JoinName(dir, names[0])
			return nil, true
		}
		names := entryNames(dirs)
		sortFolded(names)
		return names, false
	})
	return target, target != ""
}

// MakeFolder creates the decision's directory. One level only; the
// engine always proposes the outermost missing directory.
func MakeFolder(fsys filesystem.FS, path string) error {
	if err := fsys.Mkdir(path, 0o755); err != nil {
		return clerr.Wrapf(err, clerr.ErrDirCreate, "creating %s", path)
	}
	return nil
}

func entryNames(entries []fs.DirEntry) []string {
	names := make([]string, len(entries))
	for i, ent := range entries {
		names[i] = ent.Name()
	}
	return names
}

func sortFolded(names []string) {
	sort.Slice(names, func(i, j int) bool {
		return strings.ToLower(names[i]) < strings.ToLower(names[j])
	})
}
