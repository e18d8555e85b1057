package filesystem

import (
	"io/fs"
	"strings"
)

// WalkFunc is called for each visited directory with its child
// directories and files split apart. It returns the names of the
// subdirectories to descend into, and a stop flag that aborts the whole
// walk. Pruning happens by omitting a name from descend; the walk never
// mutates anything in place.
type WalkFunc func(dir string, dirs, files []fs.DirEntry) (descend []string, stop bool)

// Walk traverses root depth-first, parents before children, children in
// the order fn returned them. Directories that fail to list are skipped.
// Walk holds no directory handles between callbacks, so an early stop
// leaves nothing dangling.
func Walk(fsys FS, root string, fn WalkFunc) {
	stack := []string{root}
	for len(stack) > 0 {
		dir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		entries, err := fsys.ReadDir(dir)
		if err != nil {
			continue
		}
		var dirs, files []fs.DirEntry
		for _, ent := range entries {
			if ent.IsDir() {
				dirs = append(dirs, ent)
			} else {
				files = append(files, ent)
			}
		}
		descend, stop := fn(dir, dirs, files)
		if stop {
			return
		}
		for i := len(descend) - 1; i >= 0; i-- {
			stack = append(stack, JoinName(dir, descend[i]))
		}
	}
}

// JoinName appends a child name to a directory path.
func JoinName(dir, name string) string {
	if strings.HasSuffix(dir, "/") {
		return dir + name
	}
	return dir + "/" + name
}
