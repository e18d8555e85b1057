package main

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"

	"github.com/clickpath/clickpath/pkg/action"
	"github.com/clickpath/clickpath/pkg/clerr"
	"github.com/clickpath/clickpath/pkg/config"
	"github.com/clickpath/clickpath/pkg/filesystem"
	"github.com/clickpath/clickpath/pkg/logging"
	"github.com/clickpath/clickpath/pkg/workspace"
)

// printDecision writes "ACTION label" the way the context menu would show
// it, bold when stdout is a terminal.
func printDecision(dec action.Decision) {
	act := string(dec.Action)
	if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		act = pterm.Bold.Sprint(act)
	}
	fmt.Printf("%s %s\n", act, dec.Label)
}

// cliDispatcher performs decisions from the command line: files open via
// the configured editor template, folder actions print what an editor
// host would do, and Create Folder really creates the directory.
type cliDispatcher struct {
	fsys     filesystem.FS
	settings config.Settings
	layout   *workspace.Layout
}

func newDispatcher(fsys filesystem.FS, settings config.Settings, layout *workspace.Layout) action.Dispatcher {
	return &cliDispatcher{fsys: fsys, settings: settings, layout: layout}
}

func (d *cliDispatcher) OpenFile(path string, line, col int) error {
	tmpl := d.settings.Editor
	if tmpl == "" {
		tmpl = config.Default().Editor
	}
	cmdline := strings.NewReplacer(
		"{path}", path,
		"{line}", strconv.Itoa(line),
		"{col}", strconv.Itoa(col),
	).Replace(tmpl)

	log := logging.GetLogger("dispatch")
	log.Info().Str("command", cmdline).Msg("opening")

	parts := strings.Fields(cmdline)
	if len(parts) == 0 {
		return clerr.New(clerr.ErrDispatch, "empty editor command")
	}
	cmd := exec.Command(parts[0], parts[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return clerr.Wrapf(err, clerr.ErrDispatch, "running %s", parts[0])
	}
	return nil
}

func (d *cliDispatcher) AddFolder(path string) error {
	fmt.Printf("add folder to workspace: %s\n", path)
	return nil
}

func (d *cliDispatcher) RevealFolder(path string) error {
	target, ok := action.FirstRevealTarget(d.fsys, path)
	if !ok {
		fmt.Printf("reveal folder: %s (empty)\n", path)
		return nil
	}
	fmt.Printf("reveal: %s\n", target)
	return nil
}

func (d *cliDispatcher) CreateFolder(path string) error {
	if err := action.MakeFolder(d.fsys, path); err != nil {
		return err
	}
	if !d.layout.ContainsPath(path) {
		fmt.Printf("add folder to workspace: %s\n", path)
	}
	fmt.Printf("created %s\n", path)
	return nil
}
