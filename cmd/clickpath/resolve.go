package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/clickpath/clickpath/pkg/action"
	"github.com/clickpath/clickpath/pkg/buffer"
	"github.com/clickpath/clickpath/pkg/clerr"
	"github.com/clickpath/clickpath/pkg/config"
	"github.com/clickpath/clickpath/pkg/filesystem"
	"github.com/clickpath/clickpath/pkg/pathtext"
	"github.com/clickpath/clickpath/pkg/platform"
	"github.com/clickpath/clickpath/pkg/region"
	"github.com/clickpath/clickpath/pkg/resolver"
	"github.com/clickpath/clickpath/pkg/workspace"
)

func newResolveCmd() *cobra.Command {
	var (
		pos         int
		sel         string
		folders     []string
		pwd         string
		currentFile string
		doDispatch  bool
	)

	cmd := &cobra.Command{
		Use:   "resolve [file]",
		Short: "Resolve the path under a cursor position in a file or stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(args)
			if err != nil {
				return err
			}

			settings, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if len(folders) > 0 {
				settings.Folders = folders
			}
			if pwd != "" {
				settings.WorkingDir = pwd
			}

			conv := pathtext.Native()
			fsys := filesystem.NewOS()
			env := platform.New(conv, fsys)
			cfg := workspace.Config{
				Folders:         settings.Folders,
				WorkingDir:      settings.WorkingDir,
				CurrentFile:     currentFile,
				ExcludedFolders: settings.ExcludedFolders,
			}

			buf := buffer.NewString(text)
			res := resolver.New(buf, fsys, conv, env, cfg)

			var candidates = res.FromPoint(pos)
			if sel != "" {
				r, err := parseSelection(sel, buf.Len())
				if err != nil {
					return err
				}
				candidates = res.FromRegion(r)
			}

			dec, ok := action.Select(res.Layout(), buf, candidates)
			if !ok {
				fmt.Println("no path found")
				return nil
			}
			printDecision(dec)
			if doDispatch {
				return action.Dispatch(newDispatcher(fsys, settings, res.Layout()), dec)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&pos, "pos", "p", 0, "Cursor byte offset into the text")
	cmd.Flags().StringVar(&sel, "sel", "", "Explicit selection BEGIN:END overriding boundary detection")
	cmd.Flags().StringArrayVarP(&folders, "folder", "f", nil, "Workspace folder (repeatable, overrides config)")
	cmd.Flags().StringVar(&pwd, "pwd", "", "Working directory override")
	cmd.Flags().StringVar(&currentFile, "current-file", "", "Path of the file the text came from")
	cmd.Flags().BoolVar(&doDispatch, "dispatch", false, "Perform the resolved action instead of only printing it")

	return cmd
}

func readInput(args []string) (string, error) {
	if len(args) == 1 && args[0] != "-" {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", clerr.Wrapf(err, clerr.ErrBufferRead, "reading %s", args[0])
		}
		return string(data), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", clerr.Wrap(err, clerr.ErrBufferRead, "reading stdin")
	}
	return string(data), nil
}

func parseSelection(sel string, max int) (region.Region, error) {
	begin, end, ok := strings.Cut(sel, ":")
	if !ok {
		return region.Region{}, clerr.Newf(clerr.ErrInvalidInput, "selection %q is not BEGIN:END", sel)
	}
	b, err1 := strconv.Atoi(begin)
	e, err2 := strconv.Atoi(end)
	if err1 != nil || err2 != nil || b < 0 || e > max || b >= e {
		return region.Region{}, clerr.Newf(clerr.ErrInvalidInput, "selection %q out of range", sel)
	}
	return region.Region{Begin: b, End: e}, nil
}
