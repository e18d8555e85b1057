package main

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/clickpath/clickpath/pkg/action"
	"github.com/clickpath/clickpath/pkg/clerr"
	"github.com/clickpath/clickpath/pkg/config"
	"github.com/clickpath/clickpath/pkg/filesystem"
	"github.com/clickpath/clickpath/pkg/pathtext"
	"github.com/clickpath/clickpath/pkg/platform"
	"github.com/clickpath/clickpath/pkg/resolver"
	"github.com/clickpath/clickpath/pkg/workspace"
)

func newClipboardCmd() *cobra.Command {
	var (
		folders    []string
		pwd        string
		doDispatch bool
	)

	cmd := &cobra.Command{
		Use:   "clipboard",
		Short: "Resolve the path held in the system clipboard",
		Long: `Reads the system clipboard and treats its contents as an explicit path
reference, the way a selection overrides boundary detection. With no
buffer to measure match regions against, the longest resolved path wins.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := clipboard.ReadAll()
			if err != nil {
				return clerr.Wrap(err, clerr.ErrClipboard, "reading clipboard")
			}
			text = strings.TrimSpace(text)
			if text == "" {
				fmt.Println("clipboard is empty")
				return nil
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
				ExcludedFolders: settings.ExcludedFolders,
			}

			res := resolver.New(nil, fsys, conv, env, cfg)
			dec, ok := action.SelectText(res.Layout(), res.FromText(text))
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

	cmd.Flags().StringArrayVarP(&folders, "folder", "f", nil, "Workspace folder (repeatable, overrides config)")
	cmd.Flags().StringVar(&pwd, "pwd", "", "Working directory override")
	cmd.Flags().BoolVar(&doDispatch, "dispatch", false, "Perform the resolved action instead of only printing it")

	return cmd
}
