package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/clickpath/clickpath/internal/version"
	"github.com/clickpath/clickpath/pkg/logging"
)

var (
	verbosity  int
	configPath string
)

// NewRootCmd builds the clickpath command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "clickpath",
		Short: "Infer the file path under a cursor and what to do with it",
		Long: `clickpath takes a piece of text (a log, compiler output, shell output)
and a cursor position, infers the most likely filesystem path referenced
there, and reports the action that applies: open the file, jump to a
line, add a folder, or create what is missing.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default is $XDG_CONFIG_HOME/clickpath/clickpath.toml)")

	rootCmd.AddCommand(newResolveCmd())
	rootCmd.AddCommand(newClipboardCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(versionCmd)

	return rootCmd
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("clickpath %s (commit %s, built %s)\n", version.Version, version.Commit, version.Date)
	},
}
