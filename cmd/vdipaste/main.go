// Package main implements vdipaste, which types clipboard or file content
// into a window of a remote desktop session by driving xdotool.
package main

import (
	"context"
	"fmt"
	"os"
	"syscall"

	"github.com/Gaurav-Gosain/vdipaste/internal/config"
	"github.com/Gaurav-Gosain/vdipaste/internal/transfer"
	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// Version information (set by goreleaser)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	builtBy = "unknown"
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Prefix:          "vdipaste",
})

func main() {
	os.Exit(run())
}

func run() (code int) {
	defer func() {
		if r := recover(); r != nil {
			err := transfer.Recovered(r)
			logger.Error("uncaught error", "err", err)
			code = transfer.ExitCode(err)
		}
	}()

	if err := fang.Execute(
		context.Background(),
		newRootCmd(),
		fang.WithVersion(fmt.Sprintf("%s\nCommit: %s\nBuilt: %s\nBy: %s", version, commit, date, builtBy)),
		fang.WithNotifySignal(os.Interrupt, syscall.SIGTERM),
	); err != nil {
		return transfer.ExitCode(err)
	}
	return transfer.ExitOK
}

func newRootCmd() *cobra.Command {
	flags := &transferFlags{}

	rootCmd := &cobra.Command{
		Use:   "vdipaste [file]",
		Short: "Type clipboard or file content into a remote desktop window",
		Long: `vdipaste - paste into VDI sessions

Remote desktop clients often block the clipboard. vdipaste types the content
instead: it finds the target window, runs the configured open steps and sends
the payload key by key, printing PROGRESS:<percent> lines on stdout.`,
		Example: `  # Type the clipboard into window 0x3a00007 using the "notepad" configuration
  vdipaste -t -c -w 0x3a00007 --config_name notepad

  # Send a tab separated file into a spreadsheet
  vdipaste -s data.tsv -w 62914567 --config_name excel

  # List visible windows and their ids
  vdipaste windows

  # Re-send a file every time it is saved
  vdipaste watch notes.txt --config_name notepad -w 62914567`,
		Version: version,
		Args:    cobra.MaximumNArgs(1),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if flags.debug {
				logger.SetLevel(log.DebugLevel)
			}
			return config.LoadEnvFile(".env")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			var file string
			if len(args) > 0 {
				file = args[0]
			}
			return runTransfer(cmd.Context(), flags, file)
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&flags.debug, "debug", "d", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", config.DefaultFile, "Configuration file (.json, .toml or .yaml)")
	flags.bind(rootCmd.Flags())

	rootCmd.AddCommand(
		newConfigCmd(flags),
		newWindowsCmd(flags),
		newWatchCmd(flags),
	)
	return rootCmd
}
