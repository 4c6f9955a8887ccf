// Package cli wires the profile engines to a cobra command tree. It only
// invokes apply/restore and renders the returned results; all semantics live
// in the profile packages.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// NewRootCmd returns the root cobra command for the opti2025 CLI.
func NewRootCmd(stdout, stderr io.Writer, stdin io.Reader) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "opti2025",
		Short:         "Apply and undo reversible Windows optimization profiles",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	addGlobalFlags(cmd)

	cmd.AddCommand(newVersionCmd(stdout))
	cmd.AddCommand(newApplyCmd(stdout, stdin))
	cmd.AddCommand(newRestoreCmd(stdout, stdin))
	cmd.AddCommand(newListCmd(stdout))

	return cmd
}

// Execute runs the CLI with the process stdio and returns the exit code.
func Execute() int {
	configureLogging()
	root := NewRootCmd(os.Stdout, os.Stderr, os.Stdin)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

// configureLogging sets the default slog handler; engines stay silent and
// report through results, so only adapter diagnostics show up here.
func configureLogging() {
	level := slog.LevelWarn
	switch strings.ToLower(os.Getenv("OPTI_LOG_LEVEL")) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "error":
		level = slog.LevelError
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}
