package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"opti2025/src/safety"
)

func newRestoreCmd(stdout io.Writer, stdin io.Reader) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "restore <" + profileNames + ">",
		Short: "Undo a profile from its most recent backup session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			runner, err := runnerFor(strings.ToLower(args[0]), cfg)
			if err != nil {
				return err
			}
			opts := getSafetyOptions(cmd)
			if opts.DryRun {
				fmt.Fprintf(stdout, "would restore profile %s from its latest backup session\n", runner.Name())
				return nil
			}
			ok, err := safety.Confirm(opts, stdin, stdout,
				fmt.Sprintf("Restore profile %s from its latest backup?", runner.Name()))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(stdout, "aborted")
				return nil
			}
			return renderReport(stdout, output, runner.Name(), runner.Restore())
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "table", "Output format: table|json")
	return cmd
}
