package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"opti2025/src/safety"
)

func newApplyCmd(stdout io.Writer, stdin io.Reader) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "apply <" + profileNames + ">",
		Short: "Apply an optimization profile, backing up prior state first",
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
				fmt.Fprintf(stdout, "would apply profile %s to:\n", runner.Name())
				for _, t := range runner.Targets() {
					fmt.Fprintf(stdout, "  %s\n", t)
				}
				return nil
			}
			ok, err := safety.Confirm(opts, stdin, stdout,
				fmt.Sprintf("Apply profile %s? Prior state will be backed up", runner.Name()))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(stdout, "aborted")
				return nil
			}
			return renderReport(stdout, output, runner.Name(), runner.Apply())
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "table", "Output format: table|json")
	return cmd
}
