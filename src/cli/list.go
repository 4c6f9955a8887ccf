package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"opti2025/src/session"
)

func newListCmd(stdout io.Writer) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List backup sessions for every profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			store := session.New()
			entries := store.List(map[string]string{
				"cleanup":         cfg.CleanupRoot(),
				"performance":     cfg.PerformanceRoot(),
				"max-performance": cfg.MaxPerfRoot(),
			})
			switch output {
			case "json":
				enc := json.NewEncoder(stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(entries)
			case "table", "":
				return renderSessionTable(stdout, entries)
			default:
				return fmt.Errorf("unsupported --output: %s", output)
			}
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "table", "Output format: table|json")
	return cmd
}

func renderSessionTable(w io.Writer, entries []session.Entry) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PROFILE\tTIMESTAMP\tPATH")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Profile, e.Timestamp, e.Path)
	}
	return tw.Flush()
}
