package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"opti2025/src/profile"
)

// errorPreviewLimit bounds how many error lines a report prints; the full
// list is available through --output json.
const errorPreviewLimit = 5

// renderReport prints a profile report as plain key/value lines or JSON.
func renderReport(w io.Writer, output, name string, rep profile.Report) error {
	switch output {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	case "table", "":
	default:
		return fmt.Errorf("unsupported --output: %s", output)
	}

	fmt.Fprintf(w, "profile: %s\n", name)
	for _, line := range rep.Lines() {
		fmt.Fprintln(w, line)
	}
	if dir := rep.BackupDir(); dir != "" {
		fmt.Fprintf(w, "backup: %s\n", dir)
	}

	errs := rep.Failures()
	shown := errs
	if len(shown) > errorPreviewLimit {
		shown = shown[:errorPreviewLimit]
	}
	for _, e := range shown {
		fmt.Fprintf(w, "error: %s\n", e)
	}
	if extra := len(errs) - len(shown); extra > 0 {
		fmt.Fprintf(w, "... and %d more errors\n", extra)
	}
	return nil
}
