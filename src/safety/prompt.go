// Package safety gates the mutating commands behind an interactive
// confirmation unless the caller opted out.
package safety

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Options mirror the global CLI flags that control prompting.
type Options struct {
	// DryRun means no mutation should happen at all.
	DryRun bool
	// Yes answers every prompt affirmatively without asking.
	Yes bool
}

// Confirm prompts the user before a profile mutates the machine.
// - If opts.DryRun is true, it returns false without prompting: no action
//   should be taken.
// - If opts.Yes is true, it returns true without prompting.
// The caller decides what to do with the result.
func Confirm(opts Options, in io.Reader, out io.Writer, question string) (bool, error) {
	if opts.DryRun {
		return false, nil
	}
	if opts.Yes {
		return true, nil
	}
	if out != nil {
		fmt.Fprintf(out, "%s [y/N]: ", strings.TrimSpace(question))
	}
	reader := bufio.NewReader(in)
	line, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	ans := strings.TrimSpace(strings.ToLower(line))
	return ans == "y" || ans == "yes", nil
}
