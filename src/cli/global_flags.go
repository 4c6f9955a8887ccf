package cli

import (
	"github.com/spf13/cobra"

	"opti2025/src/config"
	"opti2025/src/safety"
)

// addGlobalFlags adds the persistent safety and configuration flags.
func addGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().Bool("dry-run", false, "Show what the profile would touch without making changes")
	cmd.PersistentFlags().BoolP("yes", "y", false, "Assume 'yes' to prompts and run non-interactively")
	cmd.PersistentFlags().String("backup-root", "", "Override the backup root directory (default: <home>/.opti2025)")
}

// getSafetyOptions reads the global flags into a safety.Options struct.
func getSafetyOptions(cmd *cobra.Command) safety.Options {
	dry, _ := cmd.Root().PersistentFlags().GetBool("dry-run")
	yes, _ := cmd.Root().PersistentFlags().GetBool("yes")
	return safety.Options{DryRun: dry, Yes: yes}
}

// loadConfig builds the engine configuration, honoring --backup-root.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, err
	}
	if root, _ := cmd.Root().PersistentFlags().GetString("backup-root"); root != "" {
		cfg.BackupRoot = root
	}
	return cfg, nil
}
