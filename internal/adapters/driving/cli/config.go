package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/textsasset/internal/core/domain"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change persisted settings",
	Long: `Show or change the settings stored in the configuration file.
Command line flags override these values for a single run.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective settings",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Persist a setting",
	Long: `Persist a setting.

Keys:
  dirs.source        folder holding the original JSON documents
  dirs.intermediate  folder receiving the extracted TXT files
  dirs.output        folder receiving the merged JSON documents
  placeholder        marker written for empty entries
  payload_field      document key holding the payload
  method             default extraction method
  history.limit      number of runs kept in history`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configResetCmd = &cobra.Command{
	Use:   "reset <key>",
	Short: "Restore the default for a setting",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigReset,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configResetCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	cfg, err := effectiveConfig()
	if err != nil {
		return err
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	for _, kv := range configRows(cfg) {
		cmd.Printf("  %-18s %s\n", kv[0], kv[1])
	}
	if path := services.Config.Path(); path != "" {
		cmd.Println()
		cmd.Printf("Stored in %s\n", path)
	}
	return nil
}

func configRows(cfg domain.Config) [][2]string {
	return [][2]string{
		{"dirs.source", cfg.SourceDir},
		{"dirs.intermediate", cfg.IntermediateDir},
		{"dirs.output", cfg.OutputDir},
		{"placeholder", cfg.Placeholder},
		{"payload_field", cfg.PayloadField},
		{"method", cfg.Method.String()},
		{"history.limit", fmt.Sprint(cfg.HistoryLimit)},
	}
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if services == nil || services.Config == nil {
		return errNotConfigured
	}

	key, value := args[0], args[1]
	if err := services.Config.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w (keys: %s)", key, err, strings.Join(services.Config.Keys(), ", "))
	}
	cmd.Printf("Set %s = %s\n", key, value)
	return nil
}

func runConfigReset(cmd *cobra.Command, args []string) error {
	if services == nil || services.Config == nil {
		return errNotConfigured
	}

	if err := services.Config.Reset(args[0]); err != nil {
		return fmt.Errorf("failed to reset %s: %w", args[0], err)
	}
	cmd.Printf("Reset %s to its default\n", args[0])
	return nil
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	if services == nil || services.Config == nil {
		return errNotConfigured
	}

	path := services.Config.Path()
	if path == "" {
		path = "(in memory)"
	}
	cmd.Println(path)
	return nil
}
