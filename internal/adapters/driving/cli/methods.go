package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/textsasset/internal/core/domain"
	"github.com/custodia-labs/textsasset/internal/guide"
)

var methodsCmd = &cobra.Command{
	Use:   "methods",
	Short: "List the extraction methods",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		for _, m := range domain.AllMethods() {
			cmd.Printf("  %-11s %s\n", m, m.Description())
		}
	},
}

var guideCmd = &cobra.Command{
	Use:   "guide",
	Short: "Show how to use the extract and merge workflow",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg := domain.DefaultConfig()
		if services != nil && services.Config != nil {
			c, err := effectiveConfig()
			if err != nil {
				return err
			}
			cfg = c
		}
		for _, line := range guide.Lines(cfg) {
			cmd.Println(line)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(methodsCmd)
	rootCmd.AddCommand(guideCmd)
}
