package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/textsasset/internal/core/domain"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history [run-id]",
	Short: "List recent export and import runs",
	Long: `List recent runs, newest first. Pass a run ID to show the outcome of
every document in that run.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 0, "number of runs to list (default: history.limit)")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	if services == nil || services.History == nil {
		return errors.New("history service not configured")
	}

	if len(args) == 1 {
		return showRun(cmd, args[0])
	}

	runs, err := services.History.Recent(cmd.Context(), historyLimit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}
	if len(runs) == 0 {
		cmd.Println("No runs recorded yet.")
		return nil
	}

	cmd.Printf("%-36s  %-19s  %-6s  %-11s  %s\n", "ID", "STARTED", "KIND", "METHOD", "PROCESSED")
	for _, r := range runs {
		cmd.Printf("%-36s  %-19s  %-6s  %-11s  %d/%d\n",
			r.RunID, r.StartedAt.Local().Format("2006-01-02 15:04:05"),
			r.Direction, r.Method, r.Processed(), r.Total())
	}
	return nil
}

func showRun(cmd *cobra.Command, id string) error {
	run, err := services.History.Get(cmd.Context(), id)
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("run %q: %w", id, err)
	}
	if err != nil {
		return fmt.Errorf("failed to get run: %w", err)
	}

	cmd.Printf("Run:       %s\n", run.RunID)
	cmd.Printf("Kind:      %s\n", run.Direction)
	cmd.Printf("Method:    %s\n", run.Method)
	cmd.Printf("Started:   %s\n", run.StartedAt.Local().Format("2006-01-02 15:04:05"))
	cmd.Printf("Duration:  %s\n", run.Duration())
	cmd.Printf("Processed: %d of %d\n", run.Processed(), run.Total())
	cmd.Println()

	for _, o := range run.Outcomes {
		cmd.Printf("  %-8s %s\n", outcomeLabel(o.State), o.Name)
		if o.Reason != "" {
			cmd.Printf("           %s\n", o.Reason)
		}
	}
	return nil
}
