package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/textsasset/internal/core/domain"
	"github.com/custodia-labs/textsasset/internal/logger"
)

// errDocumentsSkipped is returned under --strict when a batch skipped documents.
var errDocumentsSkipped = errors.New("documents skipped")

var (
	strict     bool
	timestamps bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Extract texts from the source documents into TXT files",
	Long: `Extract the translatable texts of every JSON document in the source
folder into a TXT file of the same name in the intermediate folder.

Each line holds one entry as a JSON string literal. Empty entries are written
as the placeholder.

Examples:
  textsasset export
  textsasset export --method json_table
  textsasset export --source ./in --intermediate ./txt`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

var importCmd = &cobra.Command{
	Use:   "import [document.json...]",
	Short: "Merge translated TXT files back into new documents",
	Long: `Merge the lines of every TXT file in the intermediate folder back into
its source document and write the result to the output folder.

Name documents to merge only those. A document whose TXT file has a
different number of lines than it has entries is skipped.

Examples:
  textsasset import
  textsasset import quests.json items.json
  textsasset import --strict`,
	RunE: runImport,
}

func init() {
	for _, c := range []*cobra.Command{exportCmd, importCmd} {
		c.Flags().BoolVar(&strict, "strict", false, "fail when any document was skipped")
		c.Flags().BoolVar(&timestamps, "timestamps", false, "prefix log lines with the time")
		rootCmd.AddCommand(c)
	}
}

func runExport(cmd *cobra.Command, _ []string) error {
	batch, cfg, err := batchService()
	if err != nil {
		return err
	}

	report, err := batch.Export(cmd.Context(), cfg.Method, newSink(cmd))
	if err != nil {
		return err
	}
	return checkStrict(report.Skipped(), report.Total())
}

func runImport(cmd *cobra.Command, args []string) error {
	batch, cfg, err := batchService()
	if err != nil {
		return err
	}
	sink := newSink(cmd)

	if len(args) == 0 {
		report, err := batch.Import(cmd.Context(), cfg.Method, sink)
		if err != nil {
			return err
		}
		return checkStrict(report.Skipped(), report.Total())
	}

	skipped := 0
	for _, name := range args {
		outcome, err := batch.ImportDocument(cmd.Context(), cfg.Method, name, sink)
		if err != nil {
			return err
		}
		logger.Debug("%s: %s", name, outcome.State)
		if !outcome.State.Succeeded() {
			skipped++
		}
	}
	return checkStrict(skipped, len(args))
}

func newSink(cmd *cobra.Command) *logger.LineWriter {
	w := logger.NewLineWriter(cmd.OutOrStdout())
	if timestamps {
		w = w.WithTimestamps()
	}
	return w
}

func checkStrict(skipped, total int) error {
	if !strict || skipped == 0 {
		return nil
	}
	return fmt.Errorf("%d of %d %w", skipped, total, errDocumentsSkipped)
}

// outcomeLabel renders a state for listings.
func outcomeLabel(s domain.OutcomeState) string {
	if s.Succeeded() {
		return "ok"
	}
	return string(s)
}
