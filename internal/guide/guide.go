// Package guide renders the usage guide shown by the guide command and
// on TUI start.
package guide

import (
	"fmt"

	"github.com/custodia-labs/textsasset/internal/core/domain"
)

// Lines returns the guide for cfg, one line per element.
func Lines(cfg domain.Config) []string {
	lines := []string{
		"--- How to Use ---",
		fmt.Sprintf("1. '%s' folder:", cfg.SourceDir),
		"   - Place your original JSON files in this folder.",
		"   - Texts are extracted from here.",
		fmt.Sprintf("   - Example: place 'quests.json' inside '%s/'.", cfg.SourceDir),
		"",
		fmt.Sprintf("2. '%s' folder:", cfg.IntermediateDir),
		"   - Select the method matching your files, then run export.",
		"   - The extracted texts appear here as .txt files, one quoted line per entry.",
		fmt.Sprintf("   - Translate the lines. Keep the placeholder '%s' for empty entries", cfg.Placeholder),
		"     and never add or remove lines.",
		fmt.Sprintf("   - Example: '%s/quests.txt' is created for you to edit.", cfg.IntermediateDir),
		"",
		fmt.Sprintf("3. '%s' folder:", cfg.OutputDir),
		"   - Keep the same method selected and run import.",
		"   - New JSON files with your translations are written here.",
		fmt.Sprintf("   - Example: the translated file '%s/quests.json' is ready.", cfg.OutputDir),
		"",
		"--- Method Descriptions ---",
	}
	for _, m := range domain.AllMethods() {
		lines = append(lines, fmt.Sprintf("'%s': %s in '%s'.", m, m.Description(), cfg.PayloadField))
	}
	return append(lines, "--------------------")
}
