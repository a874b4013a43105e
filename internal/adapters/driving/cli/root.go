// Package cli implements the textsasset command line.
// Commands are registered on rootCmd from each file's init function.
package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/textsasset/internal/core/domain"
	"github.com/custodia-labs/textsasset/internal/core/ports/driving"
	"github.com/custodia-labs/textsasset/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// errNotConfigured is returned when a command runs before services are wired.
var errNotConfigured = errors.New("services not configured")

// Services holds the core services the commands drive.
type Services struct {
	// Config reads and updates persisted settings.
	Config driving.ConfigService

	// History lists recorded runs. Optional.
	History driving.HistoryService

	// NewBatch builds a batch service for an effective configuration.
	NewBatch func(cfg domain.Config) driving.BatchService

	// Close releases stores opened during wiring. Optional.
	Close func() error
}

// Options carries the global flags that decide how services are built.
type Options struct {
	// ConfigDir overrides the configuration and data directory.
	ConfigDir string

	// Ephemeral keeps configuration and history in memory only.
	Ephemeral bool
}

// Wiring builds services once global flags are parsed.
type Wiring func(opts Options) (*Services, error)

var (
	wiring   Wiring
	services *Services
	options  Options
	verbose  bool

	// Per-invocation overrides of the persisted configuration.
	sourceDir       string
	intermediateDir string
	outputDir       string
	placeholder     string
	methodName      string
)

var rootCmd = &cobra.Command{
	Use:   "textsasset",
	Short: "Extract and re-merge translatable texts from TextsAsset JSON files",
	Long: `textsasset extracts the translatable texts of TextsAsset JSON documents
into plain text files, one quoted line per entry, and merges the translated
lines back into new documents.

Place the original documents in the source folder, run 'textsasset export',
translate the files in the intermediate folder, then run 'textsasset import'.`,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "print diagnostic output")
	flags.StringVar(&options.ConfigDir, "config-dir", "", "configuration directory (default ~/.textsasset)")
	flags.BoolVar(&options.Ephemeral, "ephemeral", false, "keep configuration and history in memory")
	flags.StringVar(&sourceDir, "source", "", "folder holding the original JSON documents")
	flags.StringVar(&intermediateDir, "intermediate", "", "folder receiving the extracted TXT files")
	flags.StringVar(&outputDir, "output", "", "folder receiving the merged JSON documents")
	flags.StringVar(&placeholder, "placeholder", "", "marker written for empty entries")
	flags.StringVarP(&methodName, "method", "m", "", "extraction method (see 'textsasset methods')")
}

// SetWiring registers the function that builds services.
func SetWiring(w Wiring) {
	wiring = w
}

// SetServices installs ready-made services, bypassing wiring.
func SetServices(s *Services) {
	services = s
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func setup(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	if services != nil || wiring == nil {
		return nil
	}

	s, err := wiring(options)
	if err != nil {
		return fmt.Errorf("initialising: %w", err)
	}
	services = s
	logger.Debug("services wired (config-dir=%q ephemeral=%t)", options.ConfigDir, options.Ephemeral)
	return nil
}

func teardown(_ *cobra.Command, _ []string) error {
	if services == nil || services.Close == nil {
		return nil
	}
	if err := services.Close(); err != nil {
		return fmt.Errorf("closing stores: %w", err)
	}
	return nil
}

// effectiveConfig returns the persisted configuration with flag overrides applied.
func effectiveConfig() (domain.Config, error) {
	if services == nil || services.Config == nil {
		return domain.Config{}, errNotConfigured
	}

	cfg, err := services.Config.Get()
	if err != nil {
		return domain.Config{}, fmt.Errorf("loading configuration: %w", err)
	}

	if sourceDir != "" {
		cfg.SourceDir = sourceDir
	}
	if intermediateDir != "" {
		cfg.IntermediateDir = intermediateDir
	}
	if outputDir != "" {
		cfg.OutputDir = outputDir
	}
	if placeholder != "" {
		cfg.Placeholder = placeholder
	}
	if methodName != "" {
		m, err := domain.ParseMethod(methodName)
		if err != nil {
			return domain.Config{}, err
		}
		cfg.Method = m
	}

	if err := cfg.Validate(); err != nil {
		return domain.Config{}, err
	}
	logger.Debug("effective config: %+v", cfg)
	return cfg, nil
}

// batchService builds a batch service for the effective configuration.
func batchService() (driving.BatchService, domain.Config, error) {
	cfg, err := effectiveConfig()
	if err != nil {
		return nil, domain.Config{}, err
	}
	if services.NewBatch == nil {
		return nil, domain.Config{}, errNotConfigured
	}
	return services.NewBatch(cfg), cfg, nil
}
