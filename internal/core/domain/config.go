package domain

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Default directory names and markers, kept from the original desktop tool.
const (
	DefaultSourceDir       = "Original_TextsAsset"
	DefaultIntermediateDir = "Output_Clean_Text"
	DefaultOutputDir       = "Output_TextsAsset"
	DefaultPlaceholder     = "---"
	DefaultPayloadField    = "m_Script"
	DefaultHistoryLimit    = 20
)

// Config holds everything a batch needs to know about its environment.
// It replaces global directory constants and is passed to the pipeline
// at construction.
type Config struct {
	// SourceDir holds the original *.json documents.
	SourceDir string

	// IntermediateDir receives one *.txt file per document on export.
	IntermediateDir string

	// OutputDir receives rewritten *.json documents on import.
	OutputDir string

	// Placeholder marks an originally empty value in intermediate files.
	Placeholder string

	// PayloadField is the document key holding the payload.
	PayloadField string

	// Method is the default method when a command does not name one.
	Method Method

	// HistoryLimit is how many runs the history store keeps.
	HistoryLimit int
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		SourceDir:       DefaultSourceDir,
		IntermediateDir: DefaultIntermediateDir,
		OutputDir:       DefaultOutputDir,
		Placeholder:     DefaultPlaceholder,
		PayloadField:    DefaultPayloadField,
		Method:          MethodXMLEntry,
		HistoryLimit:    DefaultHistoryLimit,
	}
}

// Validate checks the configuration for unusable values.
func (c Config) Validate() error {
	if strings.TrimSpace(c.SourceDir) == "" {
		return fmt.Errorf("%w: source directory is required", ErrInvalidInput)
	}
	if strings.TrimSpace(c.IntermediateDir) == "" {
		return fmt.Errorf("%w: intermediate directory is required", ErrInvalidInput)
	}
	if strings.TrimSpace(c.OutputDir) == "" {
		return fmt.Errorf("%w: output directory is required", ErrInvalidInput)
	}
	if filepath.Clean(c.OutputDir) == filepath.Clean(c.SourceDir) {
		return fmt.Errorf("%w: output directory must differ from source directory", ErrInvalidInput)
	}
	if strings.TrimSpace(c.Placeholder) == "" {
		return fmt.Errorf("%w: placeholder must not be blank", ErrInvalidInput)
	}
	if strings.ContainsAny(c.Placeholder, "\"\n\r") {
		return fmt.Errorf("%w: placeholder must not contain quotes or newlines", ErrInvalidInput)
	}
	if c.PayloadField == "" {
		return fmt.Errorf("%w: payload field is required", ErrInvalidInput)
	}
	if c.Method != "" && !c.Method.IsValid() {
		return fmt.Errorf("%w: %q", ErrUnsupportedMethod, c.Method)
	}
	return nil
}
