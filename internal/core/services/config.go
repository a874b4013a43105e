package services

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/custodia-labs/textsasset/internal/core/domain"
	"github.com/custodia-labs/textsasset/internal/core/ports/driven"
	"github.com/custodia-labs/textsasset/internal/core/ports/driving"
)

// Ensure ConfigService implements the interface.
var _ driving.ConfigService = (*ConfigService)(nil)

// Config keys for settings storage.
const (
	KeySourceDir       = "dirs.source"
	KeyIntermediateDir = "dirs.intermediate"
	KeyOutputDir       = "dirs.output"
	KeyPlaceholder     = "placeholder"
	KeyPayloadField    = "payload_field"
	KeyMethod          = "method"
	KeyHistoryLimit    = "history.limit"
)

var configKeys = []string{
	KeySourceDir,
	KeyIntermediateDir,
	KeyOutputDir,
	KeyPlaceholder,
	KeyPayloadField,
	KeyMethod,
	KeyHistoryLimit,
}

// ConfigService merges defaults with the persisted configuration.
type ConfigService struct {
	store driven.ConfigStore
}

// NewConfigService creates a new config service.
func NewConfigService(store driven.ConfigStore) *ConfigService {
	return &ConfigService{store: store}
}

// Get returns the effective configuration.
// Unset keys take their defaults; an invalid persisted method is an error.
func (s *ConfigService) Get() (domain.Config, error) {
	cfg := domain.DefaultConfig()

	cfg.SourceDir = s.getString(KeySourceDir, cfg.SourceDir)
	cfg.IntermediateDir = s.getString(KeyIntermediateDir, cfg.IntermediateDir)
	cfg.OutputDir = s.getString(KeyOutputDir, cfg.OutputDir)
	cfg.Placeholder = s.getString(KeyPlaceholder, cfg.Placeholder)
	cfg.PayloadField = s.getString(KeyPayloadField, cfg.PayloadField)

	if raw := s.store.GetString(KeyMethod); raw != "" {
		m, err := domain.ParseMethod(raw)
		if err != nil {
			return cfg, fmt.Errorf("config %s: %w", KeyMethod, err)
		}
		cfg.Method = m
	}
	if n := s.store.GetInt(KeyHistoryLimit); n > 0 {
		cfg.HistoryLimit = n
	}

	return cfg, nil
}

// Set validates value against the rest of the configuration and persists it.
func (s *ConfigService) Set(key, value string) error {
	cfg, err := s.Get()
	if err != nil && key != KeyMethod {
		return err
	}

	var stored any = value
	switch key {
	case KeySourceDir:
		cfg.SourceDir = value
	case KeyIntermediateDir:
		cfg.IntermediateDir = value
	case KeyOutputDir:
		cfg.OutputDir = value
	case KeyPlaceholder:
		cfg.Placeholder = value
	case KeyPayloadField:
		cfg.PayloadField = value
	case KeyMethod:
		m, err := domain.ParseMethod(value)
		if err != nil {
			return err
		}
		cfg.Method = m
		stored = m.String()
	case KeyHistoryLimit:
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || n <= 0 {
			return fmt.Errorf("%w: %s must be a positive integer", domain.ErrInvalidInput, key)
		}
		cfg.HistoryLimit = n
		stored = n
	default:
		return fmt.Errorf("%w: unknown config key %q", domain.ErrInvalidInput, key)
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	return s.store.Set(key, stored)
}

// Reset removes a persisted key.
func (s *ConfigService) Reset(key string) error {
	if !slices.Contains(configKeys, key) {
		return fmt.Errorf("%w: unknown config key %q", domain.ErrInvalidInput, key)
	}
	return s.store.Unset(key)
}

// Keys returns the recognised configuration keys.
func (s *ConfigService) Keys() []string {
	return slices.Clone(configKeys)
}

// Path returns the configuration file path.
func (s *ConfigService) Path() string {
	return s.store.Path()
}

func (s *ConfigService) getString(key, fallback string) string {
	if v := s.store.GetString(key); v != "" {
		return v
	}
	return fallback
}
