package driving

import "github.com/custodia-labs/textsasset/internal/core/domain"

// ConfigService reads and updates the persisted configuration.
type ConfigService interface {
	// Get returns defaults overlaid with persisted values.
	Get() (domain.Config, error)

	// Set validates and persists a single key.
	Set(key, value string) error

	// Reset removes a persisted key so its default applies again.
	Reset(key string) error

	// Keys returns the recognised configuration keys.
	Keys() []string

	// Path returns the configuration file path.
	Path() string
}
