package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Loader resolves the processor configuration for a repository.
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a configuration loader.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger}
}

// Load resolves the configuration. An explicit path must exist and
// parse; that failing is fatal. With no explicit path, a ConfigFile in
// the repository root is used when present, otherwise the built-in
// defaults apply.
func (l *Loader) Load(root, explicitPath string) (*Config, error) {
	path := explicitPath
	if path == "" {
		candidate := filepath.Join(root, ConfigFile)
		if _, err := os.Stat(candidate); err == nil {
			path = candidate
		} else {
			l.logger.Debug("No processor config found, using defaults",
				slog.String("path", candidate))
			cfg := DefaultConfig()
			if err := cfg.Validate(); err != nil {
				return nil, fmt.Errorf("invalid default config: %w", err)
			}
			return cfg, nil
		}
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		return nil, err
	}
	l.logger.Debug("Loaded processor config", slog.String("path", path))

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}
