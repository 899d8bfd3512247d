package store

import (
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/amterp/swatch/internal/config"
	kanerr "github.com/amterp/swatch/internal/errors"
	"github.com/amterp/swatch/internal/model"
	"github.com/amterp/swatch/internal/version"
)

// Environment variables that override the config file.
const (
	EnvDataDir = "SWATCH_DATA_DIR"
	EnvPort    = "SWATCH_PORT"
)

// FileConfigStore implements ConfigStore using a TOML file.
type FileConfigStore struct {
	paths  *config.Paths
	getenv func(string) string
}

// NewConfigStore creates a new config store.
func NewConfigStore(paths *config.Paths) *FileConfigStore {
	return &FileConfigStore{paths: paths, getenv: os.Getenv}
}

// Load reads the config from disk and applies environment overrides.
// Returns a default config if the file doesn't exist.
func (s *FileConfigStore) Load() (*model.Config, error) {
	path := s.paths.ConfigPath()

	cfg := model.DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// defaults
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		cfg = &model.Config{}
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("invalid config: %w", err)
		}

		// Strict version validation (only if file exists)
		if cfg.SwatchSchema == "" {
			return nil, version.MissingConfigSchema(path)
		}
		if cfg.SwatchSchema != version.CurrentConfigSchema() {
			return nil, version.InvalidConfigSchema(path, cfg.SwatchSchema)
		}
		cfg.ApplyDefaults()
	}

	if err := s.applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config to disk.
func (s *FileConfigStore) Save(cfg *model.Config) error {
	// Stamp current schema version
	cfg.SwatchSchema = version.CurrentConfigSchema()

	path := s.paths.ConfigPath()
	if err := os.MkdirAll(s.paths.ConfigDir(), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config: %w", err)
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

func (s *FileConfigStore) applyEnv(cfg *model.Config) error {
	if dir := s.getenv(EnvDataDir); dir != "" {
		cfg.DataDir = dir
	}
	if portStr := s.getenv(EnvPort); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return kanerr.InvalidField(EnvPort, fmt.Sprintf("%q is not a number", portStr))
		}
		cfg.ServePort = port
	}
	return nil
}
