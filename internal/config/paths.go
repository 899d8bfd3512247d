package config

import (
	"os"
	"path/filepath"
)

const (
	ConfigFileName    = "config.toml"
	GlobalConfigDir   = ".config/swatch"
	DefaultDataDir    = ".local/share/swatch"
	FavoritesKey      = "palettes_favorites"
	FavoritesFileName = FavoritesKey + ".json"
)

// Paths provides path resolution for swatch config and data files.
type Paths struct {
	configDir string
	dataDir   string
}

// NewPaths creates a Paths resolver. Empty arguments fall back to the
// defaults under the user's home directory.
func NewPaths(configDir, dataDir string) *Paths {
	if configDir == "" {
		configDir = GlobalConfigDirPath()
	}
	if dataDir == "" {
		dataDir = DefaultDataDirPath()
	}
	return &Paths{
		configDir: configDir,
		dataDir:   expandHome(dataDir),
	}
}

// WithDataDir returns a copy of p pointing at a different data directory.
func (p *Paths) WithDataDir(dataDir string) *Paths {
	if dataDir == "" {
		return p
	}
	return &Paths{configDir: p.configDir, dataDir: expandHome(dataDir)}
}

// ConfigDir returns the directory holding config.toml.
func (p *Paths) ConfigDir() string {
	return p.configDir
}

// ConfigPath returns the config file path.
func (p *Paths) ConfigPath() string {
	return filepath.Join(p.configDir, ConfigFileName)
}

// DataDir returns the directory holding persisted favorites.
func (p *Paths) DataDir() string {
	return p.dataDir
}

// FavoritesPath returns the file backing the favorites slot.
func (p *Paths) FavoritesPath() string {
	return filepath.Join(p.dataDir, FavoritesFileName)
}

// GlobalConfigDirPath returns the default directory for config.
func GlobalConfigDirPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, GlobalConfigDir)
}

// DefaultDataDirPath returns the default directory for favorites.
func DefaultDataDirPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, DefaultDataDir)
}

// expandHome replaces a leading ~/ with the user's home directory.
func expandHome(path string) string {
	if len(path) < 2 || path[:2] != "~/" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
