package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/inkforge/inkforge/internal/constants"
)

// Settings holds user-tunable supervision options (settings.toml in the
// data directory). All fields have working defaults; the file is optional.
type Settings struct {
	// AutoStart launches the agent as soon as `inkforge run` comes up.
	AutoStart bool `toml:"auto_start"`

	// Watchdog enables the crash-recovery loop.
	Watchdog bool `toml:"watchdog"`

	// DevMode forces development-mode path resolution (system interpreter,
	// ./agent working tree). Normally derived from the INKFORGE_DEV env var.
	DevMode bool `toml:"dev_mode"`
}

// DefaultSettings returns the settings used when no file exists.
func DefaultSettings() Settings {
	return Settings{
		AutoStart: true,
		Watchdog:  true,
		DevMode:   os.Getenv(constants.EnvDevMode) == "1",
	}
}

// SettingsPath returns the settings file location under a data dir.
func SettingsPath(dataDir string) string {
	return filepath.Join(dataDir, constants.FileSettings)
}

// LoadSettings reads settings.toml from the data directory. A missing file
// is not an error; defaults are returned.
func LoadSettings(dataDir string) (Settings, error) {
	s := DefaultSettings()

	path := SettingsPath(dataDir)
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is constructed from the resolved data dir
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, fmt.Errorf("reading settings: %w", err)
	}

	if err := toml.Unmarshal(data, &s); err != nil {
		return DefaultSettings(), fmt.Errorf("%w: parsing %s: %v", ErrInvalid, path, err)
	}
	return s, nil
}

// SaveSettings writes settings.toml to the data directory.
func SaveSettings(dataDir string, s Settings) error {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	f, err := os.Create(SettingsPath(dataDir))
	if err != nil {
		return fmt.Errorf("creating settings file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(s); err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	return nil
}
