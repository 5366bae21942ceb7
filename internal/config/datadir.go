// Package config resolves the Inkforge data directory and loads the
// optional settings file that tunes supervision behavior.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/inkforge/inkforge/internal/constants"
)

// DataDir returns the directory where Inkforge persists state: the project
// database, the agent log, and the shell event log.
//
// Resolution order matches the agent backend so both sides agree:
//  1. INKFORGE_DATA_DIR environment variable
//  2. %APPDATA%\inkforge on Windows
//  3. ~/Library/Application Support/inkforge on macOS
//  4. $XDG_DATA_HOME/inkforge, else ~/.local/share/inkforge
func DataDir() string {
	if env := os.Getenv(constants.EnvDataDir); env != "" {
		return env
	}

	switch runtime.GOOS {
	case "windows":
		if appdata := os.Getenv("APPDATA"); appdata != "" {
			return filepath.Join(appdata, "inkforge")
		}
	case "darwin":
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, "Library", "Application Support", "inkforge")
		}
	}

	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "inkforge")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "inkforge")
	}
	return filepath.Join(home, ".local", "share", "inkforge")
}

// EnsureDataDir resolves the data directory and creates it if needed.
func EnsureDataDir() (string, error) {
	dir := DataDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating data dir: %w", err)
	}
	return dir, nil
}
