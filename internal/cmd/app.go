package cmd

import (
	"fmt"

	"github.com/inkforge/inkforge/internal/bridge"
	"github.com/inkforge/inkforge/internal/config"
	"github.com/inkforge/inkforge/internal/storage"
	"github.com/inkforge/inkforge/internal/supervisor"
)

// app bundles the per-invocation application context: the resolved data
// directory, settings, project store, supervisor, and operation bridge.
type app struct {
	dataDir  string
	settings config.Settings
	store    *storage.Store
	sup      *supervisor.Supervisor
	bridge   *bridge.Bridge
}

// newApp builds the application context. Callers own closing it.
func newApp() (*app, error) {
	dataDir, err := config.EnsureDataDir()
	if err != nil {
		return nil, err
	}

	settings, err := config.LoadSettings(dataDir)
	if err != nil {
		// Invalid settings degrade to defaults; the agent must stay usable.
		fmt.Printf("[inkforge] %v, using defaults\n", err)
	}

	store, err := storage.Open(dataDir)
	if err != nil {
		return nil, fmt.Errorf("opening project store: %w", err)
	}

	sup := supervisor.New(dataDir, supervisor.Options{
		DevMode: settings.DevMode,
	})

	return &app{
		dataDir:  dataDir,
		settings: settings,
		store:    store,
		sup:      sup,
		bridge:   bridge.New(sup, store),
	}, nil
}

// close releases the context's resources.
func (a *app) close() {
	_ = a.store.Close()
}
