// Package settings loads the supervisor's YAML configuration file. A
// missing file is never fatal — LoadOrDefault falls back to Default.
package settings

import (
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

// WatcherSettings configures the filesystem watcher.
type WatcherSettings struct {
	DebounceMs int  `yaml:"debounce_ms"`
	AutoReload bool `yaml:"auto_reload"`
}

// Settings is the supervisor's full runtime configuration, read once at
// startup.
type Settings struct {
	ConfirmQuit       bool            `yaml:"confirm_quit"`
	AutoStart         bool            `yaml:"auto_start"`
	MaxLogsPerSession int             `yaml:"max_logs_per_session"`
	Watcher           WatcherSettings `yaml:"watcher"`
}

// Default returns the built-in defaults used when no settings file is
// present.
func Default() Settings {
	return Settings{
		ConfirmQuit:       true,
		AutoStart:         false,
		MaxLogsPerSession: 1000,
		Watcher: WatcherSettings{
			DebounceMs: 300,
			AutoReload: true,
		},
	}
}

// Load reads and parses the settings file at path, starting from Default
// so an incomplete YAML document still yields sane values for the fields
// it omits.
func Load(path string) (Settings, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("settings: reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Settings{}, fmt.Errorf("settings: parsing %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault loads path, falling back to Default when the path is
// empty, the file doesn't exist, or it fails to parse — logging the
// failure rather than aborting startup.
func LoadOrDefault(path string) Settings {
	if path == "" {
		return Default()
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default()
	}
	cfg, err := Load(path)
	if err != nil {
		log.Printf("settings: %v, using defaults", err)
		return Default()
	}
	return cfg
}
