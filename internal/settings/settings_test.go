package settings

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadOrDefaultMissingFile(t *testing.T) {
	got := LoadOrDefault(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if got != Default() {
		t.Errorf("got %+v, want defaults", got)
	}
}

func TestLoadOrDefaultEmptyPath(t *testing.T) {
	if got := LoadOrDefault(""); got != Default() {
		t.Errorf("got %+v, want defaults", got)
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	content := "confirm_quit: false\nmax_logs_per_session: 500\nwatcher:\n  debounce_ms: 50\n  auto_reload: false\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ConfirmQuit || cfg.MaxLogsPerSession != 500 || cfg.Watcher.DebounceMs != 50 || cfg.Watcher.AutoReload {
		t.Errorf("got %+v", cfg)
	}
}

func TestLoadPartialFileKeepsDefaultsForOmittedFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte("confirm_quit: false\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ConfirmQuit {
		t.Error("ConfirmQuit should be overridden to false")
	}
	if cfg.MaxLogsPerSession != Default().MaxLogsPerSession {
		t.Errorf("MaxLogsPerSession = %d, want default preserved", cfg.MaxLogsPerSession)
	}
}

func TestLoadOrDefaultMalformedFileFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte("not: [valid: yaml"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := LoadOrDefault(path); got != Default() {
		t.Errorf("got %+v, want defaults", got)
	}
}
