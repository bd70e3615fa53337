package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Game.HorizonSeconds != 900 || cfg.Game.PreviewRuns != 10 {
		t.Fatalf("unexpected defaults: %+v", cfg.Game)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	doc := `
app:
  log_level: debug
game:
  horizon_seconds: 120
  seed: 42
pricing:
  sigma_base: 2.5
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.App.LogLevel != "debug" {
		t.Fatalf("expected log level debug, got %q", cfg.App.LogLevel)
	}
	if cfg.Game.HorizonSeconds != 120 || cfg.Game.Seed != 42 {
		t.Fatalf("unexpected game section: %+v", cfg.Game)
	}
	if cfg.Pricing.SigmaBase != 2.5 {
		t.Fatalf("expected sigma_base 2.5, got %v", cfg.Pricing.SigmaBase)
	}

	// fields absent from the file keep their defaults
	if cfg.Game.Team1Oranges != Default().Game.Team1Oranges {
		t.Fatalf("expected default team1 oranges, got %v", cfg.Game.Team1Oranges)
	}
	if cfg.Pricing.Revert != Default().Pricing.Revert {
		t.Fatalf("expected default revert, got %v", cfg.Pricing.Revert)
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("game: ["), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestRatesRoundTrip(t *testing.T) {
	cfg := Default()
	r := cfg.Rates()
	if r.Team1Oranges != 6.0 || r.Team1Lemons != 7.5 {
		t.Fatalf("unexpected team 1 rates: %+v", r)
	}
	if r.Team2OrangesMin != 4 || r.Team2OrangesMax != 8 {
		t.Fatalf("unexpected team 2 orange range: %+v", r)
	}
	if r.Team2LemonsMin != 6.5 || r.Team2LemonsMax != 14.5 {
		t.Fatalf("unexpected team 2 lemon range: %+v", r)
	}
	if r.Jitter != 0.0003 {
		t.Fatalf("unexpected jitter: %v", r.Jitter)
	}
}
