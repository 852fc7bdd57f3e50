package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultValidates(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestValidateRejectsUnknownNetworkKind(t *testing.T) {
	cfg := Default()
	cfg.Network.Kind = "ring_of_fire"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for unknown network kind")
	}
	if !strings.Contains(err.Error(), "watts_strogatz") {
		t.Fatalf("error should list valid kinds: %v", err)
	}
}

func TestValidateRejectsUnknownFloodMap(t *testing.T) {
	cfg := Default()
	cfg.FloodMap = "1000yr"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for unknown flood map")
	}
	if !strings.Contains(err.Error(), "harvey") {
		t.Fatalf("error should list valid choices: %v", err)
	}
}

func TestValidateRejectsExcessProbabilityMass(t *testing.T) {
	cfg := Default()
	cfg.ScenarioProbabilities["harvey"] = 0.7
	cfg.ScenarioProbabilities["100yr"] = 0.7

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for probabilities summing past 1")
	}
}

func TestValidateRejectsBadNoiseBand(t *testing.T) {
	cfg := Default()
	cfg.SavingsNoiseMin = 1.1
	cfg.SavingsNoiseMax = 0.9

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for inverted noise band")
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.yaml")
	yaml := `
population: 250
steps: 120
flood_step: 40
flood_map: 500yr
subsidy_level: 10000
network:
  kind: barabasi_albert
  edges: 4
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Population != 250 || cfg.Steps != 120 || cfg.FloodStep != 40 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.FloodMap != "500yr" || cfg.Network.Kind != "barabasi_albert" || cfg.Network.Edges != 4 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	// Untouched fields keep their defaults.
	if cfg.AdaptationCost != 35000 {
		t.Fatalf("default adaptation cost lost: %g", cfg.AdaptationCost)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
