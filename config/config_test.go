package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Simulation.StepSeconds != 60 {
		t.Fatalf("default step = %v, want 60", cfg.Simulation.StepSeconds)
	}
	if cfg.Solar.Mode != "synthetic" {
		t.Fatalf("default solar mode = %q, want synthetic", cfg.Solar.Mode)
	}
	if cfg.Economics.HeatSource != "natural_gas" {
		t.Fatalf("default heat source = %q", cfg.Economics.HeatSource)
	}
	if cfg.Output.Dir != "output" || len(cfg.Output.Formats) != 2 {
		t.Fatalf("default output = %+v", cfg.Output)
	}
	if cfg.Metrics.PrometheusEnabled || cfg.MQTT.Enabled {
		t.Fatalf("exporters must be opt-in")
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
simulation:
  step_seconds: 30
  supply_temp_c: 35
solar:
  cloud_factor: 0.5
economics:
  heat_source: propane
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Simulation.StepSeconds != 30 || cfg.Simulation.SupplyTempC != 35 {
		t.Fatalf("simulation overrides not applied: %+v", cfg.Simulation)
	}
	if cfg.Solar.CloudFactor != 0.5 {
		t.Fatalf("solar override not applied: %+v", cfg.Solar)
	}
	if cfg.Economics.HeatSource != "propane" {
		t.Fatalf("economics override not applied: %+v", cfg.Economics)
	}
	// Untouched fields still get their defaults.
	if cfg.Simulation.MaxDurationHours != 12 {
		t.Fatalf("defaults missing after load: %+v", cfg.Simulation)
	}
}

func TestLoadJSON(t *testing.T) {
	path := writeConfig(t, "config.json", `{"simulation":{"supply_temp_c":45}}`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Simulation.SupplyTempC != 45 {
		t.Fatalf("supply temp = %v, want 45", cfg.Simulation.SupplyTempC)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("ITB_SIMULATION__SUPPLY_TEMP_C", "42")
	path := writeConfig(t, "config.yaml", `
simulation:
  supply_temp_c: 35
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Simulation.SupplyTempC != 42 {
		t.Fatalf("env override lost: supply temp = %v, want 42", cfg.Simulation.SupplyTempC)
	}
}

func TestLoadUnsupportedFormat(t *testing.T) {
	path := writeConfig(t, "config.toml", `x = 1`)
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
simulation:
  step_seconds: -5
`)
	if _, err := Load(path); err == nil {
		t.Fatalf("expected validation error for negative step")
	}
}

func TestLoadFileModeRequiresPath(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
solar:
  mode: file
`)
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for file mode without profile_path")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("expected error for a missing file")
	}
}
