package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/SBSWP/itb-100-thermal-battery/core/metrics"
	"github.com/SBSWP/itb-100-thermal-battery/infra/mqtt"
)

// Config is the root configuration of the analysis tool.
type Config struct {
	Simulation SimulationConfig `json:"simulation"`
	Solar      SolarConfig      `json:"solar"`
	Economics  EconomicsConfig  `json:"economics"`
	Metrics    metrics.Config   `json:"metrics"`
	MQTT       mqtt.Config      `json:"mqtt"`
	Output     OutputConfig     `json:"output"`
}

// Load reads the configuration from a YAML or JSON file, applies optional
// ITB_-prefixed environment overrides, then defaults and validation.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	if err := k.Load(env.Provider("ITB_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "itb_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	return &cfg, cfg.finish()
}

// Default returns a configuration with every section at its defaults,
// suitable for running the analysis without a config file.
func Default() *Config {
	cfg := &Config{}
	if err := cfg.finish(); err != nil {
		// Defaults are static and always valid.
		panic(err)
	}
	return cfg
}

func (c *Config) finish() error {
	c.Simulation.SetDefaults()
	c.Solar.SetDefaults()
	c.Economics.SetDefaults()
	c.Metrics.SetDefaults()
	c.MQTT.SetDefaults()
	c.Output.SetDefaults()
	if err := c.Simulation.Validate(); err != nil {
		return err
	}
	if err := c.Solar.Validate(); err != nil {
		return err
	}
	if err := c.Economics.Validate(); err != nil {
		return err
	}
	return c.MQTT.Validate()
}

// OutputConfig controls where cycle results are written.
type OutputConfig struct {
	// Dir is the directory for exported time series files.
	Dir string `json:"dir"`
	// Formats lists the export formats, "csv" and/or "json".
	Formats []string `json:"formats"`
}

// SetDefaults applies sane defaults.
func (c *OutputConfig) SetDefaults() {
	if c.Dir == "" {
		c.Dir = "output"
	}
	if len(c.Formats) == 0 {
		c.Formats = []string{"csv", "json"}
	}
}
