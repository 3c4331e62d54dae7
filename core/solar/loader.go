package solar

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// fileSample is one row of a recorded collector profile.
type fileSample struct {
	TimeH   float64 `json:"time_h" yaml:"time_h"`
	PowerW  float64 `json:"power_w" yaml:"power_w"`
	OutletC float64 `json:"outlet_c" yaml:"outlet_c"`
}

type profileFile struct {
	Samples []fileSample `json:"samples" yaml:"samples"`
}

// LoadFile reads a recorded forcing profile from a JSON or YAML file.
func LoadFile(path string) (Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		return Profile{}, err
	}
	defer f.Close()
	return Decode(f, strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), "."))
}

// Decode reads a profile from r in the given format ("json", "yaml").
func Decode(r io.Reader, format string) (Profile, error) {
	var pf profileFile
	switch strings.ToLower(format) {
	case "yaml", "yml":
		if err := yaml.NewDecoder(r).Decode(&pf); err != nil {
			return Profile{}, fmt.Errorf("decode profile: %w", err)
		}
	case "json":
		if err := json.NewDecoder(r).Decode(&pf); err != nil {
			return Profile{}, fmt.Errorf("decode profile: %w", err)
		}
	default:
		return Profile{}, fmt.Errorf("unsupported profile format: %s", format)
	}

	p := Profile{
		TimeH:   make([]float64, len(pf.Samples)),
		PowerW:  make([]float64, len(pf.Samples)),
		OutletC: make([]float64, len(pf.Samples)),
	}
	for i, s := range pf.Samples {
		p.TimeH[i] = s.TimeH
		p.PowerW[i] = s.PowerW
		p.OutletC[i] = s.OutletC
	}
	if err := p.Validate(); err != nil {
		return Profile{}, err
	}
	return p, nil
}
