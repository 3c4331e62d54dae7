package config

import "fmt"

// SolarConfig parameterizes the solar-thermal forcing profile used to charge
// the battery. In synthetic mode an idealized clear winter day is generated;
// in file mode a recorded profile is loaded instead.
type SolarConfig struct {
	// Mode is "synthetic" or "file".
	Mode string `json:"mode"`
	// ProfilePath locates the recorded profile for file mode.
	ProfilePath string `json:"profile_path"`

	CollectorAreaM2   float64 `json:"collector_area_m2"`
	Efficiency        float64 `json:"efficiency"`
	PeakIrradianceWM2 float64 `json:"peak_irradiance_w_m2"`
	// CloudFactor attenuates the clear-sky irradiance (1 = clear).
	CloudFactor  float64 `json:"cloud_factor"`
	AmbientTempC float64 `json:"ambient_temp_c"`
	// StagnationTempC is the collector temperature ceiling the outlet
	// approaches exponentially with irradiance.
	StagnationTempC float64 `json:"stagnation_temp_c"`
	// RiseCoefficient shapes the exponential approach to stagnation.
	RiseCoefficient float64 `json:"rise_coefficient"`
	// StartHour and EndHour bound the useful collection window.
	StartHour     float64 `json:"start_hour"`
	EndHour       float64 `json:"end_hour"`
	SampleMinutes float64 `json:"sample_minutes"`
	// MinOutletC and MaxOutletC clip the outlet to the operational band.
	// The lower bound must exceed the phase-change temperature for
	// charging to be meaningful.
	MinOutletC float64 `json:"min_outlet_c"`
	MaxOutletC float64 `json:"max_outlet_c"`
}

// SetDefaults applies the Syracuse January design day with 12 m2 of
// evacuated tube collectors.
func (c *SolarConfig) SetDefaults() {
	if c.Mode == "" {
		c.Mode = "synthetic"
	}
	if c.CollectorAreaM2 == 0 {
		c.CollectorAreaM2 = 12
	}
	if c.Efficiency == 0 {
		c.Efficiency = 0.65
	}
	if c.PeakIrradianceWM2 == 0 {
		c.PeakIrradianceWM2 = 800
	}
	if c.CloudFactor == 0 {
		c.CloudFactor = 0.85
	}
	if c.AmbientTempC == 0 {
		c.AmbientTempC = -2
	}
	if c.StagnationTempC == 0 {
		c.StagnationTempC = 120
	}
	if c.RiseCoefficient == 0 {
		c.RiseCoefficient = 3
	}
	if c.StartHour == 0 {
		c.StartHour = 9
	}
	if c.EndHour == 0 {
		c.EndHour = 15
	}
	if c.SampleMinutes == 0 {
		c.SampleMinutes = 5
	}
	if c.MinOutletC == 0 {
		c.MinOutletC = 60
	}
	if c.MaxOutletC == 0 {
		c.MaxOutletC = 95
	}
}

// Validate checks the configuration ranges.
func (c SolarConfig) Validate() error {
	if c.Mode != "synthetic" && c.Mode != "file" {
		return fmt.Errorf("unknown solar mode %s", c.Mode)
	}
	if c.Mode == "file" && c.ProfilePath == "" {
		return fmt.Errorf("profile_path is required in file mode")
	}
	if c.CollectorAreaM2 <= 0 {
		return fmt.Errorf("collector_area_m2 must be positive")
	}
	if c.Efficiency <= 0 || c.Efficiency > 1 {
		return fmt.Errorf("efficiency must be in (0,1]")
	}
	if c.CloudFactor <= 0 || c.CloudFactor > 1 {
		return fmt.Errorf("cloud_factor must be in (0,1]")
	}
	if c.PeakIrradianceWM2 <= 0 {
		return fmt.Errorf("peak_irradiance_w_m2 must be positive")
	}
	if c.StartHour >= c.EndHour {
		return fmt.Errorf("start_hour must precede end_hour")
	}
	if c.SampleMinutes <= 0 {
		return fmt.Errorf("sample_minutes must be positive")
	}
	if c.MinOutletC >= c.MaxOutletC {
		return fmt.Errorf("min_outlet_c must be below max_outlet_c")
	}
	return nil
}
