package config

import (
	"fmt"
	"time"
)

// SimulationConfig holds the cycle simulation parameters.
type SimulationConfig struct {
	// StepSeconds is the fixed integration step.
	StepSeconds float64 `json:"step_seconds"`
	// SupplyTempC is the heating-loop return temperature the battery
	// discharges against.
	SupplyTempC float64 `json:"supply_temp_c"`
	// MaxDurationHours bounds a discharge run regardless of state.
	MaxDurationHours float64 `json:"max_duration_hours"`
	// PowerFloorW ends a discharge once delivered power falls below this
	// floor, after the grace period.
	PowerFloorW float64 `json:"power_floor_w"`
	// PowerFloorGraceHours suppresses the power floor early in the run so
	// a slow plateau entry is not mistaken for depletion.
	PowerFloorGraceHours float64 `json:"power_floor_grace_hours"`
	// AmbientTempC is the initial medium temperature for charge runs.
	AmbientTempC float64 `json:"ambient_temp_c"`
}

// SetDefaults applies the design-point operating conditions.
func (c *SimulationConfig) SetDefaults() {
	if c.StepSeconds == 0 {
		c.StepSeconds = 60
	}
	if c.SupplyTempC == 0 {
		c.SupplyTempC = 40
	}
	if c.MaxDurationHours == 0 {
		c.MaxDurationHours = 12
	}
	if c.PowerFloorW == 0 {
		c.PowerFloorW = 100
	}
	if c.PowerFloorGraceHours == 0 {
		c.PowerFloorGraceHours = 1
	}
	if c.AmbientTempC == 0 {
		c.AmbientTempC = 20
	}
}

// Validate checks the configuration ranges. The step must stay small
// relative to the thermal time constants; one hour is already far beyond
// anything the lumped model can integrate stably.
func (c SimulationConfig) Validate() error {
	if c.StepSeconds <= 0 {
		return fmt.Errorf("step_seconds must be positive")
	}
	if c.StepSeconds > 3600 {
		return fmt.Errorf("step_seconds %v too large for stable integration", c.StepSeconds)
	}
	if c.MaxDurationHours <= 0 {
		return fmt.Errorf("max_duration_hours must be positive")
	}
	if c.PowerFloorW < 0 {
		return fmt.Errorf("power_floor_w must not be negative")
	}
	if c.PowerFloorGraceHours < 0 {
		return fmt.Errorf("power_floor_grace_hours must not be negative")
	}
	return nil
}

// Step returns the integration step as a duration.
func (c SimulationConfig) Step() time.Duration {
	return time.Duration(c.StepSeconds * float64(time.Second))
}

// MaxDuration returns the discharge time limit as a duration.
func (c SimulationConfig) MaxDuration() time.Duration {
	return time.Duration(c.MaxDurationHours * float64(time.Hour))
}

// PowerFloorGrace returns the power-floor grace period as a duration.
func (c SimulationConfig) PowerFloorGrace() time.Duration {
	return time.Duration(c.PowerFloorGraceHours * float64(time.Hour))
}
