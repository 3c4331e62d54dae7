// Package solar synthesizes the solar-thermal collector profile that drives
// charge simulations. The generator is a pure function of its configuration:
// identical parameters always yield identical profiles.
package solar

import (
	"fmt"
	"math"

	"github.com/SBSWP/itb-100-thermal-battery/config"
)

// Profile is a time-indexed series of available thermal power and collector
// outlet temperature. Samples are uniformly spaced; the battery never reads
// it except through the charge simulation loop.
type Profile struct {
	TimeH   []float64 // hours from midnight
	PowerW  []float64 // available thermal power
	OutletC []float64 // collector outlet temperature
}

// Len returns the number of samples.
func (p Profile) Len() int { return len(p.TimeH) }

// StepHours returns the uniform sample spacing in hours, or zero for
// profiles with fewer than two samples.
func (p Profile) StepHours() float64 {
	if len(p.TimeH) < 2 {
		return 0
	}
	return p.TimeH[1] - p.TimeH[0]
}

// Validate checks that the series are non-empty, equally sized and uniformly
// spaced in time.
func (p Profile) Validate() error {
	if len(p.TimeH) == 0 {
		return fmt.Errorf("profile is empty")
	}
	if len(p.PowerW) != len(p.TimeH) || len(p.OutletC) != len(p.TimeH) {
		return fmt.Errorf("profile series lengths differ: time=%d power=%d outlet=%d",
			len(p.TimeH), len(p.PowerW), len(p.OutletC))
	}
	step := p.StepHours()
	for i := 1; i < len(p.TimeH); i++ {
		if math.Abs((p.TimeH[i]-p.TimeH[i-1])-step) > 1e-9 {
			return fmt.Errorf("profile time axis not uniform at sample %d", i)
		}
	}
	return nil
}

// Generate builds an idealized clear-day collector profile. Irradiance
// follows a Gaussian centered on solar noon, attenuated by the cloud factor;
// the outlet temperature approaches the stagnation ceiling exponentially
// with normalized irradiance and is clipped to the operational band.
func Generate(cfg config.SolarConfig) Profile {
	stepH := cfg.SampleMinutes / 60
	n := int(math.Round((cfg.EndHour-cfg.StartHour)/stepH)) + 1

	p := Profile{
		TimeH:   make([]float64, n),
		PowerW:  make([]float64, n),
		OutletC: make([]float64, n),
	}
	for i := 0; i < n; i++ {
		h := cfg.StartHour + float64(i)*stepH
		// Gaussian clear-day irradiance, sigma^2 = 2.25 h^2.
		irr := cfg.PeakIrradianceWM2 * math.Exp(-((h-12)*(h-12))/4.5)
		irr *= cfg.CloudFactor

		norm := irr / (cfg.PeakIrradianceWM2 * cfg.CloudFactor)
		rise := (cfg.StagnationTempC - cfg.AmbientTempC) * (1 - math.Exp(-cfg.RiseCoefficient*norm))
		outlet := cfg.AmbientTempC + rise
		if outlet < cfg.MinOutletC {
			outlet = cfg.MinOutletC
		}
		if outlet > cfg.MaxOutletC {
			outlet = cfg.MaxOutletC
		}

		p.TimeH[i] = h
		p.PowerW[i] = irr * cfg.CollectorAreaM2 * cfg.Efficiency
		p.OutletC[i] = outlet
	}
	return p
}
