package cycle

import (
	"github.com/SBSWP/itb-100-thermal-battery/core/model"
)

// Mode distinguishes charge and discharge runs.
type Mode int

const (
	ModeDischarge Mode = iota
	ModeCharge
)

func (m Mode) String() string {
	switch m {
	case ModeDischarge:
		return "discharge"
	case ModeCharge:
		return "charge"
	default:
		return "unknown"
	}
}

// StopReason identifies which termination guard ended a run.
type StopReason int

const (
	StopNone StopReason = iota
	// StopDepleted: state of charge fell below 1%.
	StopDepleted
	// StopPowerFloor: delivered power fell below the floor after the
	// grace period.
	StopPowerFloor
	// StopTimeLimit: the maximum run duration was reached.
	StopTimeLimit
	// StopFull: state of charge reached 99% during a charge run.
	StopFull
	// StopProfileEnd: the forcing profile ran out of samples.
	StopProfileEnd
)

func (r StopReason) String() string {
	switch r {
	case StopDepleted:
		return "depleted"
	case StopPowerFloor:
		return "power_floor"
	case StopTimeLimit:
		return "time_limit"
	case StopFull:
		return "full"
	case StopProfileEnd:
		return "profile_end"
	default:
		return "none"
	}
}

// Result is the immutable outcome of one simulated cycle: the sampled time
// series plus scalar summaries. Downstream collaborators read only the
// summaries; exporters read the series.
type Result struct {
	RunID string
	Mode  Mode
	Stop  StopReason

	TimeH         []float64 // hours since run start
	MediumTempC   []float64
	OutletC       []float64
	PowerKW       []float64
	AvailableKW   []float64 // charge runs: source power at each sample
	SOC           []float64
	SolidFraction []float64

	TotalEnergyKWh float64
	AvgPowerKW     float64
	DurationHours  float64

	Final model.State
}

// Samples returns the number of recorded samples.
func (r *Result) Samples() int { return len(r.TimeH) }
