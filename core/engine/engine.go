// Package engine computes the instantaneous heat transfer between the
// working fluid and the storage medium and advances the thermal state by one
// fixed time increment. The exchanger is approximated with the
// effectiveness-NTU method for a single pass against a spatially uniform
// medium temperature, which is the standard lumped simplification when the
// slab interior is not resolved.
package engine

import (
	"fmt"
	"math"
	"time"

	"github.com/SBSWP/itb-100-thermal-battery/core/model"
)

const (
	// minApproachC is the minimum driving temperature difference below
	// which heat flow is treated as blocked instead of reversing.
	minApproachC = 0.5
	// plateauBandC is the tolerance around the phase-change temperature
	// inside which the medium is considered on the latent plateau.
	plateauBandC = 0.1
	// solidCutoff and liquidCutoff mark the fractions at which the medium
	// is treated as fully solid or fully liquid.
	solidCutoff  = 0.99
	liquidCutoff = 0.01
	// superheatMarginC is how far above the plateau a fully molten medium
	// may sit before further charging is refused.
	superheatMarginC = 5.0
)

// Regime identifies which storage mechanism a step acted on. The step
// functions select exactly one regime per step, in a fixed priority order,
// so the tags make the mutual exclusivity testable.
type Regime int

const (
	// RegimeBlocked means the guard conditions refused any heat transfer.
	RegimeBlocked Regime = iota
	// RegimeLiquidSensible is sensible heat in the molten medium.
	RegimeLiquidSensible
	// RegimeLatent is phase change at the plateau temperature.
	RegimeLatent
	// RegimeSolidSensible is sensible heat in the solid medium. During
	// discharge this residual cool-down carries no heating value and is
	// not credited as delivered power.
	RegimeSolidSensible
)

func (r Regime) String() string {
	switch r {
	case RegimeBlocked:
		return "blocked"
	case RegimeLiquidSensible:
		return "liquid_sensible"
	case RegimeLatent:
		return "latent"
	case RegimeSolidSensible:
		return "solid_sensible"
	default:
		return "unknown"
	}
}

// Step reports the outcome of a single engine step.
type Step struct {
	PowerW  float64 // useful power delivered (discharge) or absorbed (charge)
	OutletC float64 // working-fluid outlet temperature
	Regime  Regime
}

// Engine advances a thermal state against the fixed battery specification.
type Engine struct {
	specs model.Specs
}

// New validates the specification and returns an Engine for it.
func New(specs model.Specs) (*Engine, error) {
	if err := specs.Validate(); err != nil {
		return nil, fmt.Errorf("engine specs: %w", err)
	}
	return &Engine{specs: specs}, nil
}

// NTU returns the number of transfer units of the exchanger at design flow.
func (e *Engine) NTU() float64 {
	return e.specs.UAWPerK / (e.specs.DesignFlowKgPerS * e.specs.FluidCpJPerKgK)
}

// Effectiveness returns the single-pass exchanger effectiveness 1-exp(-NTU).
func (e *Engine) Effectiveness() float64 {
	return 1 - math.Exp(-e.NTU())
}

func (e *Engine) capacityRate() float64 {
	return e.specs.DesignFlowKgPerS * e.specs.FluidCpJPerKgK
}

// StepDischarge extracts heat into the working fluid entering at inletC and
// advances the state by dt. It returns zero power with outlet equal to inlet
// when the battery is depleted or the medium is not meaningfully warmer than
// the inlet; that guard prevents non-physical reverse heat flow.
func (e *Engine) StepDischarge(st *model.State, inletC float64, dt time.Duration) Step {
	s := e.specs
	blocked := Step{OutletC: inletC, Regime: RegimeBlocked}
	if dt <= 0 {
		return blocked
	}
	st.Elapsed += dt

	if st.SolidFraction >= solidCutoff && st.TempC < s.PhaseChangeTempC {
		return blocked
	}
	if st.TempC <= inletC+minApproachC {
		return blocked
	}

	cr := e.capacityRate()
	power := e.Effectiveness() * cr * (st.TempC - inletC)
	if power <= 0 {
		return blocked
	}
	outlet := inletC + power/cr
	removedJ := power * dt.Seconds()

	regime := e.dischargeRegime(st)
	switch regime {
	case RegimeLiquidSensible:
		st.TempC -= removedJ / (s.MassKg * s.CpLiquidJPerKgK)
		if st.TempC <= s.PhaseChangeTempC {
			st.TempC = s.PhaseChangeTempC
		}
	case RegimeLatent:
		// Clamp to the remaining phase-change budget so energy and solid
		// fraction stay in exact lock-step at the boundary step.
		if budget := st.LatentBudgetJ(s); removedJ > budget {
			removedJ = budget
			power = removedJ / dt.Seconds()
			outlet = inletC + power/cr
		}
		st.SolidFraction += removedJ / (s.LatentHeatJPerKg * s.MassKg)
		if st.SolidFraction > 1 {
			st.SolidFraction = 1
		}
		st.TempC = s.PhaseChangeTempC
	case RegimeSolidSensible:
		st.TempC -= removedJ / (s.MassKg * s.CpSolidJPerKgK)
		power = 0
	}
	st.StoredJ -= removedJ
	return Step{PowerW: power, OutletC: outlet, Regime: regime}
}

// StepCharge absorbs heat from the working fluid entering at inletC and
// advances the state by dt. availableW caps the absorbed power at what the
// source can actually deliver this step; pass math.Inf(1) for an
// unconstrained source. The cap is applied before the state update, so the
// state never registers more energy than the source supplied.
func (e *Engine) StepCharge(st *model.State, inletC, availableW float64, dt time.Duration) Step {
	s := e.specs
	blocked := Step{OutletC: inletC, Regime: RegimeBlocked}
	if dt <= 0 {
		return blocked
	}
	st.Elapsed += dt

	if st.SolidFraction <= liquidCutoff && st.TempC >= s.PhaseChangeTempC+superheatMarginC {
		return blocked
	}
	if inletC <= st.TempC+minApproachC {
		return blocked
	}

	cr := e.capacityRate()
	power := e.Effectiveness() * cr * (inletC - st.TempC)
	if power <= 0 {
		return blocked
	}
	if power > availableW {
		power = availableW
	}
	if power <= 0 {
		return blocked
	}
	outlet := inletC - power/cr
	absorbedJ := power * dt.Seconds()

	regime := e.chargeRegime(st)
	switch regime {
	case RegimeSolidSensible:
		st.TempC += absorbedJ / (s.MassKg * s.CpSolidJPerKgK)
		if st.TempC >= s.PhaseChangeTempC {
			st.TempC = s.PhaseChangeTempC
		}
	case RegimeLatent:
		if budget := st.MeltBudgetJ(s); absorbedJ > budget {
			absorbedJ = budget
			power = absorbedJ / dt.Seconds()
			outlet = inletC - power/cr
		}
		st.SolidFraction -= absorbedJ / (s.LatentHeatJPerKg * s.MassKg)
		if st.SolidFraction < 0 {
			st.SolidFraction = 0
		}
		st.TempC = s.PhaseChangeTempC
	case RegimeLiquidSensible:
		// Superheating the molten medium. No upper clamp: the charge
		// guard and the simulation horizon bound the excursion.
		st.TempC += absorbedJ / (s.MassKg * s.CpLiquidJPerKgK)
	}
	st.StoredJ += absorbedJ
	return Step{PowerW: power, OutletC: outlet, Regime: regime}
}

// dischargeRegime selects the storage mechanism for a discharge step.
// Priority order: molten sensible heat, then the latent plateau, then
// residual solid cool-down.
func (e *Engine) dischargeRegime(st *model.State) Regime {
	switch {
	case st.TempC > e.specs.PhaseChangeTempC+plateauBandC:
		return RegimeLiquidSensible
	case st.SolidFraction < solidCutoff:
		return RegimeLatent
	default:
		return RegimeSolidSensible
	}
}

// chargeRegime mirrors dischargeRegime: solid warm-up, then melting, then
// superheat of the molten medium.
func (e *Engine) chargeRegime(st *model.State) Regime {
	switch {
	case st.TempC < e.specs.PhaseChangeTempC-plateauBandC:
		return RegimeSolidSensible
	case st.SolidFraction > liquidCutoff:
		return RegimeLatent
	default:
		return RegimeLiquidSensible
	}
}
