package model

import "time"

// State is the lumped thermal state of the battery during a simulation run.
// It is owned exclusively by the run that created it and is mutated only by
// the engine step functions; there is no hidden shared copy.
type State struct {
	TempC         float64       // storage medium temperature
	SolidFraction float64       // mass fraction in solid phase, 0 = fully liquid
	StoredJ       float64       // energy relative to the fully solid reference
	Elapsed       time.Duration // simulated time since the run started
}

// NewChargedState returns a fully charged battery: medium sitting on the
// phase-change plateau, almost entirely molten. A 5% solid remainder is kept
// as nucleation seed, matching the design assumption for SAT.
func NewChargedState(s Specs) State {
	return State{
		TempC:         s.PhaseChangeTempC,
		SolidFraction: 0.05,
		StoredJ:       s.CapacityJ(),
	}
}

// NewDischargedState returns a fully discharged battery at ambient
// temperature, fully solid, holding no recoverable energy.
func NewDischargedState(s Specs, ambientC float64) State {
	return State{
		TempC:         ambientC,
		SolidFraction: 1.0,
	}
}

// StateOfCharge reports the stored energy as a fraction of rated capacity,
// clamped to [0, 1].
func (st State) StateOfCharge(s Specs) float64 {
	soc := st.StoredJ / s.CapacityJ()
	if soc < 0 {
		return 0
	}
	if soc > 1 {
		return 1
	}
	return soc
}

// LatentBudgetJ returns the energy that can still be released by
// solidification before the medium is fully solid.
func (st State) LatentBudgetJ(s Specs) float64 {
	b := (1 - st.SolidFraction) * s.MassKg * s.LatentHeatJPerKg
	if b < 0 {
		return 0
	}
	return b
}

// MeltBudgetJ returns the energy that can still be absorbed by melting
// before the medium is fully liquid.
func (st State) MeltBudgetJ(s Specs) float64 {
	b := st.SolidFraction * s.MassKg * s.LatentHeatJPerKg
	if b < 0 {
		return 0
	}
	return b
}
