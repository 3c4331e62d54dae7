package model

import "fmt"

// Specs holds the fixed design specification of the ITB-100 thermal battery.
// All values describe the storage medium (sodium acetate trihydrate) and the
// plate heat exchanger it is bonded to. A Specs value is immutable for the
// lifetime of a simulation run.
type Specs struct {
	// Phase change material properties.
	PhaseChangeTempC float64 // melting point of the storage medium
	LatentHeatJPerKg float64 // latent heat of fusion
	CondSolidWPerMK  float64 // thermal conductivity, solid phase
	CondLiquidWPerMK float64 // thermal conductivity, liquid phase
	DensitySolid     float64 // kg/m3
	DensityLiquid    float64 // kg/m3
	CpSolidJPerKgK   float64 // specific heat, solid phase
	CpLiquidJPerKgK  float64 // specific heat, liquid phase

	// Geometry.
	MassKg             float64 // total storage medium mass
	ExchangerAreaM2    float64 // total heat exchanger surface area
	SlabHalfThicknessM float64 // half-thickness of the storage slabs

	// Heat exchanger and hydraulics.
	UAWPerK          float64 // overall heat transfer coefficient times area
	DesignFlowKgPerS float64 // design working-fluid mass flow rate
	FluidCpJPerKgK   float64 // working-fluid specific heat

	// Rated storage capacity.
	CapacityKWh float64
}

// DefaultSpecs returns the ITB-100 design point: 227 kg of SAT behind a
// 26 m2 aluminium plate exchanger, rated at 16.71 kWh.
func DefaultSpecs() Specs {
	return Specs{
		PhaseChangeTempC:   58.0,
		LatentHeatJPerKg:   264.4e3,
		CondSolidWPerMK:    0.5,
		CondLiquidWPerMK:   0.54,
		DensitySolid:       1450,
		DensityLiquid:      1280,
		CpSolidJPerKgK:     2100,
		CpLiquidJPerKgK:    3500,
		MassKg:             227.1,
		ExchangerAreaM2:    26.1,
		SlabHalfThicknessM: 0.003,
		UAWPerK:            111.7,
		DesignFlowKgPerS:   0.074,
		FluidCpJPerKgK:     4186,
		CapacityKWh:        16.71,
	}
}

// Validate checks that the specification is physically sound. Non-positive
// mass, UA or flow rate would silently produce divisions by zero or reversed
// heat flow further down, so construction is the place to reject them.
func (s Specs) Validate() error {
	checks := []struct {
		name  string
		value float64
	}{
		{"latent_heat", s.LatentHeatJPerKg},
		{"cond_solid", s.CondSolidWPerMK},
		{"cond_liquid", s.CondLiquidWPerMK},
		{"density_solid", s.DensitySolid},
		{"density_liquid", s.DensityLiquid},
		{"cp_solid", s.CpSolidJPerKgK},
		{"cp_liquid", s.CpLiquidJPerKgK},
		{"mass", s.MassKg},
		{"exchanger_area", s.ExchangerAreaM2},
		{"slab_half_thickness", s.SlabHalfThicknessM},
		{"ua", s.UAWPerK},
		{"design_flow", s.DesignFlowKgPerS},
		{"fluid_cp", s.FluidCpJPerKgK},
		{"capacity_kwh", s.CapacityKWh},
	}
	for _, c := range checks {
		if c.value <= 0 {
			return fmt.Errorf("spec %s must be positive, got %v", c.name, c.value)
		}
	}
	return nil
}

// CapacityJ returns the rated capacity in Joules.
func (s Specs) CapacityJ() float64 {
	return s.CapacityKWh * 3.6e6
}
