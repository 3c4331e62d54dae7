package config

import "fmt"

// EconomicsConfig holds the assumptions for the lifecycle cost analysis
// layered on top of the simulation summaries.
type EconomicsConfig struct {
	CapitalCostUSD      float64 `json:"capital_cost_usd"`
	SolarCapitalCostUSD float64 `json:"solar_capital_cost_usd"`
	CyclesPerYear       int     `json:"cycles_per_year"`
	LifetimeYears       int     `json:"lifetime_years"`
	DiscountRate        float64 `json:"discount_rate"`
	// ElectricityUSDPerKWh is the grid rate used for pump parasitics and
	// electric heat sources.
	ElectricityUSDPerKWh float64 `json:"electricity_usd_per_kwh"`
	PumpPowerW           float64 `json:"pump_power_w"`
	// HeatSource names the displaced heating fuel: natural_gas, propane,
	// heating_oil, electric_resistance or heat_pump.
	HeatSource string `json:"heat_source"`
}

// SetDefaults applies the baseline Syracuse assumptions.
func (c *EconomicsConfig) SetDefaults() {
	if c.CapitalCostUSD == 0 {
		c.CapitalCostUSD = 3500
	}
	if c.SolarCapitalCostUSD == 0 {
		c.SolarCapitalCostUSD = 6000
	}
	if c.CyclesPerYear == 0 {
		c.CyclesPerYear = 150
	}
	if c.LifetimeYears == 0 {
		c.LifetimeYears = 10
	}
	if c.DiscountRate == 0 {
		c.DiscountRate = 0.03
	}
	if c.ElectricityUSDPerKWh == 0 {
		c.ElectricityUSDPerKWh = 0.15
	}
	if c.PumpPowerW == 0 {
		c.PumpPowerW = 50
	}
	if c.HeatSource == "" {
		c.HeatSource = "natural_gas"
	}
}

// Validate checks the configuration ranges.
func (c EconomicsConfig) Validate() error {
	if c.CapitalCostUSD <= 0 {
		return fmt.Errorf("capital_cost_usd must be positive")
	}
	if c.CyclesPerYear <= 0 {
		return fmt.Errorf("cycles_per_year must be positive")
	}
	if c.LifetimeYears <= 0 {
		return fmt.Errorf("lifetime_years must be positive")
	}
	if c.DiscountRate < 0 || c.DiscountRate >= 1 {
		return fmt.Errorf("discount_rate must be in [0,1)")
	}
	if c.PumpPowerW < 0 {
		return fmt.Errorf("pump_power_w must not be negative")
	}
	return nil
}
