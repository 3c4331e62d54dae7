// Package economics layers lifecycle cost analysis on top of the simulation
// summaries. Everything here is static arithmetic over the configured
// assumptions; the only simulation inputs are the scalar cycle summaries.
package economics

import (
	"fmt"
	"math"

	"github.com/SBSWP/itb-100-thermal-battery/config"
)

// CycleSummary carries the scalar outcome of one simulated cycle. It is the
// whole interface between the simulation and the cost model.
type CycleSummary struct {
	TotalEnergyKWh float64
	AvgPowerKW     float64
	DurationHours  float64
}

// fuelCostUSDPerKWh is the displaced-heat cost table: retail fuel prices
// converted to $/kWh of delivered heat.
var fuelCostUSDPerKWh = map[string]float64{
	"natural_gas":         0.80 / 29.3, // $/therm at 29.3 kWh/therm
	"propane":             2.50 / 27.0, // $/gallon at 27 kWh/gallon
	"heating_oil":         3.00 / 40.0, // $/gallon at 40 kWh/gallon
	"electric_resistance": 0.15,
	"heat_pump":           0.15 / 3.0, // COP 3.0 at moderate temperatures
}

// COP approximates an air-source heat pump coefficient of performance as a
// function of outdoor temperature. Linear fit against typical ASHP curves
// (3.5 at 8 degC, 2.5 at 2 degC, 1.8 at -8 degC), clamped to [1.3, 4.5].
func COP(outdoorC float64) float64 {
	var cop float64
	if outdoorC >= 8 {
		cop = 3.5 + 0.05*(outdoorC-8)
	} else {
		cop = 3.5 - 0.125*(8-outdoorC)
	}
	return math.Min(4.5, math.Max(1.3, cop))
}

// Report is the outcome of the annual savings analysis for one displaced
// heat source.
type Report struct {
	HeatSource            string  `json:"heat_source"`
	AnnualEnergyKWh       float64 `json:"annual_energy_kwh"`
	AnnualFuelSavingsUSD  float64 `json:"annual_fuel_savings_usd"`
	AnnualPumpCostUSD     float64 `json:"annual_pump_cost_usd"`
	NetAnnualSavingsUSD   float64 `json:"net_annual_savings_usd"`
	SimplePaybackYears    float64 `json:"simple_payback_years"`
	NPVUSD                float64 `json:"npv_usd"`
	LevelizedUSDPerKWh    float64 `json:"levelized_usd_per_kwh"`
	CycleDurationHours    float64 `json:"cycle_duration_hours"`
	DeliveredPerCycleKWh  float64 `json:"delivered_per_cycle_kwh"`
}

// Assess computes the annual operating savings of running the battery for
// the configured number of cycles, displacing the configured heat source.
// Only the scalar summaries of the discharge and charge runs are consumed.
func Assess(discharge, charge CycleSummary, cfg config.EconomicsConfig) (Report, error) {
	fuelCost, ok := fuelCostUSDPerKWh[cfg.HeatSource]
	if !ok {
		return Report{}, fmt.Errorf("unknown heat source %q", cfg.HeatSource)
	}

	perCycle := discharge.TotalEnergyKWh
	annualEnergy := perCycle * float64(cfg.CyclesPerYear)

	// Displaced fuel passes through the furnace efficiency for combustion
	// sources; electric sources are counted at unity.
	furnaceEff := 1.0
	if cfg.HeatSource == "natural_gas" || cfg.HeatSource == "propane" || cfg.HeatSource == "heating_oil" {
		furnaceEff = 0.90
	}
	fuelSavings := annualEnergy / furnaceEff * fuelCost

	// Circulator pump parasitics run for the whole charge and discharge.
	hoursPerCycle := discharge.DurationHours + charge.DurationHours
	pumpKWh := cfg.PumpPowerW * hoursPerCycle * float64(cfg.CyclesPerYear) / 1000
	pumpCost := pumpKWh * cfg.ElectricityUSDPerKWh

	net := fuelSavings - pumpCost

	payback := math.Inf(1)
	if net > 0 {
		payback = cfg.CapitalCostUSD / net
	}

	npv := -cfg.CapitalCostUSD
	for y := 1; y <= cfg.LifetimeYears; y++ {
		npv += net / math.Pow(1+cfg.DiscountRate, float64(y))
	}

	levelized := 0.0
	if annualEnergy > 0 {
		levelized = cfg.CapitalCostUSD / (annualEnergy * float64(cfg.LifetimeYears))
	}

	return Report{
		HeatSource:           cfg.HeatSource,
		AnnualEnergyKWh:      annualEnergy,
		AnnualFuelSavingsUSD: fuelSavings,
		AnnualPumpCostUSD:    pumpCost,
		NetAnnualSavingsUSD:  net,
		SimplePaybackYears:   payback,
		NPVUSD:               npv,
		LevelizedUSDPerKWh:   levelized,
		CycleDurationHours:   hoursPerCycle,
		DeliveredPerCycleKWh: perCycle,
	}, nil
}

// HeatSources lists the supported displaced heat sources.
func HeatSources() []string {
	return []string{"natural_gas", "propane", "heating_oil", "electric_resistance", "heat_pump"}
}
