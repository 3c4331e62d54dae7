package economics

// SeasonAssist quantifies how much heat pump electricity a daily battery
// discharge avoids during one shoulder season.
type SeasonAssist struct {
	Season             string  `json:"season"`
	AvgOutdoorC        float64 `json:"avg_outdoor_c"`
	Cycles             int     `json:"cycles"`
	COP                float64 `json:"cop"`
	BatteryEnergyKWh   float64 `json:"battery_energy_kwh"`
	ElectricAvoidedKWh float64 `json:"electric_avoided_kwh"`
	SavingsUSD         float64 `json:"savings_usd"`
}

// season describes the fixed climate assumptions for one shoulder season.
type season struct {
	name        string
	avgOutdoorC float64
	goodDays    int
}

// Shoulder season climate for the reference site: days with enough solar to
// complete a charge, at the season's mean outdoor temperature.
var seasons = []season{
	{"spring", 5.6, 64},
	{"fall", 8.9, 60},
	{"winter_bonus", -2.2, 15},
}

// HeatPumpAssist estimates the seasonal heat pump assist value of one full
// battery discharge per good solar day. perCycleKWh is the delivered energy
// of a simulated discharge; rateUSDPerKWh should include any time-of-use
// premium for the morning hours the battery covers.
func HeatPumpAssist(perCycleKWh, rateUSDPerKWh float64) []SeasonAssist {
	out := make([]SeasonAssist, 0, len(seasons))
	for _, s := range seasons {
		cop := COP(s.avgOutdoorC)
		energy := perCycleKWh * float64(s.goodDays)
		avoided := energy / cop
		out = append(out, SeasonAssist{
			Season:             s.name,
			AvgOutdoorC:        s.avgOutdoorC,
			Cycles:             s.goodDays,
			COP:                cop,
			BatteryEnergyKWh:   energy,
			ElectricAvoidedKWh: avoided,
			SavingsUSD:         avoided * rateUSDPerKWh,
		})
	}
	return out
}
