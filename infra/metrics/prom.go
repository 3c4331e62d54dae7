package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/SBSWP/itb-100-thermal-battery/core/metrics"
)

// PromSink records cycle outcomes in Prometheus metrics.
type PromSink struct {
	cycles   *prometheus.CounterVec
	energy   *prometheus.CounterVec
	duration *prometheus.HistogramVec
	soc      *prometheus.GaugeVec
	power    *prometheus.GaugeVec
}

// NewPromSink registers the cycle metrics on the default Prometheus
// registerer. The metrics server is started separately.
func NewPromSink(cfg coremetrics.Config) (*PromSink, error) {
	return NewPromSinkWithRegistry(cfg, prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(cfg coremetrics.Config, reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	cycles := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "thermal_cycles_total",
		Help: "Completed simulation cycles",
	}, []string{"mode", "stop_reason"})
	energy := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "thermal_cycle_energy_kwh_sum",
		Help: "Energy transferred across completed cycles",
	}, []string{"mode"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "thermal_cycle_duration_hours",
		Help:    "Simulated duration of completed cycles",
		Buckets: []float64{1, 2, 4, 6, 8, 10, 12},
	}, []string{"mode"})
	soc := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "thermal_state_of_charge",
		Help: "State of charge at the latest recorded sample",
	}, []string{"mode"})
	power := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "thermal_power_kw",
		Help: "Transfer power at the latest recorded sample",
	}, []string{"mode"})

	if err := reg.Register(cycles); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			cycles = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(energy); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			energy = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(duration); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			duration = are.ExistingCollector.(*prometheus.HistogramVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(soc); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			soc = are.ExistingCollector.(*prometheus.GaugeVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(power); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			power = are.ExistingCollector.(*prometheus.GaugeVec)
		} else {
			return nil, err
		}
	}

	return &PromSink{cycles: cycles, energy: energy, duration: duration, soc: soc, power: power}, nil
}

// RecordCycle increments the cycle counters and observes the duration.
func (s *PromSink) RecordCycle(ev coremetrics.CycleEvent) error {
	s.cycles.WithLabelValues(ev.Mode, ev.StopReason).Inc()
	s.energy.WithLabelValues(ev.Mode).Add(ev.TotalEnergyKWh)
	s.duration.WithLabelValues(ev.Mode).Observe(ev.DurationHours)
	return nil
}

// RecordSample tracks the live state of charge and power gauges.
func (s *PromSink) RecordSample(ev coremetrics.SampleEvent) error {
	s.soc.WithLabelValues(ev.Mode).Set(ev.SOC)
	s.power.WithLabelValues(ev.Mode).Set(ev.PowerKW)
	return nil
}
