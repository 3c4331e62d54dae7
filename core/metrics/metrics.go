package metrics

import "time"

// CycleEvent summarizes a completed charge or discharge run.
type CycleEvent struct {
	RunID          string
	Mode           string // "charge" or "discharge"
	TotalEnergyKWh float64
	AvgPowerKW     float64
	DurationHours  float64
	FinalSOC       float64
	StopReason     string
	Time           time.Time
}

// MetricsSink records completed cycles for observability purposes.
type MetricsSink interface {
	RecordCycle(ev CycleEvent) error
}

// SampleEvent is one sample of the simulation time series.
type SampleEvent struct {
	RunID         string
	Mode          string
	TimeHours     float64
	MediumTempC   float64
	OutletTempC   float64
	PowerKW       float64
	AvailableKW   float64 // charge runs only, zero otherwise
	SOC           float64
	SolidFraction float64
	Time          time.Time
}

// SampleRecorder is implemented by sinks able to record per-step samples.
type SampleRecorder interface {
	RecordSample(ev SampleEvent) error
}

// NopSink implements MetricsSink with no-op methods.
type NopSink struct{}

func (NopSink) RecordCycle(CycleEvent) error   { return nil }
func (NopSink) RecordSample(SampleEvent) error { return nil }
