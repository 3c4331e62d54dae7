package metrics

import coremetrics "github.com/SBSWP/itb-100-thermal-battery/core/metrics"

// MultiSink fans cycle records out to multiple sinks.
type MultiSink struct {
	Sinks []coremetrics.MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...coremetrics.MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordCycle forwards the record to all sinks, returning the first error
// encountered.
func (m *MultiSink) RecordCycle(ev coremetrics.CycleEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordCycle(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordSample forwards samples to sinks that support them.
func (m *MultiSink) RecordSample(ev coremetrics.SampleEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(coremetrics.SampleRecorder); ok {
			if err := rec.RecordSample(ev); err != nil {
				return err
			}
		}
	}
	return nil
}
