// Package events defines the event types published on the internal bus.
package events

import "github.com/SBSWP/itb-100-thermal-battery/core/metrics"

// CycleCompletedEvent is published when a charge or discharge run finishes.
type CycleCompletedEvent struct {
	Summary metrics.CycleEvent
}

// SampleEvent is published for each recorded simulation sample.
type SampleEvent struct {
	Sample metrics.SampleEvent
}
