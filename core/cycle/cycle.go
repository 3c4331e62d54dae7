// Package cycle drives the heat transfer engine over full charge and
// discharge sessions and assembles the resulting time series.
package cycle

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/stat"

	"github.com/SBSWP/itb-100-thermal-battery/config"
	"github.com/SBSWP/itb-100-thermal-battery/core/engine"
	coreevents "github.com/SBSWP/itb-100-thermal-battery/core/events"
	coremetrics "github.com/SBSWP/itb-100-thermal-battery/core/metrics"
	"github.com/SBSWP/itb-100-thermal-battery/core/model"
	"github.com/SBSWP/itb-100-thermal-battery/core/solar"
	"github.com/SBSWP/itb-100-thermal-battery/infra/logger"
	"github.com/SBSWP/itb-100-thermal-battery/internal/eventbus"
)

// Simulator runs complete cycles against a fixed battery specification.
// Each run owns its own State; nothing is shared between runs.
type Simulator struct {
	specs model.Specs
	cfg   config.SimulationConfig
	eng   *engine.Engine
	bus   eventbus.EventBus
	sink  coremetrics.MetricsSink
	log   logger.Logger
}

// New creates a Simulator. bus may be nil when no observers are interested;
// a nil sink falls back to the no-op recorder.
func New(specs model.Specs, cfg config.SimulationConfig, bus eventbus.EventBus, sink coremetrics.MetricsSink) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("simulation config: %w", err)
	}
	eng, err := engine.New(specs)
	if err != nil {
		return nil, err
	}
	if sink == nil {
		sink = coremetrics.NopSink{}
	}
	return &Simulator{
		specs: specs,
		cfg:   cfg,
		eng:   eng,
		bus:   bus,
		sink:  sink,
		log:   logger.New("cycle"),
	}, nil
}

// Discharge simulates a full discharge session from a fully charged battery
// against the configured supply temperature. The run ends on the first of:
// state of charge below 1%, delivered power under the floor after the grace
// period, or the maximum duration bound.
func (s *Simulator) Discharge() (*Result, error) {
	st := model.NewChargedState(s.specs)
	res := &Result{RunID: uuid.NewString(), Mode: ModeDischarge}
	dt := s.cfg.Step()
	maxDur := s.cfg.MaxDuration()
	grace := s.cfg.PowerFloorGrace()

	stop := StopNone
	for stop == StopNone {
		if st.Elapsed >= maxDur {
			stop = StopTimeLimit
			break
		}
		step := s.eng.StepDischarge(&st, s.cfg.SupplyTempC, dt)
		s.record(res, st, step, 0)
		switch {
		case st.StateOfCharge(s.specs) < 0.01:
			stop = StopDepleted
		case step.PowerW < s.cfg.PowerFloorW && st.Elapsed > grace:
			stop = StopPowerFloor
		}
	}
	s.finish(res, st, stop)
	return res, nil
}

// Charge simulates charging a fully discharged battery from the given
// forcing profile. The profile's own uniform sample spacing is the
// integration step; absorbed power is capped at the profile's available
// power before the state update, so the battery never registers more energy
// than the source supplied. The run stops at 99% state of charge or when
// the profile is exhausted.
func (s *Simulator) Charge(profile solar.Profile) (*Result, error) {
	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("forcing profile: %w", err)
	}
	if profile.Len() < 2 {
		return nil, fmt.Errorf("forcing profile needs at least two samples")
	}
	dt := time.Duration(profile.StepHours() * float64(time.Hour))

	st := model.NewDischargedState(s.specs, s.cfg.AmbientTempC)
	res := &Result{RunID: uuid.NewString(), Mode: ModeCharge}

	stop := StopProfileEnd
	for i := 0; i < profile.Len(); i++ {
		step := s.eng.StepCharge(&st, profile.OutletC[i], profile.PowerW[i], dt)
		s.record(res, st, step, profile.PowerW[i])
		if st.StateOfCharge(s.specs) >= 0.99 {
			stop = StopFull
			break
		}
	}
	s.finish(res, st, stop)
	return res, nil
}

func (s *Simulator) record(res *Result, st model.State, step engine.Step, availableW float64) {
	res.TimeH = append(res.TimeH, st.Elapsed.Hours())
	res.MediumTempC = append(res.MediumTempC, st.TempC)
	res.OutletC = append(res.OutletC, step.OutletC)
	res.PowerKW = append(res.PowerKW, step.PowerW/1000)
	res.AvailableKW = append(res.AvailableKW, availableW/1000)
	res.SOC = append(res.SOC, st.StateOfCharge(s.specs))
	res.SolidFraction = append(res.SolidFraction, st.SolidFraction)

	ev := coremetrics.SampleEvent{
		RunID:         res.RunID,
		Mode:          res.Mode.String(),
		TimeHours:     st.Elapsed.Hours(),
		MediumTempC:   st.TempC,
		OutletTempC:   step.OutletC,
		PowerKW:       step.PowerW / 1000,
		AvailableKW:   availableW / 1000,
		SOC:           st.StateOfCharge(s.specs),
		SolidFraction: st.SolidFraction,
		Time:          time.Now(),
	}
	if rec, ok := s.sink.(coremetrics.SampleRecorder); ok {
		if err := rec.RecordSample(ev); err != nil {
			s.log.Warnf("record sample: %v", err)
		}
	}
	if s.bus != nil {
		s.bus.Publish(coreevents.SampleEvent{Sample: ev})
	}
}

func (s *Simulator) finish(res *Result, st model.State, stop StopReason) {
	res.Stop = stop
	res.Final = st
	if len(res.TimeH) >= 2 {
		res.TotalEnergyKWh = integrate.Trapezoidal(res.TimeH, res.PowerKW)
	}
	if len(res.PowerKW) > 0 {
		res.AvgPowerKW = stat.Mean(res.PowerKW, nil)
		res.DurationHours = res.TimeH[len(res.TimeH)-1]
	}

	ev := coremetrics.CycleEvent{
		RunID:          res.RunID,
		Mode:           res.Mode.String(),
		TotalEnergyKWh: res.TotalEnergyKWh,
		AvgPowerKW:     res.AvgPowerKW,
		DurationHours:  res.DurationHours,
		FinalSOC:       st.StateOfCharge(s.specs),
		StopReason:     stop.String(),
		Time:           time.Now(),
	}
	if err := s.sink.RecordCycle(ev); err != nil {
		s.log.Warnf("record cycle: %v", err)
	}
	if s.bus != nil {
		s.bus.Publish(coreevents.CycleCompletedEvent{Summary: ev})
	}
	s.log.Infof("%s run %s: %.2f kWh over %.2f h, avg %.2f kW, stop=%s",
		res.Mode, res.RunID, res.TotalEnergyKWh, res.DurationHours, res.AvgPowerKW, stop)
}
