// Package app wires the configuration, sinks and simulators into the
// analysis service run by the CLI.
package app

import (
	"context"
	"fmt"

	"github.com/SBSWP/itb-100-thermal-battery/config"
	"github.com/SBSWP/itb-100-thermal-battery/core/cycle"
	"github.com/SBSWP/itb-100-thermal-battery/core/economics"
	coreevents "github.com/SBSWP/itb-100-thermal-battery/core/events"
	coremetrics "github.com/SBSWP/itb-100-thermal-battery/core/metrics"
	"github.com/SBSWP/itb-100-thermal-battery/core/model"
	"github.com/SBSWP/itb-100-thermal-battery/core/solar"
	"github.com/SBSWP/itb-100-thermal-battery/infra/logger"
	"github.com/SBSWP/itb-100-thermal-battery/infra/metrics"
	"github.com/SBSWP/itb-100-thermal-battery/infra/mqtt"
	"github.com/SBSWP/itb-100-thermal-battery/internal/eventbus"
	"github.com/SBSWP/itb-100-thermal-battery/pkg/export"
)

// Service orchestrates a full analysis: discharge, solar charge, economics.
type Service struct {
	cfg  *config.Config
	log  logger.Logger
	bus  *eventbus.Bus
	sim  *cycle.Simulator
	pub  *mqtt.TelemetryPublisher
	prom bool
	addr string
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	var sinks []coremetrics.MetricsSink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink(cfg.Metrics)
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sinks = append(sinks, metrics.NewInfluxSinkWithFallback(cfg.Metrics))
	}
	var pub *mqtt.TelemetryPublisher
	if cfg.MQTT.Enabled {
		p, err := mqtt.NewTelemetryPublisher(cfg.MQTT)
		if err != nil {
			return nil, fmt.Errorf("mqtt telemetry: %w", err)
		}
		pub = p
		sinks = append(sinks, p)
	}
	var sink coremetrics.MetricsSink
	switch len(sinks) {
	case 0:
		sink = coremetrics.NopSink{}
	case 1:
		sink = sinks[0]
	default:
		sink = metrics.NewMultiSink(sinks...)
	}

	bus := eventbus.New()
	sim, err := cycle.New(model.DefaultSpecs(), cfg.Simulation, bus, sink)
	if err != nil {
		return nil, err
	}
	return &Service{
		cfg:  cfg,
		log:  logg,
		bus:  bus,
		sim:  sim,
		pub:  pub,
		prom: cfg.Metrics.PrometheusEnabled,
		addr: cfg.Metrics.PrometheusAddr,
	}, nil
}

// Run executes the full analysis and writes results to the output directory.
func (s *Service) Run(ctx context.Context) error {
	if s.prom {
		go func() {
			if err := metrics.StartPromServer(ctx, s.addr); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}
	go s.watch(ctx)

	discharge, err := s.RunDischarge()
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	charge, err := s.RunCharge()
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	report, err := s.Assess(discharge, charge)
	if err != nil {
		return err
	}
	s.log.Infof("economics vs %s: net $%.0f/yr, payback %.1f yr, NPV $%.0f",
		report.HeatSource, report.NetAnnualSavingsUSD, report.SimplePaybackYears, report.NPVUSD)
	return nil
}

// RunDischarge simulates a full discharge and exports the result.
func (s *Service) RunDischarge() (*cycle.Result, error) {
	res, err := s.sim.Discharge()
	if err != nil {
		return nil, fmt.Errorf("discharge: %w", err)
	}
	if _, err := export.Save(s.cfg.Output.Dir, res, s.cfg.Output.Formats); err != nil {
		return nil, fmt.Errorf("export discharge: %w", err)
	}
	return res, nil
}

// RunCharge builds the forcing profile and simulates a full charge.
func (s *Service) RunCharge() (*cycle.Result, error) {
	profile, err := s.Profile()
	if err != nil {
		return nil, err
	}
	res, err := s.sim.Charge(profile)
	if err != nil {
		return nil, fmt.Errorf("charge: %w", err)
	}
	if _, err := export.Save(s.cfg.Output.Dir, res, s.cfg.Output.Formats); err != nil {
		return nil, fmt.Errorf("export charge: %w", err)
	}
	return res, nil
}

// Profile returns the configured forcing profile, synthetic or recorded.
func (s *Service) Profile() (solar.Profile, error) {
	if s.cfg.Solar.Mode == "file" {
		p, err := solar.LoadFile(s.cfg.Solar.ProfilePath)
		if err != nil {
			return solar.Profile{}, fmt.Errorf("load profile: %w", err)
		}
		return p, nil
	}
	return solar.Generate(s.cfg.Solar), nil
}

// Assess runs the lifecycle cost analysis over the cycle summaries.
func (s *Service) Assess(discharge, charge *cycle.Result) (economics.Report, error) {
	return economics.Assess(
		economics.CycleSummary{
			TotalEnergyKWh: discharge.TotalEnergyKWh,
			AvgPowerKW:     discharge.AvgPowerKW,
			DurationHours:  discharge.DurationHours,
		},
		economics.CycleSummary{
			TotalEnergyKWh: charge.TotalEnergyKWh,
			AvgPowerKW:     charge.AvgPowerKW,
			DurationHours:  charge.DurationHours,
		},
		s.cfg.Economics,
	)
}

// watch logs bus events so long runs show progress without touching the
// simulation loop.
func (s *Service) watch(ctx context.Context) {
	sub := s.bus.Subscribe()
	defer s.bus.Unsubscribe(sub)
	for {
		select {
		case <-ctx.Done():
			return
		case e, ok := <-sub:
			if !ok {
				return
			}
			if ev, isCycle := e.(coreevents.CycleCompletedEvent); isCycle {
				s.log.Debugf("cycle %s done: stop=%s soc=%.2f",
					ev.Summary.RunID, ev.Summary.StopReason, ev.Summary.FinalSOC)
			}
		}
	}
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	s.bus.Close()
	if s.pub != nil {
		s.pub.Close()
	}
	return nil
}
