package metrics

import (
	"context"
	"math"
	"net/http"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/SBSWP/itb-100-thermal-battery/core/metrics"
	"github.com/SBSWP/itb-100-thermal-battery/infra/logger"
)

// InfluxSink writes cycle results to an InfluxDB instance using the official
// client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB
// endpoint.
func NewInfluxSink(cfg coremetrics.Config) *InfluxSink {
	client := influxdb2.NewClientWithOptions(cfg.InfluxURL, cfg.InfluxToken,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(cfg.InfluxOrg, cfg.InfluxBucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback pings the InfluxDB instance and returns a
// NopSink if the health check fails, so an offline database never blocks a
// simulation run.
func NewInfluxSinkWithFallback(cfg coremetrics.Config) coremetrics.MetricsSink {
	sink := NewInfluxSink(cfg)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordCycle writes the cycle summary as a single point.
func (s *InfluxSink) RecordCycle(ev coremetrics.CycleEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("thermal_cycle").
		AddTag("run_id", ev.RunID).
		AddTag("mode", ev.Mode).
		AddTag("stop_reason", ev.StopReason).
		AddField("total_energy_kwh", round3(ev.TotalEnergyKWh)).
		AddField("avg_power_kw", round3(ev.AvgPowerKW)).
		AddField("duration_hours", round3(ev.DurationHours)).
		AddField("final_soc", round3(ev.FinalSOC)).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordSample writes one time series sample.
func (s *InfluxSink) RecordSample(ev coremetrics.SampleEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("thermal_sample").
		AddTag("run_id", ev.RunID).
		AddTag("mode", ev.Mode).
		AddField("time_hours", round3(ev.TimeHours)).
		AddField("medium_temp_c", round3(ev.MediumTempC)).
		AddField("outlet_temp_c", round3(ev.OutletTempC)).
		AddField("power_kw", round3(ev.PowerKW)).
		AddField("available_kw", round3(ev.AvailableKW)).
		AddField("soc", round3(ev.SOC)).
		AddField("solid_fraction", round3(ev.SolidFraction)).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// Close releases the underlying client.
func (s *InfluxSink) Close() {
	s.client.Close()
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
