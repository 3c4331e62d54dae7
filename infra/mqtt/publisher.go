// Package mqtt streams simulation telemetry to an MQTT broker so dashboards
// can follow a run live. It sits entirely outside the numerical path and is
// disabled by default.
package mqtt

import (
	"encoding/json"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	coremetrics "github.com/SBSWP/itb-100-thermal-battery/core/metrics"
	"github.com/SBSWP/itb-100-thermal-battery/infra/logger"
)

// Config defines the connection parameters for the telemetry publisher.
type Config struct {
	Enabled     bool   `json:"enabled"`
	Broker      string `json:"broker"`
	ClientID    string `json:"client_id"`
	Username    string `json:"username"`
	Password    string `json:"password"`
	TopicPrefix string `json:"topic_prefix"`
	QoS         byte   `json:"qos"`
}

// SetDefaults applies fallback values for optional fields.
func (c *Config) SetDefaults() {
	if c.ClientID == "" {
		c.ClientID = "itb100-telemetry"
	}
	if c.TopicPrefix == "" {
		c.TopicPrefix = "itb100"
	}
}

// Validate checks mandatory fields when the publisher is enabled.
func (c Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Broker == "" {
		return fmt.Errorf("mqtt broker is required when telemetry is enabled")
	}
	if c.QoS > 2 {
		return fmt.Errorf("mqtt qos must be 0, 1 or 2")
	}
	return nil
}

// TelemetryPublisher publishes cycle and sample events as JSON messages.
// It implements the metrics sink interfaces so it can be fanned in next to
// the Prometheus and InfluxDB sinks.
type TelemetryPublisher struct {
	cli    paho.Client
	prefix string
	qos    byte
	log    logger.Logger
}

// NewTelemetryPublisher connects to the broker and returns a publisher.
func NewTelemetryPublisher(cfg Config) (*TelemetryPublisher, error) {
	opts := paho.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetConnectTimeout(5 * time.Second)
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}
	cli := paho.NewClient(opts)
	if token := cli.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("mqtt connect: %w", token.Error())
	}
	return &TelemetryPublisher{
		cli:    cli,
		prefix: cfg.TopicPrefix,
		qos:    cfg.QoS,
		log:    logger.New("mqtt-telemetry"),
	}, nil
}

// RecordCycle publishes the cycle summary on <prefix>/cycle.
func (p *TelemetryPublisher) RecordCycle(ev coremetrics.CycleEvent) error {
	return p.publish(p.prefix+"/cycle", ev)
}

// RecordSample publishes one sample on <prefix>/sample.
func (p *TelemetryPublisher) RecordSample(ev coremetrics.SampleEvent) error {
	return p.publish(p.prefix+"/sample", ev)
}

func (p *TelemetryPublisher) publish(topic string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode telemetry: %w", err)
	}
	token := p.cli.Publish(topic, p.qos, false, payload)
	if token.Wait() && token.Error() != nil {
		return fmt.Errorf("publish %s: %w", topic, token.Error())
	}
	return nil
}

// Close disconnects from the broker.
func (p *TelemetryPublisher) Close() {
	p.cli.Disconnect(250)
}
