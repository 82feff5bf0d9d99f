// Package events announces finished installations over MQTT.
package events

import (
	"encoding/json"
	"fmt"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/stanrw/enerwiseuk-sub000/internal/config"
	"github.com/stanrw/enerwiseuk-sub000/pkg/installation"
)

const (
	connectTimeout    = 10 * time.Second
	publishTimeout    = 5 * time.Second
	disconnectQuiesce = 250 // milliseconds
	keepAlive         = 60 * time.Second
)

// Completed is the payload published when an installation has been designed
// and stored.
type Completed struct {
	ID                string    `json:"id"`
	Address           string    `json:"address,omitempty"`
	TotalPanels       int       `json:"totalPanels"`
	TotalStrings      int       `json:"totalStrings"`
	SystemCapacityKw  float64   `json:"systemCapacityKw"`
	YearlyEnergyDcKwh float64   `json:"yearlyEnergyDcKwh"`
	OverallScore      float64   `json:"overallScore"`
	Timestamp         time.Time `json:"timestamp"`
}

// Publisher sends installation events to an MQTT broker.
//
// All methods are safe for concurrent use from multiple goroutines.
type Publisher struct {
	client pahomqtt.Client
	qos    byte
	prefix string
	now    func() time.Time
}

// Connect dials the broker described by cfg.
func Connect(cfg config.MQTTConfig) (*Publisher, error) {
	opts := pahomqtt.NewClientOptions()
	opts.AddBroker(fmt.Sprintf("tcp://%s:%d", cfg.Host, cfg.Port))
	opts.SetClientID(cfg.ClientID)
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}
	opts.SetCleanSession(true)
	opts.SetAutoReconnect(true)
	opts.SetConnectTimeout(connectTimeout)
	opts.SetKeepAlive(keepAlive)

	client := pahomqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return nil, fmt.Errorf("%w: timeout after %v", ErrConnectionFailed, connectTimeout)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnectionFailed, err)
	}
	return newPublisher(client, cfg), nil
}

func newPublisher(client pahomqtt.Client, cfg config.MQTTConfig) *Publisher {
	prefix := cfg.TopicPrefix
	if prefix == "" {
		prefix = "solarplanner"
	}
	return &Publisher{
		client: client,
		qos:    byte(cfg.QoS),
		prefix: prefix,
		now:    time.Now,
	}
}

// CompletedTopic returns the topic an installation's completion is published on.
func (p *Publisher) CompletedTopic(id string) string {
	return fmt.Sprintf("%s/installations/%s/completed", p.prefix, id)
}

// PublishCompleted announces a stored installation.
func (p *Publisher) PublishCompleted(id, address string, inst *installation.Installation) error {
	if !p.client.IsConnected() {
		return ErrNotConnected
	}

	payload, err := json.Marshal(Completed{
		ID:                id,
		Address:           address,
		TotalPanels:       inst.Summary.TotalPanels,
		TotalStrings:      inst.ElectricalDesign.TotalStrings,
		SystemCapacityKw:  inst.Summary.SystemCapacityKw,
		YearlyEnergyDcKwh: inst.Summary.YearlyEnergyDcKwh,
		OverallScore:      inst.InstallationQuality.OverallScore,
		Timestamp:         p.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("%w: encoding payload: %w", ErrPublishFailed, err)
	}

	token := p.client.Publish(p.CompletedTopic(id), p.qos, false, payload)
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("%w: timeout after %v", ErrPublishFailed, publishTimeout)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("%w: %w", ErrPublishFailed, err)
	}
	return nil
}

// Close disconnects from the broker.
func (p *Publisher) Close() {
	p.client.Disconnect(disconnectQuiesce)
}
