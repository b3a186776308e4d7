// Package mqtt provides an optional ingest source: devices publish reading
// payloads to a broker topic and the subscriber feeds them through the same
// pipeline as the HTTP endpoint.
package mqtt

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/verdantlab/gardensense/internal/conf"
	"github.com/verdantlab/gardensense/internal/ingest"
	"github.com/verdantlab/gardensense/internal/logger"
)

// ingestTimeout bounds pipeline work for one broker message.
const ingestTimeout = 10 * time.Second

// Client subscribes to the configured topic and ingests published readings.
type Client struct {
	settings *conf.MQTTSettings
	pipeline *ingest.Pipeline
	log      logger.Logger
	conn     paho.Client
}

// NewClient creates an MQTT ingest client.
func NewClient(settings *conf.MQTTSettings, pipeline *ingest.Pipeline, log logger.Logger) *Client {
	return &Client{
		settings: settings,
		pipeline: pipeline,
		log:      log,
	}
}

// Connect dials the broker and subscribes to the reading topic. The paho
// client auto-reconnects and re-subscribes on connection loss.
func (c *Client) Connect(ctx context.Context) error {
	clientID := c.settings.ClientID
	if clientID == "" {
		clientID = "gardensense-" + uuid.NewString()[:8]
	}

	opts := paho.NewClientOptions().
		AddBroker(c.settings.Broker).
		SetClientID(clientID).
		SetUsername(c.settings.Username).
		SetPassword(c.settings.Password).
		SetAutoReconnect(true).
		SetConnectTimeout(c.settings.ConnectTimeout.Std()).
		SetOnConnectHandler(c.onConnect).
		SetConnectionLostHandler(c.onConnectionLost)

	c.conn = paho.NewClient(opts)

	token := c.conn.Connect()
	select {
	case <-token.Done():
	case <-ctx.Done():
		return ctx.Err()
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("failed to connect to MQTT broker %s: %w", c.settings.Broker, err)
	}
	return nil
}

// Disconnect closes the broker connection.
func (c *Client) Disconnect() {
	if c.conn != nil && c.conn.IsConnected() {
		c.conn.Disconnect(250)
	}
}

func (c *Client) onConnect(conn paho.Client) {
	token := conn.Subscribe(c.settings.Topic, 1, c.handleMessage)
	token.Wait()
	if err := token.Error(); err != nil {
		c.log.Error("failed to subscribe to reading topic",
			logger.String("topic", c.settings.Topic),
			logger.Error(err))
		return
	}
	c.log.Info("subscribed to reading topic", logger.String("topic", c.settings.Topic))
}

func (c *Client) onConnectionLost(_ paho.Client, err error) {
	c.log.Warn("MQTT connection lost", logger.Error(err))
}

// handleMessage ingests one published payload. Failures are logged; the
// broker delivery is acknowledged either way since devices republish on
// their own schedule.
func (c *Client) handleMessage(_ paho.Client, msg paho.Message) {
	var payload ingest.ReadingPayload
	if err := json.Unmarshal(msg.Payload(), &payload); err != nil {
		c.log.Warn("discarding malformed MQTT payload",
			logger.String("topic", msg.Topic()),
			logger.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), ingestTimeout)
	defer cancel()

	if _, err := c.pipeline.Ingest(ctx, &payload, "mqtt"); err != nil {
		c.log.Error("failed to ingest MQTT reading",
			logger.String("topic", msg.Topic()),
			logger.String("device_id", payload.DeviceID),
			logger.Error(err))
	}
}
