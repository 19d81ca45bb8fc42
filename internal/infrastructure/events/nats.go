package events

import (
	"errors"
	"fmt"
	"time"

	"github.com/gdugdh24/insightsphere-backend/internal/logging"
	"github.com/goccy/go-json"
	"github.com/nats-io/nats.go"
)

type Config struct {
	URL           string
	ClientName    string
	MaxReconnects int
	ReconnectWait time.Duration
}

// Client is a NATS connection with a JetStream context.
type Client struct {
	conn *nats.Conn
	js   nats.JetStreamContext
}

func NewClient(cfg Config) (*Client, error) {
	if cfg.MaxReconnects == 0 {
		cfg.MaxReconnects = 10
	}
	if cfg.ReconnectWait == 0 {
		cfg.ReconnectWait = 2 * time.Second
	}

	opts := []nats.Option{
		nats.Name(cfg.ClientName),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				logging.Warn().Err(err).Msg("[NATS] Disconnected")
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logging.Info().Str("url", nc.ConnectedUrl()).Msg("[NATS] Reconnected")
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			logging.Info().Msg("[NATS] Connection closed")
		}),
	}

	nc, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := nc.JetStream()
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	logging.Info().Str("url", nc.ConnectedUrl()).Msg("[NATS] Connected")
	return &Client{conn: nc, js: js}, nil
}

func (c *Client) Close() {
	if c.conn != nil {
		c.conn.Close()
	}
}

// Publish stores data on the stream bound to subject and waits for the ack.
func (c *Client) Publish(subject string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	if _, err := c.js.Publish(subject, payload); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	return nil
}

// SubscribeDurable creates a queue subscription that survives restarts.
// Handlers must Ack or Nak each message.
func (c *Client) SubscribeDurable(subject, durableName, queueGroup string, handler nats.MsgHandler) (*nats.Subscription, error) {
	sub, err := c.js.QueueSubscribe(
		subject,
		queueGroup,
		handler,
		nats.Durable(durableName),
		nats.ManualAck(),
		nats.AckExplicit(),
		nats.MaxDeliver(3),
		nats.AckWait(30*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create durable subscription to %s: %w", subject, err)
	}
	logging.Info().Str("subject", subject).Str("durable", durableName).Msg("[NATS] Durable subscription created")
	return sub, nil
}

// EnsureStream creates the stream unless it already exists.
func (c *Client) EnsureStream(name string, subjects []string) error {
	_, err := c.js.AddStream(&nats.StreamConfig{
		Name:      name,
		Subjects:  subjects,
		Storage:   nats.FileStorage,
		MaxAge:    7 * 24 * time.Hour,
		Retention: nats.WorkQueuePolicy,
	})
	if err != nil && !errors.Is(err, nats.ErrStreamNameAlreadyInUse) {
		return fmt.Errorf("failed to create stream %s: %w", name, err)
	}
	return nil
}

func DecodeEvent(msg *nats.Msg, v interface{}) error {
	return json.Unmarshal(msg.Data, v)
}
