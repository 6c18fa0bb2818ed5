package nats

import (
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/LiamPeng/NYU-CC-k8s/pkg/logger"
)

// ClientConfig configuration สำหรับ NATS Client
type ClientConfig struct {
	URL     string
	Timeout time.Duration
}

// Client wraps the core NATS connection used for todo change events.
type Client struct {
	conn *nats.Conn
}

func NewClient(cfg ClientConfig) (*Client, error) {
	nc, err := nats.Connect(cfg.URL,
		nats.Name("todo-service"),
		nats.Timeout(cfg.Timeout),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				logger.Warn("NATS disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("NATS reconnected", "url", nc.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return &Client{conn: nc}, nil
}

func (c *Client) Conn() *nats.Conn {
	return c.conn
}

// Close drains pending publishes before closing.
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Drain()
}
