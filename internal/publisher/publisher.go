package publisher

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/klimeurt/ghreport/internal/config"
	"github.com/nats-io/nats.go"
)

// UserHeader carries the reported username on published messages
const UserHeader = "Github-User"

// Publisher sends rendered reports to a NATS subject
type Publisher struct {
	config *config.Config
	nc     *nats.Conn
}

// New creates a new Publisher instance
func New(cfg *config.Config) (*Publisher, error) {
	nc, err := nats.Connect(cfg.NATSUrl)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return &Publisher{
		config: cfg,
		nc:     nc,
	}, nil
}

// Publish publishes the text report of username
func (p *Publisher) Publish(username string, report []byte) error {
	msg := nats.NewMsg(p.config.NATSSubject)
	msg.Header.Set(UserHeader, username)
	msg.Data = report

	if err := p.nc.PublishMsg(msg); err != nil {
		return fmt.Errorf("failed to publish to NATS: %w", err)
	}
	if err := p.nc.Flush(); err != nil {
		return fmt.Errorf("failed to flush NATS connection: %w", err)
	}

	log.Info("Published report", "user", username, "subject", p.config.NATSSubject)
	return nil
}

// Close cleanly shuts down the publisher
func (p *Publisher) Close() {
	if p.nc != nil {
		p.nc.Close()
	}
}
