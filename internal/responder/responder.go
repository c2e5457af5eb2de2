package responder

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/klimeurt/ghreport/internal/config"
	"github.com/nats-io/nats.go"
)

// Responder is the report request service
type Responder struct {
	config    *config.Config
	processor *Processor
	nc        *nats.Conn
	sub       *nats.Subscription
	ctx       context.Context
	cancel    context.CancelFunc
}

// New creates a new Responder instance
func New(cfg *config.Config, run RunFunc) (*Responder, error) {
	// Connect to NATS
	nc, err := nats.Connect(cfg.NATSUrl)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	processor := NewProcessor(cfg, run, nc)

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())

	return &Responder{
		config:    cfg,
		processor: processor,
		nc:        nc,
		ctx:       ctx,
		cancel:    cancel,
	}, nil
}

// Start begins answering requests. Requests are handled one at a time in
// arrival order.
func (r *Responder) Start() error {
	log.Info("Starting responder service", "subject", r.config.RequestSubject)

	sub, err := r.nc.Subscribe(r.config.RequestSubject, func(msg *nats.Msg) {
		if err := r.processor.ProcessMessage(r.ctx, msg); err != nil {
			log.Warn("Error processing request", "err", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", r.config.RequestSubject, err)
	}
	if err := r.nc.Flush(); err != nil {
		return fmt.Errorf("failed to flush subscription: %w", err)
	}

	r.sub = sub
	log.Info("Responder service started")
	return nil
}

// Stop cancels in-flight work and closes the connection
func (r *Responder) Stop() {
	log.Info("Stopping responder service...")

	r.cancel()

	if r.sub != nil {
		if err := r.sub.Unsubscribe(); err != nil {
			log.Warn("Failed to unsubscribe", "err", err)
		}
	}

	if r.nc != nil {
		r.nc.Close()
	}

	log.Info("Responder service stopped")
}
