package responder

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/klimeurt/ghreport/internal/collector"
	"github.com/klimeurt/ghreport/internal/config"
	"github.com/klimeurt/ghreport/internal/publisher"
	"github.com/nats-io/nats.go"
)

// Headers set on replies
const (
	StatusHeader = "Report-Status"
	ErrorHeader  = "Report-Error"
)

// Reply statuses
const (
	StatusOK       = "ok"
	StatusNotFound = "not-found"
	StatusFailed   = "failed"
	StatusInvalid  = "invalid"
)

// RunFunc renders the report of username to w
type RunFunc func(ctx context.Context, username string, w io.Writer) error

// Processor turns report requests into replies
type Processor struct {
	config *config.Config
	run    RunFunc
	nc     *nats.Conn
}

// NewProcessor creates a new Processor instance
func NewProcessor(cfg *config.Config, run RunFunc, nc *nats.Conn) *Processor {
	return &Processor{
		config: cfg,
		run:    run,
		nc:     nc,
	}
}

// ProcessMessage builds the report for the username carried by msg and sends
// it to the reply inbox, or to the report subject when msg has none
func (p *Processor) ProcessMessage(ctx context.Context, msg *nats.Msg) error {
	username, err := parseUsername(msg.Data)
	if err != nil {
		return p.reply(msg, "", nil, StatusInvalid, err)
	}

	log.Info("Processing report request", "user", username)

	var buf bytes.Buffer
	if err := p.run(ctx, username, &buf); err != nil {
		status := StatusFailed
		if errors.Is(err, collector.ErrNotFound) {
			status = StatusNotFound
		}
		log.Error("Report failed", "user", username, "err", err)
		return p.reply(msg, username, nil, status, err)
	}

	return p.reply(msg, username, buf.Bytes(), StatusOK, nil)
}

func (p *Processor) reply(req *nats.Msg, username string, data []byte, status string, cause error) error {
	subject := req.Reply
	if subject == "" {
		if cause != nil {
			// nobody is waiting for a failure
			return cause
		}
		subject = p.config.NATSSubject
	}

	out := nats.NewMsg(subject)
	out.Data = data
	out.Header.Set(StatusHeader, status)
	if username != "" {
		out.Header.Set(publisher.UserHeader, username)
	}
	if cause != nil {
		out.Header.Set(ErrorHeader, cause.Error())
	}

	if err := p.nc.PublishMsg(out); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", subject, err)
	}
	return cause
}

// parseUsername validates a request payload: a single GitHub login
func parseUsername(data []byte) (string, error) {
	username := strings.TrimSpace(string(data))
	if username == "" {
		return "", errors.New("empty username")
	}
	if strings.ContainsAny(username, " \t\n/?#") {
		return "", fmt.Errorf("invalid username %q", username)
	}
	return username, nil
}
