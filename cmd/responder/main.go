package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/klimeurt/ghreport/internal/collector"
	"github.com/klimeurt/ghreport/internal/config"
	"github.com/klimeurt/ghreport/internal/report"
	"github.com/klimeurt/ghreport/internal/responder"
)

func main() {
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", "err", err)
	}
	if cfg.NATSUrl == "" {
		cfg.NATSUrl = "nats://localhost:4222"
	}

	client, err := collector.New(cfg)
	if err != nil {
		log.Fatal("Failed to create GitHub client", "err", err)
	}
	reporter := report.NewReporter(client, report.OptionsFromConfig(cfg))

	// Create responder service
	r, err := responder.New(cfg, reporter.Run)
	if err != nil {
		log.Fatal("Failed to create responder", "err", err)
	}

	// Start the responder service
	if err := r.Start(); err != nil {
		log.Fatal("Failed to start responder", "err", err)
	}
	defer r.Stop()

	// Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Wait for shutdown signal
	<-sigChan
	log.Info("Received shutdown signal, stopping responder...")
}
