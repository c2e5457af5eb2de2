package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/klimeurt/ghreport/internal/collector"
	"github.com/klimeurt/ghreport/internal/config"
	"github.com/klimeurt/ghreport/internal/publisher"
	"github.com/klimeurt/ghreport/internal/report"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:          "ghreport [username]",
		Short:        "Print a text report of a GitHub user's profile and repositories",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.SetOutput(cmd.ErrOrStderr())
			if verbose {
				log.SetLevel(log.DebugLevel)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			if len(args) == 1 {
				cfg.GitHubUser = args[0]
			}
			if cfg.GitHubUser == "" {
				return errors.New("a username is required, as argument or GITHUB_USER")
			}
			return run(cmd.Context(), cfg, cmd.OutOrStdout())
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	return cmd
}

func run(ctx context.Context, cfg *config.Config, out io.Writer) error {
	client, err := collector.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create GitHub client: %w", err)
	}
	reporter := report.NewReporter(client, report.OptionsFromConfig(cfg))

	var pub *publisher.Publisher
	if cfg.NATSUrl != "" {
		pub, err = publisher.New(cfg)
		if err != nil {
			return err
		}
		defer pub.Close()
	}

	job := func(ctx context.Context) error {
		var buf bytes.Buffer
		if err := reporter.Run(ctx, cfg.GitHubUser, &buf); err != nil {
			return err
		}
		if _, err := out.Write(buf.Bytes()); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		if pub != nil {
			return pub.Publish(cfg.GitHubUser, buf.Bytes())
		}
		return nil
	}

	if cfg.CronSchedule == "" {
		return job(ctx)
	}
	return schedule(ctx, cfg, job)
}

// schedule runs job on the configured cron schedule until interrupted
func schedule(ctx context.Context, cfg *config.Config, job func(context.Context) error) error {
	// Create cron scheduler
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))

	// Add job
	_, err := c.AddFunc(cfg.CronSchedule, func() {
		if err := job(ctx); err != nil {
			log.Error("Report failed", "err", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to add cron job: %w", err)
	}

	// Start cron scheduler
	c.Start()
	log.Info("Cron scheduler started", "schedule", cfg.CronSchedule)

	// Run immediately on startup if configured
	if cfg.RunOnStartup {
		log.Info("Running initial report on startup...")
		if err := job(ctx); err != nil {
			log.Error("Initial report failed", "err", err)
		}
	}

	// Wait for interrupt signal
	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-sigCtx.Done()

	log.Info("Shutting down...")
	<-c.Stop().Done()
	return nil
}
