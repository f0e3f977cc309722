package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"daosweep/campaign"
	"daosweep/charts"
	"daosweep/config"
	"daosweep/output"
	"daosweep/preflight"
	"daosweep/shell"
	"daosweep/sim"
	"daosweep/ssh"
)

const appVersion = "1.0.0"

// App represents the main application
type App struct {
	flags  *Flags
	logger *logrus.Logger
}

// NewApp creates a new application instance
func NewApp() *App {
	flags := NewFlags()

	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	if *flags.Verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	return &App{
		flags:  flags,
		logger: logger,
	}
}

// Run executes the full campaign: preflight, the three sweeps, dataset
// persistence, figure rendering, and the summary.
func (a *App) Run() error {
	if *a.flags.Version {
		fmt.Printf("daosweep version %s\n", appVersion)
		return nil
	}

	a.logger.Infof("loading configuration from %s", *a.flags.ConfigFile)
	cfg, err := config.LoadConfig(*a.flags.ConfigFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Override timeout if specified
	if *a.flags.Timeout != defaultTimeout {
		cfg.Timeout = *a.flags.Timeout
	}

	a.logger.Infof("campaign: %s", cfg.Name)
	if cfg.Description != "" {
		a.logger.Info(cfg.Description)
	}
	a.logger.Infof("simulator root: %s", cfg.SimRoot)
	a.logger.Infof("output directory: %s", cfg.OutputDir)

	if err := preflight.Check(cfg); err != nil {
		return fmt.Errorf("preflight check failed: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	a.setupSignalHandling(cancel)

	runner, cleanup, err := a.buildRunner(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	executor := sim.NewExecutor(runner, cfg.Target, cfg.ArtifactPaths(), cfg.Timeout, a.logger)

	a.logger.Info("starting campaign")
	startTime := time.Now()
	results := campaign.New(executor, cfg, a.logger).Run(ctx)
	totalDuration := time.Since(startTime)
	a.logger.Infof("campaign completed in %v", totalDuration)

	if err := a.writeDatasets(cfg, results); err != nil {
		return err
	}

	if *a.flags.SkipCharts {
		a.logger.Info("figure rendering skipped")
	} else {
		a.logger.Info("rendering figures")
		if err := charts.Render(cfg.OutputDir, results.Baseline, results.AttackRate, results.Threshold, a.logger); err != nil {
			return fmt.Errorf("failed to render figures: %w", err)
		}
	}

	formatter := output.NewFormatter(*a.flags.JSONOutput)
	if err := formatter.OutputSummary(results, totalDuration); err != nil {
		return fmt.Errorf("failed to output summary: %w", err)
	}

	return nil
}

// buildRunner picks the local shell or the configured remote host.
func (a *App) buildRunner(ctx context.Context, cfg *config.Config) (shell.Runner, func(), error) {
	if cfg.Remote == nil {
		return shell.NewLocal(cfg.SimRoot), func() {}, nil
	}

	if cfg.Remote.WorkDir == "" {
		cfg.Remote.WorkDir = cfg.SimRoot
	}

	a.logger.Infof("connecting to remote simulator host %s", cfg.Remote.Host)
	client := ssh.NewClient(cfg.Remote)
	if err := client.Connect(ctx); err != nil {
		return nil, nil, fmt.Errorf("failed to connect to remote host: %w", err)
	}

	return client, func() { client.Close() }, nil
}

func (a *App) writeDatasets(cfg *config.Config, results *campaign.Results) error {
	files := []struct {
		name  string
		table interface{ WriteCSV(string) error }
	}{
		{"baseline.csv", results.Baseline},
		{"attack_rate.csv", results.AttackRate},
		{"thresholds.csv", results.Threshold},
	}

	for _, f := range files {
		path := filepath.Join(cfg.OutputDir, f.name)
		if err := f.table.WriteCSV(path); err != nil {
			return fmt.Errorf("failed to write dataset: %w", err)
		}
		a.logger.Infof("wrote %s", path)
	}

	return nil
}

// setupSignalHandling configures graceful shutdown between runs
func (a *App) setupSignalHandling(cancel context.CancelFunc) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		a.logger.Warnf("received signal %v, shutting down", sig)
		cancel()
	}()
}
