package sim

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"daosweep/shell"
)

// Executor turns run configurations into simulator invocations and parses
// the resulting artifacts. The simulator's only output channel is a fixed
// set of files it overwrites each run, so Execute holds a mutex for the
// full invoke-then-read cycle; there is never more than one run in flight.
type Executor struct {
	runner  shell.Runner
	target  string
	paths   ArtifactPaths
	timeout time.Duration
	logger  *logrus.Logger

	mu sync.Mutex
}

// NewExecutor creates an executor for the named simulation target.
// A timeout of zero disables the per-run deadline.
func NewExecutor(runner shell.Runner, target string, paths ArtifactPaths, timeout time.Duration, logger *logrus.Logger) *Executor {
	return &Executor{
		runner:  runner,
		target:  target,
		paths:   paths,
		timeout: timeout,
		logger:  logger,
	}
}

// Execute runs one simulation and returns its parsed result. Every failure
// mode (process could not run, non-zero exit, timeout, missing or malformed
// artifact) comes back as an error; callers treat that as "skip this
// configuration" and move on. Nothing is retried.
func (e *Executor) Execute(ctx context.Context, cfg RunConfig) (*RunResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	command := BuildCommand(e.target, cfg)
	e.logger.WithField("command", command).Debug("invoking simulator")

	runCtx := ctx
	if e.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	start := time.Now()
	result, err := e.runner.ExecuteCommand(runCtx, command)
	if err != nil {
		return nil, errors.Wrap(err, "simulation did not complete")
	}

	if result.ExitCode != 0 {
		// Simulator output is only ever surfaced here, for the failure log.
		e.logger.WithFields(logrus.Fields{
			"exit_code": result.ExitCode,
			"output":    tail(result.Output, 400),
		}).Debug("simulator output")
		return nil, errors.Errorf("simulation exited with code %d", result.ExitCode)
	}

	run, err := ParseArtifacts(e.paths)
	if err != nil {
		return nil, errors.Wrap(err, "simulation succeeded but artifacts were unusable")
	}

	e.logger.WithFields(logrus.Fields{
		"pdr":      run.PDR,
		"delay_ms": run.DelayMs,
		"elapsed":  time.Since(start).Round(time.Millisecond),
	}).Debug("run complete")

	return run, nil
}

func tail(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return "..." + s[len(s)-n:]
}
