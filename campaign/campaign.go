// Package campaign holds the three sweep generators. Each generator walks
// its configuration sequence in declaration order, invokes the executor
// once per configuration, and keeps only the successful runs: a failed run
// is logged and skipped, and never aborts the rest of the sweep.
package campaign

import (
	"context"

	"github.com/sirupsen/logrus"

	"daosweep/config"
	"daosweep/dataset"
	"daosweep/sim"
)

// Executor is the single-run contract the sweeps drive. *sim.Executor
// satisfies it; tests substitute deterministic stubs.
type Executor interface {
	Execute(ctx context.Context, cfg sim.RunConfig) (*sim.RunResult, error)
}

// Results are the campaign's three datasets, built once and then immutable.
type Results struct {
	Baseline   *dataset.Table
	AttackRate *dataset.Table
	Threshold  *dataset.Table
}

// Campaign drives the full experiment sweep against one executor.
type Campaign struct {
	executor Executor
	cfg      *config.Config
	logger   *logrus.Logger
}

// New creates a campaign
func New(executor Executor, cfg *config.Config, logger *logrus.Logger) *Campaign {
	return &Campaign{
		executor: executor,
		cfg:      cfg,
		logger:   logger,
	}
}

// Run executes the three sweeps sequentially and returns their tables.
// Cancelling ctx stops the campaign between runs; completed records are
// kept in whatever tables were already built.
func (c *Campaign) Run(ctx context.Context) *Results {
	return &Results{
		Baseline:   c.GatherBaselines(ctx),
		AttackRate: c.GatherAttackRates(ctx),
		Threshold:  c.GatherThresholds(ctx),
	}
}

// GatherBaselines runs the three fixed scenarios, in order: RPL (no
// attack), InsecRPL (attack, threshold effectively unlimited), SecRPL
// (attack, nominal threshold).
func (c *Campaign) GatherBaselines(ctx context.Context) *dataset.Table {
	c.logger.Info("running baseline simulations")
	table := dataset.NewTable("baseline")

	cases := []struct {
		label string
		run   sim.RunConfig
	}{
		{dataset.ScenarioRPL, c.cfg.BaseRun(false, 0, 0)},
		{dataset.ScenarioInsecRPL, c.cfg.BaseRun(true, c.cfg.Defaults.AttackerPPS, c.cfg.Defaults.UnlimitedThreshold)},
		{dataset.ScenarioSecRPL, c.cfg.BaseRun(true, c.cfg.Defaults.AttackerPPS, c.cfg.Defaults.NominalThreshold)},
	}

	for _, tc := range cases {
		if ctx.Err() != nil {
			break
		}
		c.logger.WithField("scenario", tc.label).Info("running baseline scenario")
		result, err := c.executor.Execute(ctx, tc.run)
		if err != nil {
			c.logger.WithError(err).WithField("scenario", tc.label).Warn("baseline run failed, skipping")
			continue
		}
		c.logger.WithField("pdr", result.PDR).Info("baseline scenario complete")
		table.Append(dataset.Record{Scenario: tc.label, Result: *result})
	}

	return table
}

// GatherAttackRates sweeps the attacker packet rate. For each rate it runs
// InsecRPL then SecRPL, both annotated with the rate. When reference
// replication is enabled, one extra no-attack run is executed once and its
// single result is copied under the RPL label for every rate, giving the
// rate charts a flat reference line without re-simulating.
func (c *Campaign) GatherAttackRates(ctx context.Context) *dataset.Table {
	c.logger.Info("running attack rate experiments")
	table := dataset.NewTable("attack_rate")

	for _, rate := range c.cfg.Sweeps.AttackRates {
		if ctx.Err() != nil {
			break
		}
		c.logger.WithField("attack_pps", rate).Info("running attack rate scenario pair")

		insecure := c.cfg.BaseRun(true, rate, c.cfg.Defaults.UnlimitedThreshold)
		if result, err := c.executor.Execute(ctx, insecure); err != nil {
			c.logger.WithError(err).WithFields(logrus.Fields{
				"scenario":   dataset.ScenarioInsecRPL,
				"attack_pps": rate,
			}).Warn("run failed, skipping")
		} else {
			table.Append(dataset.Record{
				Scenario:  dataset.ScenarioInsecRPL,
				Result:    *result,
				AttackPPS: dataset.IntPtr(rate),
			})
		}

		secure := c.cfg.BaseRun(true, rate, c.cfg.Defaults.NominalThreshold)
		if result, err := c.executor.Execute(ctx, secure); err != nil {
			c.logger.WithError(err).WithFields(logrus.Fields{
				"scenario":   dataset.ScenarioSecRPL,
				"attack_pps": rate,
			}).Warn("run failed, skipping")
		} else {
			table.Append(dataset.Record{
				Scenario:  dataset.ScenarioSecRPL,
				Result:    *result,
				AttackPPS: dataset.IntPtr(rate),
			})
		}
	}

	if c.cfg.ReplicateReference() && ctx.Err() == nil {
		c.logger.Info("running no-attack reference for replication")
		reference, err := c.executor.Execute(ctx, c.cfg.BaseRun(false, 0, 0))
		if err != nil {
			c.logger.WithError(err).Warn("reference run failed, rate charts will have no RPL line")
		} else {
			for _, rate := range c.cfg.Sweeps.AttackRates {
				table.Append(dataset.Record{
					Scenario:  dataset.ScenarioRPL,
					Result:    *reference,
					AttackPPS: dataset.IntPtr(rate),
				})
			}
		}
	}

	return table
}

// GatherThresholds sweeps the mitigation threshold with the attack pinned
// at its default intensity, one SecRPL run per threshold value.
func (c *Campaign) GatherThresholds(ctx context.Context) *dataset.Table {
	c.logger.Info("running threshold experiments")
	table := dataset.NewTable("thresholds")

	for _, threshold := range c.cfg.Sweeps.Thresholds {
		if ctx.Err() != nil {
			break
		}
		c.logger.WithField("threshold", threshold).Info("running threshold scenario")

		run := c.cfg.BaseRun(true, c.cfg.Defaults.AttackerPPS, threshold)
		result, err := c.executor.Execute(ctx, run)
		if err != nil {
			c.logger.WithError(err).WithField("threshold", threshold).Warn("run failed, skipping")
			continue
		}

		table.Append(dataset.Record{
			Scenario:  dataset.ScenarioSecRPL,
			Result:    *result,
			Threshold: dataset.IntPtr(threshold),
		})
	}

	return table
}
