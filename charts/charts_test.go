package charts

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"daosweep/dataset"
	"daosweep/sim"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func result(pdr, delayMs float64, ctrlRx int) sim.RunResult {
	return sim.RunResult{
		PDR:            pdr,
		Tx:             1200,
		Rx:             int(pdr * 1200),
		DelayMs:        delayMs,
		ControlTx:      ctrlRx + 20,
		ControlRx:      ctrlRx,
		ControlDropped: 10,
	}
}

func sampleTables() (baseline, rates, thresholds *dataset.Table) {
	baseline = dataset.NewTable("baseline")
	baseline.Append(dataset.Record{Scenario: dataset.ScenarioRPL, Result: result(0.99, 40, 480)})
	baseline.Append(dataset.Record{Scenario: dataset.ScenarioInsecRPL, Result: result(0.76, 95, 1900)})
	baseline.Append(dataset.Record{Scenario: dataset.ScenarioSecRPL, Result: result(0.94, 55, 720)})

	rates = dataset.NewTable("attack_rate")
	for _, pps := range []int{150, 300, 500} {
		rates.Append(dataset.Record{
			Scenario:  dataset.ScenarioInsecRPL,
			Result:    result(0.9-float64(pps)/5000, 60, 1000+pps),
			AttackPPS: dataset.IntPtr(pps),
		})
		rates.Append(dataset.Record{
			Scenario:  dataset.ScenarioSecRPL,
			Result:    result(0.95-float64(pps)/20000, 50, 600+pps/2),
			AttackPPS: dataset.IntPtr(pps),
		})
		rates.Append(dataset.Record{
			Scenario:  dataset.ScenarioRPL,
			Result:    result(0.99, 40, 480),
			AttackPPS: dataset.IntPtr(pps),
		})
	}

	thresholds = dataset.NewTable("thresholds")
	for _, limit := range []int{5, 25, 50} {
		thresholds.Append(dataset.Record{
			Scenario:  dataset.ScenarioSecRPL,
			Result:    result(0.9+float64(limit)/1000, 50, 700),
			Threshold: dataset.IntPtr(limit),
		})
	}

	return baseline, rates, thresholds
}

func TestRenderAllFigures(t *testing.T) {
	dir := t.TempDir()
	baseline, rates, thresholds := sampleTables()

	require.NoError(t, Render(dir, baseline, rates, thresholds, quietLogger()))

	for _, name := range []string{
		"dao_overhead.png",
		"pdr_vs_attack.png",
		"delay_vs_attack.png",
		"pdr_vs_threshold.png",
		"comparison_overview.png",
	} {
		info, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err, "expected figure %s", name)
		assert.Greater(t, info.Size(), int64(0))
	}
}

func TestRenderEmptyTablesSkipsFigures(t *testing.T) {
	dir := t.TempDir()

	err := Render(dir,
		dataset.NewTable("baseline"),
		dataset.NewTable("attack_rate"),
		dataset.NewTable("thresholds"),
		quietLogger())
	require.NoError(t, err, "an all-failed campaign must not break rendering")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "no figure should be written without data")
}

func TestRenderPartialRateTable(t *testing.T) {
	dir := t.TempDir()

	// Only SecRPL survived the sweep; the figure should still render.
	rates := dataset.NewTable("attack_rate")
	for _, pps := range []int{300, 150} { // generation order is not sorted
		rates.Append(dataset.Record{
			Scenario:  dataset.ScenarioSecRPL,
			Result:    result(0.93, 50, 700),
			AttackPPS: dataset.IntPtr(pps),
		})
	}

	require.NoError(t, Render(dir, dataset.NewTable("baseline"), rates, dataset.NewTable("thresholds"), quietLogger()))

	_, err := os.Stat(filepath.Join(dir, "pdr_vs_attack.png"))
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "pdr_vs_threshold.png"))
	assert.True(t, os.IsNotExist(err), "threshold figure must be skipped without data")
}

func TestThresholdFigureWithoutBaseline(t *testing.T) {
	dir := t.TempDir()
	_, _, thresholds := sampleTables()

	// Reference lines are optional; the figure renders without them.
	require.NoError(t, Render(dir, nil, dataset.NewTable("attack_rate"), thresholds, quietLogger()))

	_, err := os.Stat(filepath.Join(dir, "pdr_vs_threshold.png"))
	require.NoError(t, err)
}
