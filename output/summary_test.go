package output

import (
	"encoding/json"
	"io"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"daosweep/campaign"
	"daosweep/dataset"
	"daosweep/sim"
)

func captureStdout(t *testing.T, fn func() error) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	runErr := fn()

	require.NoError(t, w.Close())
	os.Stdout = old

	data, err := io.ReadAll(r)
	require.NoError(t, err)
	require.NoError(t, runErr)
	return string(data)
}

func sampleResults() *campaign.Results {
	baseline := dataset.NewTable("baseline")
	baseline.Append(dataset.Record{Scenario: dataset.ScenarioRPL, Result: sim.RunResult{PDR: 0.99, DelayMs: 40.2, ControlRx: 480}})
	baseline.Append(dataset.Record{Scenario: dataset.ScenarioInsecRPL, Result: sim.RunResult{PDR: 0.75, DelayMs: 96.8, ControlRx: 1900}})
	baseline.Append(dataset.Record{Scenario: dataset.ScenarioSecRPL, Result: sim.RunResult{PDR: 0.94, DelayMs: 55.1, ControlRx: 720, ControlDropped: 412}})

	return &campaign.Results{
		Baseline:   baseline,
		AttackRate: dataset.NewTable("attack_rate"),
		Threshold:  dataset.NewTable("thresholds"),
	}
}

func TestOutputTextSummary(t *testing.T) {
	results := sampleResults()

	out := captureStdout(t, func() error {
		return NewFormatter(false).OutputSummary(results, 3*time.Minute)
	})

	assert.Contains(t, out, "Experiment Summary")
	assert.Contains(t, out, "RPL")
	assert.Contains(t, out, "InsecRPL")
	assert.Contains(t, out, "SecRPL")

	// (0.94 - 0.75) / 0.75 * 100 = 25.33
	assert.Contains(t, out, "PDR gain via mitigation: 25.33%")
	assert.Contains(t, out, "Attack degradation: 25.00%")
	assert.Contains(t, out, "DAO packets filtered: 412")
}

func TestOutputTextSummaryEmptyBaseline(t *testing.T) {
	results := &campaign.Results{
		Baseline:   dataset.NewTable("baseline"),
		AttackRate: dataset.NewTable("attack_rate"),
		Threshold:  dataset.NewTable("thresholds"),
	}

	out := captureStdout(t, func() error {
		return NewFormatter(false).OutputSummary(results, time.Minute)
	})

	assert.Contains(t, out, "No baseline results available")
	assert.NotContains(t, out, "Improvements")
}

func TestOutputTextSummaryWithoutSecureRun(t *testing.T) {
	results := sampleResults()
	results.Baseline.Records = results.Baseline.Records[:2] // drop SecRPL

	out := captureStdout(t, func() error {
		return NewFormatter(false).OutputSummary(results, time.Minute)
	})

	// Improvements need both attack scenarios; a partial campaign just
	// skips that block.
	assert.NotContains(t, out, "Improvements")
}

func TestOutputJSONSummary(t *testing.T) {
	results := sampleResults()

	out := captureStdout(t, func() error {
		return NewFormatter(true).OutputSummary(results, 90*time.Second)
	})

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))

	assert.Equal(t, "1m30s", decoded["total_duration"])
	baseline, ok := decoded["baseline"].(map[string]interface{})
	require.True(t, ok)
	records, ok := baseline["records"].([]interface{})
	require.True(t, ok)
	assert.Len(t, records, 3)
}
