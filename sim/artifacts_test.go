package sim

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeArtifact(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func validArtifacts(t *testing.T, dir string) ArtifactPaths {
	t.Helper()
	return ArtifactPaths{
		PDR:      writeArtifact(t, dir, "run1_pdr.csv", "pdr,tx,rx\n0.953,1200,1144\n"),
		Delay:    writeArtifact(t, dir, "run1_delay.csv", "avg_delay_s\n0.045\n"),
		Overhead: writeArtifact(t, dir, "run1_overhead.csv", "control_tx,control_rx,control_dropped\n840,791,37\n"),
	}
}

func TestParseArtifacts(t *testing.T) {
	paths := validArtifacts(t, t.TempDir())

	result, err := ParseArtifacts(paths)
	require.NoError(t, err)

	assert.Equal(t, 0.953, result.PDR)
	assert.Equal(t, 1200, result.Tx)
	assert.Equal(t, 1144, result.Rx)
	assert.Equal(t, 45.0, result.DelayMs, "seconds must convert to milliseconds exactly")
	assert.Equal(t, 840, result.ControlTx)
	assert.Equal(t, 791, result.ControlRx)
	assert.Equal(t, 37, result.ControlDropped)
}

func TestParseArtifactsIgnoresExtraRows(t *testing.T) {
	dir := t.TempDir()
	paths := ArtifactPaths{
		PDR:      writeArtifact(t, dir, "run1_pdr.csv", "pdr,tx,rx\n0.9,100,90\n0.1,999,99\n"),
		Delay:    writeArtifact(t, dir, "run1_delay.csv", "avg_delay_s\n0.030\n9.9\n"),
		Overhead: writeArtifact(t, dir, "run1_overhead.csv", "control_tx,control_rx,control_dropped\n10,9,1\n77,77,77\n"),
	}

	result, err := ParseArtifacts(paths)
	require.NoError(t, err)

	// One run, one aggregate row: only the first data row counts.
	assert.Equal(t, 0.9, result.PDR)
	assert.Equal(t, 30.0, result.DelayMs)
	assert.Equal(t, 9, result.ControlRx)
}

func TestParseArtifactsFailures(t *testing.T) {
	tests := []struct {
		name   string
		mangle func(t *testing.T, dir string, paths *ArtifactPaths)
	}{
		{
			name: "missing artifact",
			mangle: func(t *testing.T, dir string, paths *ArtifactPaths) {
				require.NoError(t, os.Remove(paths.Delay))
			},
		},
		{
			name: "missing column",
			mangle: func(t *testing.T, dir string, paths *ArtifactPaths) {
				paths.PDR = writeArtifact(t, dir, "run1_pdr.csv", "tx,rx\n1200,1144\n")
			},
		},
		{
			name: "non-numeric value",
			mangle: func(t *testing.T, dir string, paths *ArtifactPaths) {
				paths.Delay = writeArtifact(t, dir, "run1_delay.csv", "avg_delay_s\nnot-a-number\n")
			},
		},
		{
			name: "header only",
			mangle: func(t *testing.T, dir string, paths *ArtifactPaths) {
				paths.Overhead = writeArtifact(t, dir, "run1_overhead.csv", "control_tx,control_rx,control_dropped\n")
			},
		},
		{
			name: "empty file",
			mangle: func(t *testing.T, dir string, paths *ArtifactPaths) {
				paths.PDR = writeArtifact(t, dir, "run1_pdr.csv", "")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			paths := validArtifacts(t, dir)
			tt.mangle(t, dir, &paths)

			_, err := ParseArtifacts(paths)
			require.Error(t, err)
		})
	}
}
