package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"daosweep/sim"
	"daosweep/ssh"
)

// Config represents the overall campaign configuration
type Config struct {
	Name        string        `yaml:"name"`
	Description string        `yaml:"description,omitempty"`

	// Simulator locations
	SimRoot    string `yaml:"sim_root"`
	ScratchDir string `yaml:"scratch_dir,omitempty"` // default: <sim_root>/scratch
	Target     string `yaml:"target"`                // simulation program in scratch
	OutputDir  string `yaml:"output_dir,omitempty"`  // default: <sim_root>/analysis_graphs

	// Per-run deadline; a hung simulator counts as a failed run
	Timeout time.Duration `yaml:"timeout"`

	Artifacts ArtifactConfig `yaml:"artifacts,omitempty"`
	Defaults  RunDefaults    `yaml:"defaults,omitempty"`
	Sweeps    SweepConfig    `yaml:"sweeps,omitempty"`

	// Optional: run the simulator on a remote host instead of locally
	Remote *ssh.Config `yaml:"remote,omitempty"`
}

// ArtifactConfig names the three result files the simulator overwrites
// each run, relative to the simulator root.
type ArtifactConfig struct {
	PDR      string `yaml:"pdr"`
	Delay    string `yaml:"delay"`
	Overhead string `yaml:"overhead"`
}

// RunDefaults holds the simulation parameters shared by every run.
type RunDefaults struct {
	AttackerPPS        int     `yaml:"attacker_pps"`
	AttackerPkt        int     `yaml:"attacker_pkt"`
	NominalThreshold   int     `yaml:"nominal_threshold"`
	UnlimitedThreshold int     `yaml:"unlimited_threshold"`
	WindowSec          float64 `yaml:"window_sec"`
	NNodes             int     `yaml:"n_nodes"`
	Area               float64 `yaml:"area"`
	RateKbps           float64 `yaml:"rate_kbps"`
	SimTime            float64 `yaml:"sim_time"`
}

// SweepConfig defines the swept sequences. Order is preserved as declared;
// the generators never sort.
type SweepConfig struct {
	AttackRates []int `yaml:"attack_rates"`
	Thresholds  []int `yaml:"thresholds"`

	// ReplicateReference controls whether the single no-attack run is
	// duplicated under the RPL label across every attack rate, giving the
	// rate charts a flat reference line without re-simulating.
	ReplicateReference *bool `yaml:"replicate_reference,omitempty"`
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", filename, err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", filename, err)
	}

	config.applyDefaults()

	validator := NewValidator()
	if err := validator.ValidateConfig(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Name == "" {
		c.Name = "rpl-dao-flooding-study"
	}
	if c.Target == "" {
		c.Target = "dioneighbour"
	}
	if c.ScratchDir == "" {
		c.ScratchDir = filepath.Join(c.SimRoot, "scratch")
	}
	if c.OutputDir == "" {
		c.OutputDir = filepath.Join(c.SimRoot, "analysis_graphs")
	}
	if c.Timeout == 0 {
		c.Timeout = 10 * time.Minute
	}

	if c.Artifacts.PDR == "" {
		c.Artifacts.PDR = "results/run1_pdr.csv"
	}
	if c.Artifacts.Delay == "" {
		c.Artifacts.Delay = "results/run1_delay.csv"
	}
	if c.Artifacts.Overhead == "" {
		c.Artifacts.Overhead = "results/run1_overhead.csv"
	}

	d := &c.Defaults
	if d.AttackerPPS == 0 {
		d.AttackerPPS = 700
	}
	if d.AttackerPkt == 0 {
		d.AttackerPkt = 120
	}
	if d.NominalThreshold == 0 {
		d.NominalThreshold = 25
	}
	if d.UnlimitedThreshold == 0 {
		d.UnlimitedThreshold = 999999999
	}
	if d.WindowSec == 0 {
		d.WindowSec = 1.2
	}
	if d.NNodes == 0 {
		d.NNodes = 25
	}
	if d.Area == 0 {
		d.Area = 60
	}
	if d.RateKbps == 0 {
		d.RateKbps = 16
	}
	if d.SimTime == 0 {
		d.SimTime = 120
	}

	if c.Sweeps.AttackRates == nil {
		c.Sweeps.AttackRates = []int{150, 300, 500, 700, 900, 1100}
	}
	if c.Sweeps.Thresholds == nil {
		c.Sweeps.Thresholds = []int{5, 15, 25, 35, 50, 70}
	}
	if c.Sweeps.ReplicateReference == nil {
		replicate := true
		c.Sweeps.ReplicateReference = &replicate
	}
}

// SourcePath returns the simulation source file the preflight check requires
func (c *Config) SourcePath() string {
	return filepath.Join(c.ScratchDir, c.Target+".cc")
}

// ArtifactPaths resolves the artifact locations against the simulator root
func (c *Config) ArtifactPaths() sim.ArtifactPaths {
	return sim.ArtifactPaths{
		PDR:      filepath.Join(c.SimRoot, c.Artifacts.PDR),
		Delay:    filepath.Join(c.SimRoot, c.Artifacts.Delay),
		Overhead: filepath.Join(c.SimRoot, c.Artifacts.Overhead),
	}
}

// BaseRun builds a run configuration from the campaign defaults. Attack
// parameters are only populated on the attack branch.
func (c *Config) BaseRun(attack bool, attackerPPS, threshold int) sim.RunConfig {
	run := sim.RunConfig{
		NNodes:   c.Defaults.NNodes,
		Area:     c.Defaults.Area,
		RateKbps: c.Defaults.RateKbps,
		SimTime:  c.Defaults.SimTime,
	}
	if attack {
		run.Attack = true
		run.AttackerPPS = attackerPPS
		run.AttackerPkt = c.Defaults.AttackerPkt
		run.Threshold = threshold
		run.WindowSec = c.Defaults.WindowSec
	}
	return run
}

// ReplicateReference reports the resolved replication decision
func (c *Config) ReplicateReference() bool {
	return c.Sweeps.ReplicateReference == nil || *c.Sweeps.ReplicateReference
}
