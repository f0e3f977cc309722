package config

import (
	"fmt"
)

// Validator handles configuration validation
type Validator struct{}

// NewValidator creates a new validator
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateConfig validates the entire configuration. Existence of the
// simulator tree is deliberately not checked here; that is the preflight
// check's job, so a config file can be validated on any machine.
func (v *Validator) ValidateConfig(c *Config) error {
	if c == nil {
		return fmt.Errorf("config cannot be nil")
	}

	if c.SimRoot == "" {
		return fmt.Errorf("sim_root is required")
	}

	if c.Target == "" {
		return fmt.Errorf("target is required")
	}

	if c.Timeout < 0 {
		return fmt.Errorf("timeout cannot be negative")
	}

	if err := v.validateDefaults(&c.Defaults); err != nil {
		return err
	}

	if err := v.validateSweeps(&c.Sweeps); err != nil {
		return err
	}

	if c.Remote != nil {
		if err := v.validateRemote(c); err != nil {
			return err
		}
	}

	return nil
}

func (v *Validator) validateDefaults(d *RunDefaults) error {
	if d.AttackerPPS <= 0 {
		return fmt.Errorf("defaults.attacker_pps must be positive")
	}
	if d.AttackerPkt <= 0 {
		return fmt.Errorf("defaults.attacker_pkt must be positive")
	}
	if d.NominalThreshold <= 0 {
		return fmt.Errorf("defaults.nominal_threshold must be positive")
	}
	if d.UnlimitedThreshold < d.NominalThreshold {
		return fmt.Errorf("defaults.unlimited_threshold must not be below the nominal threshold")
	}
	if d.WindowSec <= 0 {
		return fmt.Errorf("defaults.window_sec must be positive")
	}
	if d.NNodes <= 0 {
		return fmt.Errorf("defaults.n_nodes must be positive")
	}
	if d.Area <= 0 {
		return fmt.Errorf("defaults.area must be positive")
	}
	if d.RateKbps <= 0 {
		return fmt.Errorf("defaults.rate_kbps must be positive")
	}
	if d.SimTime <= 0 {
		return fmt.Errorf("defaults.sim_time must be positive")
	}
	return nil
}

func (v *Validator) validateSweeps(s *SweepConfig) error {
	for i, rate := range s.AttackRates {
		if rate <= 0 {
			return fmt.Errorf("sweeps.attack_rates[%d]: rate must be positive", i)
		}
	}
	for i, threshold := range s.Thresholds {
		if threshold <= 0 {
			return fmt.Errorf("sweeps.thresholds[%d]: threshold must be positive", i)
		}
	}
	return nil
}

func (v *Validator) validateRemote(c *Config) error {
	if c.Remote.Host == "" {
		return fmt.Errorf("remote.host is required")
	}
	if c.Remote.User == "" {
		return fmt.Errorf("remote.user is required")
	}
	if c.Remote.KeyPath == "" && c.Remote.Password == "" {
		return fmt.Errorf("remote: either key_path or password is required")
	}
	return nil
}
