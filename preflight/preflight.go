// Package preflight fast-fails the campaign before any simulation is
// attempted: a missing simulator tree is a campaign-fatal environment
// error, reported once, and no run is started.
package preflight

import (
	"os"

	"github.com/pkg/errors"

	"daosweep/config"
)

// Check verifies the simulator tree and prepares the output directory.
// When a remote host is configured the local tree checks are skipped; the
// remote shell will surface a broken tree as an ordinary run failure.
func Check(cfg *config.Config) error {
	if cfg.Remote == nil {
		if err := requireDir(cfg.SimRoot, "simulator root"); err != nil {
			return err
		}
		if err := requireDir(cfg.ScratchDir, "scratch directory"); err != nil {
			return err
		}
		if err := requireFile(cfg.SourcePath(), "simulation source"); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return errors.Wrapf(err, "cannot create output directory %s", cfg.OutputDir)
	}

	return nil
}

func requireDir(path, what string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Errorf("%s not found at %s", what, path)
		}
		return errors.Wrapf(err, "cannot access %s at %s", what, path)
	}
	if !info.IsDir() {
		return errors.Errorf("%s at %s is not a directory", what, path)
	}
	return nil
}

func requireFile(path, what string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Errorf("%s not found at %s", what, path)
		}
		return errors.Wrapf(err, "cannot access %s at %s", what, path)
	}
	if !info.Mode().IsRegular() {
		return errors.Errorf("%s at %s is not a regular file", what, path)
	}
	return nil
}
