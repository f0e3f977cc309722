package cli

import (
	"flag"
	"time"
)

const (
	defaultConfigFile = "config.yaml"
	defaultTimeout    = 10 * time.Minute
)

// Flags represents command line flags
type Flags struct {
	ConfigFile *string
	Timeout    *time.Duration
	Verbose    *bool
	JSONOutput *bool
	SkipCharts *bool
	Version    *bool
}

// NewFlags creates and parses command line flags
func NewFlags() *Flags {
	flags := &Flags{
		ConfigFile: flag.String("config", defaultConfigFile, "Path to campaign configuration file"),
		Timeout:    flag.Duration("timeout", defaultTimeout, "Per-run simulator timeout"),
		Verbose:    flag.Bool("verbose", false, "Enable verbose logging"),
		JSONOutput: flag.Bool("json", false, "Output the summary in JSON format"),
		SkipCharts: flag.Bool("skip-charts", false, "Skip figure rendering"),
		Version:    flag.Bool("version", false, "Show version information"),
	}

	flag.Parse()
	return flags
}
