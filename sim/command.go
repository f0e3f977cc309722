package sim

import (
	"fmt"
	"strconv"
	"strings"
)

// BuildCommand renders the ns-3 invocation for one run configuration.
// The two branches select mutually exclusive parameter sets: a no-attack
// invocation never carries attacker or threshold flags.
func BuildCommand(target string, cfg RunConfig) string {
	var b strings.Builder
	fmt.Fprintf(&b, "./ns3 run '%s", target)

	if cfg.Attack {
		fmt.Fprintf(&b, " --attack=true --attackerPps=%d --attackerPkt=%d --threshold=%d --windowSec=%s",
			cfg.AttackerPPS, cfg.AttackerPkt, cfg.Threshold, formatFloat(cfg.WindowSec))
	} else {
		b.WriteString(" --attack=false")
	}

	fmt.Fprintf(&b, " --nNodes=%d --area=%s --rateKbps=%s --simTime=%s'",
		cfg.NNodes, formatFloat(cfg.Area), formatFloat(cfg.RateKbps), formatFloat(cfg.SimTime))

	return b.String()
}

// formatFloat renders whole values without a trailing ".0" so the flag
// text matches what the simulator expects ("--area=60", "--windowSec=1.2").
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
