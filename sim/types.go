package sim

// RunConfig fully determines one simulator invocation. AttackerPPS and
// Threshold only matter when Attack is true; the command builder ignores
// them otherwise.
type RunConfig struct {
	Attack      bool    `json:"attack"`
	AttackerPPS int     `json:"attacker_pps,omitempty"`
	AttackerPkt int     `json:"attacker_pkt,omitempty"`
	Threshold   int     `json:"threshold,omitempty"`
	WindowSec   float64 `json:"window_sec,omitempty"`
	NNodes      int     `json:"n_nodes"`
	Area        float64 `json:"area"`
	RateKbps    float64 `json:"rate_kbps"`
	SimTime     float64 `json:"sim_time"`
}

// RunResult is the flat record projected from one run's output artifacts.
// It is built exactly once per successful run and never mutated after.
type RunResult struct {
	PDR            float64 `json:"pdr"`
	Tx             int     `json:"tx"`
	Rx             int     `json:"rx"`
	DelayMs        float64 `json:"delay_ms"`
	ControlTx      int     `json:"ctrl_tx"`
	ControlRx      int     `json:"ctrl_rx"`
	ControlDropped int     `json:"ctrl_dropped"`
}
