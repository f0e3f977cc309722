package output

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"daosweep/campaign"
	"daosweep/dataset"
)

// Formatter prints the campaign summary
type Formatter struct {
	jsonOutput bool
}

// NewFormatter creates a new summary formatter
func NewFormatter(jsonOutput bool) *Formatter {
	return &Formatter{
		jsonOutput: jsonOutput,
	}
}

// OutputSummary prints the campaign results in the requested format.
// Missing scenarios simply drop the corresponding metric; a partially
// failed campaign still summarizes whatever completed.
func (f *Formatter) OutputSummary(results *campaign.Results, totalDuration time.Duration) error {
	if f.jsonOutput {
		return f.outputJSON(results, totalDuration)
	}
	return f.outputText(results, totalDuration)
}

func (f *Formatter) outputJSON(results *campaign.Results, totalDuration time.Duration) error {
	output := map[string]interface{}{
		"total_duration": totalDuration.String(),
		"baseline":       results.Baseline,
		"attack_rate":    results.AttackRate,
		"thresholds":     results.Threshold,
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

func (f *Formatter) outputText(results *campaign.Results, totalDuration time.Duration) error {
	fmt.Printf("\n=== Experiment Summary ===\n")
	fmt.Printf("Total Duration: %v\n", totalDuration)
	fmt.Printf("Baseline Runs: %d\n", results.Baseline.Len())
	fmt.Printf("Attack Rate Records: %d\n", results.AttackRate.Len())
	fmt.Printf("Threshold Records: %d\n", results.Threshold.Len())
	fmt.Println()

	if results.Baseline.Empty() {
		fmt.Println("No baseline results available.")
		return nil
	}

	fmt.Println("Baseline Overview:")
	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "  scenario\tpdr\tdelay_ms\tctrl_rx\tctrl_dropped")
	for _, r := range results.Baseline.Records {
		fmt.Fprintf(w, "  %s\t%.3f\t%.1f\t%d\t%d\n",
			r.Scenario, r.Result.PDR, r.Result.DelayMs, r.Result.ControlRx, r.Result.ControlDropped)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	insecure, hasInsecure := results.Baseline.First(dataset.ScenarioInsecRPL)
	secure, hasSecure := results.Baseline.First(dataset.ScenarioSecRPL)
	if hasInsecure && hasSecure && insecure.Result.PDR > 0 {
		improvement := (secure.Result.PDR - insecure.Result.PDR) / insecure.Result.PDR * 100
		fmt.Println()
		fmt.Println("Improvements:")
		fmt.Printf("  PDR gain via mitigation: %.2f%%\n", improvement)
		fmt.Printf("  Attack degradation: %.2f%%\n", (1-insecure.Result.PDR)*100)
		fmt.Printf("  DAO packets filtered: %d\n", secure.Result.ControlDropped)
	}

	fmt.Println()
	return nil
}
