package dataset

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/pkg/errors"
)

// WriteCSV persists the table. The sweep-position columns are emitted only
// when at least one record carries them, so the baseline file stays at the
// seven metric columns plus the scenario label.
func (t *Table) WriteCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "cannot create %s", path)
	}
	defer f.Close()

	hasPPS, hasThreshold := false, false
	for _, r := range t.Records {
		if r.AttackPPS != nil {
			hasPPS = true
		}
		if r.Threshold != nil {
			hasThreshold = true
		}
	}

	header := []string{"pdr", "tx", "rx", "delay_ms", "ctrl_tx", "ctrl_rx", "ctrl_dropped", "scenario"}
	if hasPPS {
		header = append(header, "attack_pps")
	}
	if hasThreshold {
		header = append(header, "threshold")
	}

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return errors.Wrapf(err, "cannot write %s", path)
	}

	for _, r := range t.Records {
		row := []string{
			formatFloat(r.Result.PDR),
			strconv.Itoa(r.Result.Tx),
			strconv.Itoa(r.Result.Rx),
			formatFloat(r.Result.DelayMs),
			strconv.Itoa(r.Result.ControlTx),
			strconv.Itoa(r.Result.ControlRx),
			strconv.Itoa(r.Result.ControlDropped),
			r.Scenario,
		}
		if hasPPS {
			row = append(row, formatOptional(r.AttackPPS))
		}
		if hasThreshold {
			row = append(row, formatOptional(r.Threshold))
		}
		if err := w.Write(row); err != nil {
			return errors.Wrapf(err, "cannot write %s", path)
		}
	}

	w.Flush()
	return errors.Wrapf(w.Error(), "cannot flush %s", path)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func formatOptional(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
