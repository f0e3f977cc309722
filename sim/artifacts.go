package sim

import (
	"encoding/csv"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ArtifactPaths names the three result files one simulator run overwrites.
type ArtifactPaths struct {
	PDR      string
	Delay    string
	Overhead string
}

// ParseArtifacts projects the first data row of each artifact into a
// RunResult. Later rows are ignored: one run produces one aggregate row
// per artifact. The raw average delay is in seconds and is converted to
// milliseconds here.
func ParseArtifacts(paths ArtifactPaths) (*RunResult, error) {
	pdrRow, err := firstRow(paths.PDR)
	if err != nil {
		return nil, err
	}
	delayRow, err := firstRow(paths.Delay)
	if err != nil {
		return nil, err
	}
	overheadRow, err := firstRow(paths.Overhead)
	if err != nil {
		return nil, err
	}

	result := &RunResult{}

	if result.PDR, err = pdrRow.float("pdr"); err != nil {
		return nil, err
	}
	if result.Tx, err = pdrRow.count("tx"); err != nil {
		return nil, err
	}
	if result.Rx, err = pdrRow.count("rx"); err != nil {
		return nil, err
	}

	delaySec, err := delayRow.float("avg_delay_s")
	if err != nil {
		return nil, err
	}
	result.DelayMs = delaySec * 1000

	if result.ControlTx, err = overheadRow.count("control_tx"); err != nil {
		return nil, err
	}
	if result.ControlRx, err = overheadRow.count("control_rx"); err != nil {
		return nil, err
	}
	if result.ControlDropped, err = overheadRow.count("control_dropped"); err != nil {
		return nil, err
	}

	return result, nil
}

// row is the first data row of one artifact, keyed by header column.
type row struct {
	file   string
	fields map[string]string
}

func firstRow(path string) (*row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "artifact %s not readable", path)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, errors.Wrapf(err, "artifact %s has no header", path)
	}
	record, err := r.Read()
	if err != nil {
		return nil, errors.Wrapf(err, "artifact %s has no data row", path)
	}

	fields := make(map[string]string, len(header))
	for i, name := range header {
		if i < len(record) {
			fields[strings.TrimSpace(name)] = strings.TrimSpace(record[i])
		}
	}

	return &row{file: path, fields: fields}, nil
}

func (r *row) float(column string) (float64, error) {
	raw, ok := r.fields[column]
	if !ok {
		return 0, errors.Errorf("artifact %s: missing column %q", r.file, column)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errors.Errorf("artifact %s: column %q is not numeric: %q", r.file, column, raw)
	}
	return v, nil
}

func (r *row) count(column string) (int, error) {
	v, err := r.float(column)
	if err != nil {
		return 0, err
	}
	return int(v), nil
}
