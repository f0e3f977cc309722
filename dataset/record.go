package dataset

import (
	"daosweep/sim"
)

// Scenario labels used across all three datasets.
const (
	ScenarioRPL      = "RPL"      // no attack
	ScenarioInsecRPL = "InsecRPL" // attack, mitigation disabled
	ScenarioSecRPL   = "SecRPL"   // attack, mitigation enabled
)

// Record is one simulation outcome labelled with its scenario and, for the
// parameterized sweeps, the position along the swept axis. Baseline records
// carry neither position field.
type Record struct {
	Scenario  string        `json:"scenario"`
	Result    sim.RunResult `json:"result"`
	AttackPPS *int          `json:"attack_pps,omitempty"`
	Threshold *int          `json:"threshold,omitempty"`
}

// Table is an ordered collection of records; insertion order is generation
// order. A table may be empty when every run in its sweep failed. Tables
// are built once per campaign and not mutated afterwards.
type Table struct {
	Name    string   `json:"name"`
	Records []Record `json:"records"`
}

// NewTable creates an empty named table
func NewTable(name string) *Table {
	return &Table{Name: name}
}

// Append adds a record, preserving generation order
func (t *Table) Append(r Record) {
	t.Records = append(t.Records, r)
}

// Len returns the number of records
func (t *Table) Len() int {
	return len(t.Records)
}

// Empty reports whether the table holds no records
func (t *Table) Empty() bool {
	return len(t.Records) == 0
}

// Scenario returns the records carrying the given label, in table order.
func (t *Table) Scenario(label string) []Record {
	var out []Record
	for _, r := range t.Records {
		if r.Scenario == label {
			out = append(out, r)
		}
	}
	return out
}

// First returns the first record with the given label, if any.
func (t *Table) First(label string) (Record, bool) {
	for _, r := range t.Records {
		if r.Scenario == label {
			return r, true
		}
	}
	return Record{}, false
}

// IntPtr is a convenience for the optional sweep-position fields.
func IntPtr(v int) *int {
	return &v
}
