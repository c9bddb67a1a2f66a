package api

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/sarchlab/ising/regmap"
)

// Mismatch is a weight that did not read back as written.
type Mismatch struct {
	Pair string
	Addr regmap.Addr
	Want uint32
	Got  uint32
}

// PhaseResult is one register read after the machine settled.
type PhaseResult struct {
	Node        string
	Addr        regmap.Addr
	Value       uint32
	Expected    uint32
	HasExpected bool
}

// Matches returns false only if an expected value is known and differs.
func (r PhaseResult) Matches() bool {
	return !r.HasExpected || r.Value == r.Expected
}

// ExpectedString formats the expected value, or "-" if there is none.
func (r PhaseResult) ExpectedString() string {
	if !r.HasExpected {
		return "-"
	}

	return fmt.Sprintf("0x%x", r.Expected)
}

// RunReport collects what a driver observed during a run.
type RunReport struct {
	Name    string
	Problem string
	Seed    uint32

	// Reached is the last step that completed.
	Reached Step

	// Failed is the step that failed, or StepIdle if none did.
	Failed Step
	Err    error

	Mismatches []Mismatch
	Phases     []PhaseResult
	Status     *PhaseResult
}

// Succeeded returns true if every step completed. Weight mismatches do not
// count as failures unless the driver is strict.
func (r *RunReport) Succeeded() bool {
	return r.Err == nil && r.Reached == StepDone
}

// Locked returns true if the lock word was read and is non-zero.
func (r *RunReport) Locked() bool {
	return r.Status != nil && r.Status.Value != 0
}

// WriteTable renders the report as tables.
func (r *RunReport) WriteTable(w io.Writer) {
	results := table.NewWriter()
	results.SetTitle("%s: %s (seed 0x%08x)", r.Name, r.Problem, r.Seed)
	results.AppendHeader(table.Row{"Node", "Register", "Value", "Expected", "Match"})

	rows := r.Phases
	if r.Status != nil {
		rows = append(rows[:len(rows):len(rows)], *r.Status)
	}

	for _, p := range rows {
		match := "ok"
		if !p.Matches() {
			match = "differs"
		}

		results.AppendRow(table.Row{
			p.Node,
			p.Addr.String(),
			fmt.Sprintf("0x%x", p.Value),
			p.ExpectedString(),
			match,
		})
	}

	results.AppendFooter(table.Row{"", "", "", "Reached", r.Reached.String()})
	fmt.Fprintln(w, results.Render())

	if len(r.Mismatches) == 0 {
		return
	}

	mismatches := table.NewWriter()
	mismatches.SetTitle("Weight mismatches")
	mismatches.AppendHeader(table.Row{"Pair", "Register", "Written", "Read"})

	for _, m := range r.Mismatches {
		mismatches.AppendRow(table.Row{
			m.Pair,
			m.Addr.String(),
			fmt.Sprintf("0x%x", m.Want),
			fmt.Sprintf("0x%x", m.Got),
		})
	}

	fmt.Fprintln(w, mismatches.Render())
}
