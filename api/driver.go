// Package api defines the driver API for the Ising machine.
package api

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sarchlab/ising/config"
	"github.com/sarchlab/ising/regmap"
)

// RegisterIO is the register access the driver needs. *fpga.Session
// implements it.
type RegisterIO interface {
	Poke(addr uint64, value uint32) error
	Peek(addr uint64) (uint32, error)
}

// Sleeper blocks for the given duration.
type Sleeper func(d time.Duration)

// ErrWeightMismatch is returned by VerifyWeights in strict mode when a weight
// does not read back as written.
var ErrWeightMismatch = errors.New("weight verification mismatch")

// Driver runs the Ising machine protocol on a register space.
type Driver interface {
	// Configure checks the problem and writes the counter cutoff and counter
	// max registers. An invalid problem fails before any register is written.
	Configure() error

	// LoadWeights writes every coupling weight of the problem.
	LoadWeights() error

	// VerifyWeights reads every weight back. Mismatches are recorded in the
	// report. They only fail the step in strict mode.
	VerifyWeights() error

	// Start writes the run value to the start register.
	Start() error

	// Wait lets the machine settle for the configured time. The machine is
	// not polled.
	Wait()

	// ReadResults reads the phase of every oscillator and the lock word.
	ReadResults() error

	// Stop writes the halt value to the start register.
	Stop() error

	// Report returns what the driver observed so far.
	Report() *RunReport

	// Run executes the steps in order and stops at the first failing one.
	Run() (*RunReport, error)
}

type driverImpl struct {
	name     string
	io       RegisterIO
	problem  config.Problem
	counters config.Counters
	settle   time.Duration
	sleep    Sleeper
	strict   bool
	logger   *slog.Logger

	report *RunReport
	plan   *plan
}

// plan holds the register accesses derived from the problem.
type plan struct {
	writes []config.WeightWrite
	reads  []config.PhaseRead
}

// prepare validates the problem and derives the plan. It touches no register,
// so an invalid problem fails before the machine is configured.
func (d *driverImpl) prepare(step Step) (*plan, error) {
	if d.plan != nil {
		return d.plan, nil
	}

	if err := d.problem.Validate(); err != nil {
		return nil, &StepError{Step: step, Err: err}
	}

	writes, err := d.problem.WeightWrites()
	if err != nil {
		return nil, &StepError{Step: step, Err: err}
	}

	reads, err := d.problem.PhaseReads()
	if err != nil {
		return nil, &StepError{Step: step, Err: err}
	}

	d.plan = &plan{writes: writes, reads: reads}

	return d.plan, nil
}

func (d *driverImpl) Report() *RunReport {
	return d.report
}

// Run runs Configure, LoadWeights, VerifyWeights, Start, Wait, ReadResults
// and Stop. The first failure ends the run and is returned together with the
// partial report.
func (d *driverImpl) Run() (*RunReport, error) {
	steps := []struct {
		step Step
		fn   func() error
	}{
		{StepConfigure, d.Configure},
		{StepLoadWeights, d.LoadWeights},
		{StepVerifyWeights, d.VerifyWeights},
		{StepStart, d.Start},
		{StepWait, func() error { d.Wait(); return nil }},
		{StepReadResults, d.ReadResults},
		{StepStop, d.Stop},
	}

	for _, s := range steps {
		if err := s.fn(); err != nil {
			d.report.Failed = s.step
			d.report.Err = err
			d.logger.Error("Step failed",
				"driver", d.name, "step", s.step.String(), "err", err)

			return d.report, err
		}

		d.report.Reached = s.step
	}

	d.report.Reached = StepDone

	return d.report, nil
}

func (d *driverImpl) Configure() error {
	if _, err := d.prepare(StepConfigure); err != nil {
		return err
	}

	if err := d.write(StepConfigure, regmap.CtrCutoff, d.counters.Cutoff); err != nil {
		return err
	}

	return d.write(StepConfigure, regmap.CtrMax, d.counters.Max)
}

func (d *driverImpl) LoadWeights() error {
	p, err := d.prepare(StepLoadWeights)
	if err != nil {
		return err
	}

	d.logger.Info("Writing weights", "driver", d.name, "count", len(p.writes))

	for _, w := range p.writes {
		if err := d.write(StepLoadWeights, w.Addr, w.Value); err != nil {
			err.(*StepError).Pair = w.Pair
			return err
		}
	}

	return nil
}

func (d *driverImpl) VerifyWeights() error {
	p, err := d.prepare(StepVerifyWeights)
	if err != nil {
		return err
	}

	d.logger.Info("Checking weights", "driver", d.name)

	d.report.Mismatches = d.report.Mismatches[:0]
	for _, w := range p.writes {
		got, err := d.read(StepVerifyWeights, w.Addr)
		if err != nil {
			err.(*StepError).Pair = w.Pair
			return err
		}

		if got != w.Value {
			d.report.Mismatches = append(d.report.Mismatches, Mismatch{
				Pair: w.Pair,
				Addr: w.Addr,
				Want: w.Value,
				Got:  got,
			})

			d.logger.Error("Weight does not read back",
				"pair", w.Pair,
				"addr", w.Addr.String(),
				"want", fmt.Sprintf("0x%x", w.Value),
				"got", fmt.Sprintf("0x%x", got),
			)
		}
	}

	if d.strict && len(d.report.Mismatches) > 0 {
		first := d.report.Mismatches[0]

		return &StepError{
			Step: StepVerifyWeights,
			Addr: first.Addr,
			Pair: first.Pair,
			Err: fmt.Errorf("%w: %d weights differ",
				ErrWeightMismatch, len(d.report.Mismatches)),
		}
	}

	return nil
}

func (d *driverImpl) Start() error {
	return d.write(StepStart, regmap.Start, regmap.RunValue)
}

func (d *driverImpl) Wait() {
	d.logger.Info("Waiting for the machine to settle",
		"driver", d.name, "settle", d.settle.String())
	d.sleep(d.settle)
}

func (d *driverImpl) ReadResults() error {
	p, err := d.prepare(StepReadResults)
	if err != nil {
		return err
	}

	d.report.Phases = d.report.Phases[:0]
	for _, r := range p.reads {
		res, err := d.readResult(r)
		if err != nil {
			return err
		}

		d.report.Phases = append(d.report.Phases, res)
	}

	status, err := d.readResult(d.problem.StatusRead())
	if err != nil {
		return err
	}

	d.report.Status = &status

	return nil
}

func (d *driverImpl) readResult(r config.PhaseRead) (PhaseResult, error) {
	v, err := d.read(StepReadResults, r.Addr)
	if err != nil {
		err.(*StepError).Pair = r.Node
		return PhaseResult{}, err
	}

	res := PhaseResult{
		Node:        r.Node,
		Addr:        r.Addr,
		Value:       v,
		Expected:    r.Expected,
		HasExpected: r.HasExpected,
	}

	d.logger.Info("Phase",
		"node", res.Node,
		"value", fmt.Sprintf("0x%x", res.Value),
		"expected", res.ExpectedString(),
	)

	return res, nil
}

func (d *driverImpl) Stop() error {
	return d.write(StepStop, regmap.Start, regmap.HaltValue)
}

// write pokes a register. The returned error is always a *StepError.
func (d *driverImpl) write(step Step, addr regmap.Addr, value uint32) error {
	d.logger.Info(fmt.Sprintf("Writing 0x%08x to %s register (0x%016x)",
		value, regmap.Name(addr), uint64(addr)),
		"driver", d.name, "step", step.String())

	if err := d.io.Poke(uint64(addr), value); err != nil {
		return &StepError{Step: step, Addr: addr, Err: err}
	}

	return nil
}

// read peeks a register. The returned error is always a *StepError.
func (d *driverImpl) read(step Step, addr regmap.Addr) (uint32, error) {
	v, err := d.io.Peek(uint64(addr))
	if err != nil {
		return 0, &StepError{Step: step, Addr: addr, Err: err}
	}

	return v, nil
}
