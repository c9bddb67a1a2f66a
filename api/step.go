package api

import (
	"fmt"

	"github.com/sarchlab/ising/regmap"
)

// Step is a stage of the protocol.
type Step int

const (
	StepIdle Step = iota
	StepConfigure
	StepLoadWeights
	StepVerifyWeights
	StepStart
	StepWait
	StepReadResults
	StepStop
	StepDone
)

// String returns the name of the step.
func (s Step) String() string {
	switch s {
	case StepIdle:
		return "idle"
	case StepConfigure:
		return "configure"
	case StepLoadWeights:
		return "load-weights"
	case StepVerifyWeights:
		return "verify-weights"
	case StepStart:
		return "start"
	case StepWait:
		return "wait"
	case StepReadResults:
		return "read-results"
	case StepStop:
		return "stop"
	case StepDone:
		return "done"
	default:
		return fmt.Sprintf("step(%d)", int(s))
	}
}

// StepError tells which step and register a failure happened on.
type StepError struct {
	Step Step
	Addr regmap.Addr
	Pair string
	Err  error
}

func (e *StepError) Error() string {
	where := e.Step.String()
	if e.Pair != "" {
		where += " " + e.Pair
	}

	if e.Addr != 0 {
		return fmt.Sprintf("%s at %s: %v", where, e.Addr, e.Err)
	}

	return fmt.Sprintf("%s: %v", where, e.Err)
}

// Unwrap returns the underlying error.
func (e *StepError) Unwrap() error {
	return e.Err
}
