package api

import (
	"log/slog"
	"time"

	"github.com/sarchlab/ising/config"
)

// DriverBuilder creates a new instance of Driver.
type DriverBuilder struct {
	io       RegisterIO
	problem  *config.Problem
	counters config.Counters
	settle   time.Duration
	sleep    Sleeper
	strict   bool
	seed     uint32
	logger   *slog.Logger
}

// MakeDriverBuilder returns a builder with the default counters and settle
// time.
func MakeDriverBuilder() DriverBuilder {
	return DriverBuilder{
		counters: config.DefaultCounters,
		settle:   config.DefaultSettle,
		sleep:    time.Sleep,
		seed:     0xefbeadde,
	}
}

// WithIO sets the register space the driver works on.
func (b DriverBuilder) WithIO(io RegisterIO) DriverBuilder {
	b.io = io
	return b
}

// WithProblem sets the problem to load. The default problem is used if
// unset.
func (b DriverBuilder) WithProblem(p config.Problem) DriverBuilder {
	b.problem = &p
	return b
}

// WithCounters sets the counter cutoff and counter max values.
func (b DriverBuilder) WithCounters(c config.Counters) DriverBuilder {
	b.counters = c
	return b
}

// WithSettleTime sets how long the machine runs before results are read.
func (b DriverBuilder) WithSettleTime(d time.Duration) DriverBuilder {
	b.settle = d
	return b
}

// WithSleeper replaces time.Sleep for the settle wait.
func (b DriverBuilder) WithSleeper(s Sleeper) DriverBuilder {
	b.sleep = s
	return b
}

// WithStrictVerify makes weight mismatches fail the run.
func (b DriverBuilder) WithStrictVerify(strict bool) DriverBuilder {
	b.strict = strict
	return b
}

// WithSeed sets the seed value recorded in the report.
func (b DriverBuilder) WithSeed(seed uint32) DriverBuilder {
	b.seed = seed
	return b
}

// WithLogger sets the logger. The default logger is used if unset.
func (b DriverBuilder) WithLogger(logger *slog.Logger) DriverBuilder {
	b.logger = logger
	return b
}

// Build creates a driver.
func (b DriverBuilder) Build(name string) Driver {
	if b.io == nil {
		panic("api: driver has no register io")
	}

	problem := config.DefaultProblem()
	if b.problem != nil {
		problem = *b.problem
	}

	sleep := b.sleep
	if sleep == nil {
		sleep = time.Sleep
	}

	logger := b.logger
	if logger == nil {
		logger = slog.Default()
	}

	return &driverImpl{
		name:     name,
		io:       b.io,
		problem:  problem,
		counters: b.counters,
		settle:   b.settle,
		sleep:    sleep,
		strict:   b.strict,
		logger:   logger,
		report: &RunReport{
			Name:    name,
			Problem: problem.Name,
			Seed:    b.seed,
		},
	}
}
