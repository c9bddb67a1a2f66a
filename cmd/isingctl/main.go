// Command isingctl loads a problem into the Ising machine, runs it and prints
// the phases it settles to.
//
//	isingctl [--slot <id>] [<hex-value>]
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sarchlab/ising/api"
	"github.com/sarchlab/ising/config"
	"github.com/sarchlab/ising/util"
	"github.com/tebeka/atexit"
)

type options struct {
	slot       int
	configPath string
	backend    string
	settle     time.Duration
	strict     bool
	logLevel   string
	logJSON    string

	seed    uint32
	hasSeed bool
	set     map[string]bool
}

func newFlagSet(stderr io.Writer, o *options) *flag.FlagSet {
	fs := flag.NewFlagSet("isingctl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "Usage: isingctl [--slot <id>] [<hex-value>]")
		fs.PrintDefaults()
	}

	fs.IntVar(&o.slot, "slot", 0, "FPGA slot to attach to")
	fs.StringVar(&o.configPath, "config", "", "YAML configuration file")
	fs.StringVar(&o.backend, "backend", config.BackendPCIe,
		"register backend, pcie or emu")
	fs.DurationVar(&o.settle, "settle", config.DefaultSettle,
		"time the machine runs before the phases are read")
	fs.BoolVar(&o.strict, "strict-verify", false,
		"fail the run when a weight does not read back")
	fs.StringVar(&o.logLevel, "log-level", "info",
		"log level, one of trace, debug, info, warn, error")
	fs.StringVar(&o.logJSON, "log-json", "", "write JSON logs to this file")

	return fs
}

// parseArgs parses the flags and the optional hex seed, which may come before
// or after the flags.
func parseArgs(args []string, stderr io.Writer) (*options, error) {
	o := &options{set: make(map[string]bool)}
	fs := newFlagSet(stderr, o)

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if fs.NArg() > 0 {
		seed, err := parseSeed(fs.Arg(0))
		if err != nil {
			fmt.Fprintln(stderr, err)
			fs.Usage()
			return nil, err
		}
		o.seed = seed
		o.hasSeed = true

		if err := fs.Parse(fs.Args()[1:]); err != nil {
			return nil, err
		}
	}

	if fs.NArg() > 0 {
		err := fmt.Errorf("unexpected argument %q", fs.Arg(0))
		fmt.Fprintln(stderr, err)
		fs.Usage()
		return nil, err
	}

	fs.Visit(func(f *flag.Flag) { o.set[f.Name] = true })

	return o, nil
}

func parseSeed(s string) (uint32, error) {
	digits := strings.TrimPrefix(strings.ToLower(s), "0x")

	v, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid hex value %q", s)
	}

	return uint32(v), nil
}

func (o *options) loadConfig() (config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		var err error
		if cfg, err = config.Load(o.configPath); err != nil {
			return config.Config{}, err
		}
	}

	if o.set["slot"] {
		cfg.Slot = o.slot
	}
	if o.set["backend"] {
		cfg.Backend = o.backend
	}
	if o.set["settle"] {
		cfg.Settle = o.settle
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}

	return cfg, nil
}

func (o *options) logger(stdout io.Writer) (*slog.Logger, func(), error) {
	level, err := util.ParseLevel(o.logLevel)
	if err != nil {
		return nil, nil, err
	}

	opts := &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: util.ReplaceLevelName,
	}

	if o.logJSON == "" {
		return slog.New(slog.NewTextHandler(stdout, opts)), func() {}, nil
	}

	f, err := os.Create(o.logJSON)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot create log file: %w", err)
	}

	return slog.New(slog.NewJSONHandler(f, opts)), func() { f.Close() }, nil
}

func run(args []string, stdout, stderr io.Writer) int {
	o, err := parseArgs(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		return 1
	}

	cfg, err := o.loadConfig()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	logger, closeLog, err := o.logger(stdout)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	defer closeLog()

	platform, err := cfg.Platform()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	db := api.MakeDriverBuilder().
		WithProblem(cfg.Problem).
		WithCounters(cfg.Counters).
		WithSettleTime(cfg.Settle).
		WithStrictVerify(o.strict).
		WithLogger(logger)
	if o.hasSeed {
		db = db.WithSeed(o.seed)
	}

	logger.Info("Starting",
		"backend", cfg.Backend,
		"slot", cfg.Slot,
		"problem", cfg.Problem.Name)

	report, err := api.Execute(cfg.SessionBuilder(platform, logger), db, "Driver")
	if report != nil {
		report.WriteTable(stdout)
	}

	if err != nil {
		fmt.Fprintf(stderr, "Run failed: %v\n", err)
		return 1
	}

	fmt.Fprintln(stdout, "Run completed")

	return 0
}

func main() {
	atexit.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
