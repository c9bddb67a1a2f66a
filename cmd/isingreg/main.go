// Command isingreg reads or writes a single register of the Ising machine.
// Every invocation attaches to the slot and detaches again.
//
//	isingreg [--slot N] peek <addr>
//	isingreg [--slot N] poke <addr> <value>
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/sarchlab/ising/config"
	"github.com/sarchlab/ising/fpga"
	"github.com/sarchlab/ising/regmap"
	"github.com/sarchlab/ising/util"
	"github.com/tebeka/atexit"
)

func usage(fs *flag.FlagSet) func() {
	return func() {
		fmt.Fprintln(fs.Output(), "Usage: isingreg [flags] peek <addr>")
		fmt.Fprintln(fs.Output(), "       isingreg [flags] poke <addr> <value>")
		fs.PrintDefaults()
	}
}

func parseWord(s string) (uint64, error) {
	return strconv.ParseUint(s, 0, 64)
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("isingreg", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = usage(fs)

	slot := fs.Int("slot", 0, "FPGA slot to attach to")
	configPath := fs.String("config", "", "YAML configuration file")
	backend := fs.String("backend", "", "register backend, pcie or emu")
	logLevel := fs.String("log-level", "warn", "log level")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "slot":
			cfg.Slot = *slot
		case "backend":
			cfg.Backend = *backend
		}
	})

	level, err := util.ParseLevel(*logLevel)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: util.ReplaceLevelName,
	}))

	platform, err := cfg.Platform()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	sb := cfg.SessionBuilder(platform, logger)

	return command(fs, sb, stdout, stderr)
}

func command(
	fs *flag.FlagSet,
	sb fpga.SessionBuilder,
	stdout, stderr io.Writer,
) int {
	cmd := fs.Args()
	if len(cmd) == 0 {
		fs.Usage()
		return 1
	}

	switch {
	case cmd[0] == "peek" && len(cmd) == 2:
		addr, err := parseWord(cmd[1])
		if err != nil {
			fmt.Fprintf(stderr, "invalid address %q\n", cmd[1])
			return 1
		}

		v, err := fpga.ReadRegister(sb, addr)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}

		fmt.Fprintf(stdout, "%s = 0x%08x\n", regmap.Addr(addr), v)
	case cmd[0] == "poke" && len(cmd) == 3:
		addr, err := parseWord(cmd[1])
		if err != nil {
			fmt.Fprintf(stderr, "invalid address %q\n", cmd[1])
			return 1
		}

		value, err := strconv.ParseUint(cmd[2], 0, 32)
		if err != nil {
			fmt.Fprintf(stderr, "invalid value %q\n", cmd[2])
			return 1
		}

		v, err := fpga.WriteRegister(sb, addr, uint32(value))
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}

		fmt.Fprintf(stdout, "%s = 0x%08x\n", regmap.Addr(addr), v)
	default:
		fs.Usage()
		return 1
	}

	return 0
}

func main() {
	atexit.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
