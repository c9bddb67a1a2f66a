// Package config holds the run configuration of the Ising machine driver and
// the problems it can load.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/sarchlab/ising/fpga"
	"gopkg.in/yaml.v3"
)

// Backend names.
const (
	BackendPCIe     = "pcie"
	BackendEmulator = "emu"
)

// Counters are the convergence counter settings written before a run.
type Counters struct {
	Cutoff uint32 `yaml:"cutoff"`
	Max    uint32 `yaml:"max"`
}

// DefaultCounters are the counter values of the reference bitstream.
var DefaultCounters = Counters{Cutoff: 0x40000000, Max: 0x80000000}

// DefaultSlot0Address is the PCI address of the application function of
// slot 0 on a single-FPGA host.
const DefaultSlot0Address = "0000:00:1d.0"

// DefaultSettle is how long the machine runs before the phases are read.
const DefaultSettle = time.Second

// Config is the run configuration.
type Config struct {
	Slot      int            `yaml:"slot"`
	PF        int            `yaml:"pf"`
	Bar       int            `yaml:"bar"`
	Backend   string         `yaml:"backend"`
	ImageID   fpga.ImageID   `yaml:"image"`
	Counters  Counters       `yaml:"counters"`
	Settle    time.Duration  `yaml:"settle"`
	SysfsRoot string         `yaml:"sysfs_root"`
	Slots     map[int]string `yaml:"slots"`
	Problem   Problem        `yaml:"-"`
}

type fileConfig struct {
	Config  `yaml:",inline"`
	Problem *Problem `yaml:"problem"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Slot:      0,
		PF:        fpga.AppPF,
		Bar:       fpga.AppPFBar0,
		Backend:   BackendPCIe,
		ImageID:   fpga.DefaultImageID,
		Counters:  DefaultCounters,
		Settle:    DefaultSettle,
		SysfsRoot: "/sys",
		Slots:     map[int]string{0: DefaultSlot0Address},
		Problem:   DefaultProblem(),
	}
}

// Load reads a configuration file. Fields the file does not set keep their
// default values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("cannot read config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// Parse decodes a configuration document over the defaults.
func Parse(data []byte) (Config, error) {
	fc := fileConfig{Config: Default()}

	if err := yaml.Unmarshal(data, &fc); err != nil {
		return Config{}, fmt.Errorf("cannot decode config: %w", err)
	}

	cfg := fc.Config
	if fc.Problem != nil {
		if err := fc.Problem.Validate(); err != nil {
			return Config{}, err
		}
		cfg.Problem = *fc.Problem
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.Slot < 0 {
		return fmt.Errorf("invalid slot %d", c.Slot)
	}

	switch c.Backend {
	case BackendPCIe, BackendEmulator:
	default:
		return fmt.Errorf("unknown backend %q", c.Backend)
	}

	if c.Settle < 0 {
		return fmt.Errorf("negative settle time %s", c.Settle)
	}

	return c.Problem.Validate()
}
