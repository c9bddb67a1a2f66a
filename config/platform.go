package config

import (
	"fmt"
	"log/slog"

	"github.com/sarchlab/ising/emu"
	"github.com/sarchlab/ising/fpga"
	"github.com/sarchlab/ising/pcie"
)

// Platform creates the platform selected by Backend.
func (c *Config) Platform() (fpga.Platform, error) {
	switch c.Backend {
	case BackendPCIe:
		return pcie.NewPlatform(c.SysfsRoot, c.Slots), nil
	case BackendEmulator:
		return emu.MakeBuilder().
			WithImage(fpga.ImageInfo{
				Status:  fpga.StatusLoaded,
				ImageID: c.ImageID,
			}).
			Build("Emu"), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", c.Backend)
	}
}

// SessionBuilder returns a session builder for the configured slot, function
// and BAR on the given platform.
func (c *Config) SessionBuilder(
	p fpga.Platform,
	logger *slog.Logger,
) fpga.SessionBuilder {
	return fpga.MakeSessionBuilder().
		WithPlatform(p).
		WithSlot(c.Slot).
		WithPF(c.PF).
		WithBar(c.Bar).
		WithImageID(c.ImageID).
		WithLogger(logger)
}
