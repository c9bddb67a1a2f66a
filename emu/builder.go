package emu

import (
	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/ising/fpga"
)

// Builder creates emulated platforms.
type Builder struct {
	engine  sim.Engine
	freq    sim.Freq
	image   fpga.ImageInfo
	fail    FailPlan
	passive bool
}

// MakeBuilder returns a builder for a platform with the default image loaded.
func MakeBuilder() Builder {
	return Builder{
		freq: 250 * sim.MHz,
		image: fpga.ImageInfo{
			Status:  fpga.StatusLoaded,
			ImageID: fpga.DefaultImageID,
		},
	}
}

// WithEngine sets the engine that drives the machine. A serial engine is
// created if unset.
func (b Builder) WithEngine(engine sim.Engine) Builder {
	b.engine = engine
	return b
}

// WithFreq sets the frequency of the machine.
func (b Builder) WithFreq(freq sim.Freq) Builder {
	b.freq = freq
	return b
}

// WithImage sets the image the slot reports.
func (b Builder) WithImage(image fpga.ImageInfo) Builder {
	b.image = image
	return b
}

// WithFailPlan sets the failures to inject.
func (b Builder) WithFailPlan(plan FailPlan) Builder {
	b.fail = plan
	return b
}

// WithPassive builds a platform without a machine. Its BAR is plain memory.
func (b Builder) WithPassive(passive bool) Builder {
	b.passive = passive
	return b
}

// Build creates a platform.
func (b Builder) Build(name string) *Platform {
	engine := b.engine
	if engine == nil {
		engine = sim.NewSerialEngine()
	}

	p := &Platform{
		space:    NewRegisterSpace(),
		image:    b.image,
		fail:     b.fail,
		stale:    b.fail.StaleImageID,
		attached: make(map[fpga.Handle]bool),
	}

	if !b.passive {
		m := &Machine{space: p.space}
		m.TickingComponent = sim.NewTickingComponent(name+".Machine", engine, b.freq, m)
		p.machine = m
	}

	return p
}
