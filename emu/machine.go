package emu

import (
	"log/slog"

	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/ising/regmap"
	"github.com/sarchlab/ising/util"
)

// Phase values published for the two spin states.
const (
	PhaseUp   uint32 = 0x8000
	PhaseDown uint32 = 0x0
)

const referenceSlot = regmap.MaxNodes - 1

// Machine is the oscillator network. Each tick performs the single spin flip
// that lowers the coupling energy the most. The run ends when no flip helps
// (the network is locked) or when the counter budget is spent.
type Machine struct {
	*sim.TickingComponent

	space *RegisterSpace

	spins   [referenceSlot]int8
	running bool
	locked  bool
	ticks   uint64
	budget  uint64
}

// Running returns true while the machine is annealing.
func (m *Machine) Running() bool {
	return m.running
}

// Locked returns true if the last run converged.
func (m *Machine) Locked() bool {
	return m.locked
}

// Ticks returns the number of ticks the last run took.
func (m *Machine) Ticks() uint64 {
	return m.ticks
}

// Spins returns the spin of every oscillator slot.
func (m *Machine) Spins() []int8 {
	spins := make([]int8, len(m.spins))
	copy(spins, m.spins[:])

	return spins
}

// Control reacts to a write to the start register.
func (m *Machine) Control(value uint32) error {
	if value == regmap.HaltValue {
		if m.running {
			m.running = false
			m.publish()
		}

		return nil
	}

	if m.running {
		return nil
	}

	m.reset()
	m.TickLater()

	return m.Engine.Run()
}

func (m *Machine) reset() {
	for i := range m.spins {
		m.spins[i] = 1
	}

	m.ticks = 0
	m.locked = false
	m.running = true

	cutoff := uint64(m.space.Read(uint64(regmap.CtrCutoff)))
	limit := uint64(m.space.Read(uint64(regmap.CtrMax)))
	m.budget = min(cutoff, limit)

	m.space.Write(uint64(regmap.StatusAddr), 0)
}

// Tick runs one annealing step.
func (m *Machine) Tick() (madeProgress bool) {
	if !m.running {
		return false
	}

	if m.ticks >= m.budget {
		m.finish(false)
		return false
	}

	m.ticks++

	slot, ok := m.bestFlip()
	if !ok {
		m.finish(true)
		return false
	}

	m.spins[slot] = -m.spins[slot]

	util.Trace(slog.Default(), "Flip",
		"machine", m.Name(),
		"tick", m.ticks,
		"slot", slot,
		"spin", m.spins[slot],
	)

	return true
}

// bestFlip returns the slot whose flip lowers sum(J_ij s_i s_j) the most.
func (m *Machine) bestFlip() (slot int, ok bool) {
	bestGain := int64(0)

	for i := range m.spins {
		gain := 2 * int64(m.spins[i]) * m.localField(i)
		if gain > bestGain {
			bestGain = gain
			slot = i
			ok = true
		}
	}

	return slot, ok
}

func (m *Machine) localField(i int) int64 {
	field := int64(0)

	for j := range m.spins {
		if j == i {
			continue
		}

		field += int64(m.weight(i, j)) * int64(m.spins[j])
	}

	return field
}

func (m *Machine) weight(i, j int) int32 {
	addr, err := regmap.WeightAddr(min(i, j), max(i, j))
	if err != nil {
		return 0
	}

	return int32(m.space.Read(uint64(addr)))
}

func (m *Machine) finish(locked bool) {
	m.running = false
	m.locked = locked
	m.publish()
}

func (m *Machine) publish() {
	for slot, spin := range m.spins {
		addr, err := regmap.PhaseAddr(slot)
		if err != nil {
			panic(err)
		}

		phase := PhaseDown
		if spin > 0 {
			phase = PhaseUp
		}

		m.space.Write(uint64(addr), phase)
	}

	status := uint32(0)
	if m.locked {
		status = 1
	}

	m.space.Write(uint64(regmap.StatusAddr), status)
}
