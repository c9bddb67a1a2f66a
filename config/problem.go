package config

import (
	_ "embed"
	"fmt"

	"github.com/sarchlab/ising/regmap"
	"gopkg.in/yaml.v3"
)

//go:embed maxcut6.yaml
var defaultProblemYAML []byte

// Role tells how a node takes part in the problem.
type Role string

const (
	// RoleOscillator nodes carry a spin and have a phase register.
	RoleOscillator Role = "oscillator"

	// RoleReference is the injection oscillator. Its weights set the
	// injection strength of each node and it has no phase register.
	RoleReference Role = "reference"
)

// Node is a node of the problem graph bound to a hardware slot.
type Node struct {
	Name     string  `yaml:"name"`
	Slot     int     `yaml:"slot"`
	Role     Role    `yaml:"role,omitempty"`
	Expected *uint32 `yaml:"expected,omitempty"`
}

// IsReference returns true for the injection oscillator.
func (n Node) IsReference() bool {
	return n.Role == RoleReference
}

// Coupling is the weight between two nodes.
type Coupling struct {
	A      string `yaml:"a"`
	B      string `yaml:"b"`
	Weight uint32 `yaml:"weight"`
}

// Problem is an Ising problem mapped onto the oscillator slots.
type Problem struct {
	Name           string     `yaml:"name"`
	Nodes          []Node     `yaml:"nodes"`
	Couplings      []Coupling `yaml:"couplings"`
	ExpectedStatus *uint32    `yaml:"expected_status,omitempty"`
}

// WeightWrite is one weight register write.
type WeightWrite struct {
	Pair  string
	Addr  regmap.Addr
	Value uint32
}

// PhaseRead is one phase register read.
type PhaseRead struct {
	Node        string
	Addr        regmap.Addr
	Expected    uint32
	HasExpected bool
}

// DefaultProblem returns the six-node example problem.
func DefaultProblem() Problem {
	p, err := ParseProblem(defaultProblemYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded problem is invalid: %v", err))
	}

	return p
}

// ParseProblem decodes and validates a problem.
func ParseProblem(data []byte) (Problem, error) {
	var p Problem
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Problem{}, fmt.Errorf("cannot decode problem: %w", err)
	}

	if err := p.Validate(); err != nil {
		return Problem{}, err
	}

	return p, nil
}

// Validate checks that the problem fits the hardware.
func (p *Problem) Validate() error {
	if len(p.Nodes) == 0 {
		return fmt.Errorf("problem %q has no nodes", p.Name)
	}

	names := make(map[string]bool)
	slots := make(map[int]string)
	references := 0

	for i := range p.Nodes {
		n := &p.Nodes[i]
		if n.Role == "" {
			n.Role = RoleOscillator
		}

		if n.Name == "" {
			return fmt.Errorf("node %d has no name", i)
		}
		if names[n.Name] {
			return fmt.Errorf("duplicate node %q", n.Name)
		}
		names[n.Name] = true

		if n.Slot < 0 || n.Slot >= regmap.MaxNodes {
			return fmt.Errorf("node %q: slot %d out of range [0, %d)",
				n.Name, n.Slot, regmap.MaxNodes)
		}
		if other, ok := slots[n.Slot]; ok {
			return fmt.Errorf("nodes %q and %q share slot %d", other, n.Name, n.Slot)
		}
		slots[n.Slot] = n.Name

		switch n.Role {
		case RoleOscillator:
			if n.Slot == regmap.MaxNodes-1 {
				return fmt.Errorf("node %q: slot %d is reserved for the reference",
					n.Name, n.Slot)
			}
		case RoleReference:
			references++
			if n.Slot != regmap.MaxNodes-1 {
				return fmt.Errorf("reference node %q must use slot %d",
					n.Name, regmap.MaxNodes-1)
			}
		default:
			return fmt.Errorf("node %q: unknown role %q", n.Name, n.Role)
		}
	}

	if references > 1 {
		return fmt.Errorf("problem %q has %d reference nodes", p.Name, references)
	}

	pairs := make(map[[2]int]bool)
	for _, c := range p.Couplings {
		a, okA := p.node(c.A)
		b, okB := p.node(c.B)
		if !okA || !okB {
			return fmt.Errorf("coupling %s%s references an unknown node", c.A, c.B)
		}
		if a.Slot == b.Slot {
			return fmt.Errorf("coupling %s%s is a self loop", c.A, c.B)
		}

		key := [2]int{min(a.Slot, b.Slot), max(a.Slot, b.Slot)}
		if pairs[key] {
			return fmt.Errorf("duplicate coupling %s%s", c.A, c.B)
		}
		pairs[key] = true
	}

	return nil
}

func (p *Problem) node(name string) (Node, bool) {
	for _, n := range p.Nodes {
		if n.Name == name {
			return n, true
		}
	}

	return Node{}, false
}

// WeightWrites lists the weight register writes in declaration order.
func (p *Problem) WeightWrites() ([]WeightWrite, error) {
	writes := make([]WeightWrite, 0, len(p.Couplings))

	for _, c := range p.Couplings {
		a, okA := p.node(c.A)
		b, okB := p.node(c.B)
		if !okA || !okB {
			return nil, fmt.Errorf("coupling %s%s references an unknown node", c.A, c.B)
		}

		addr, err := regmap.WeightAddr(min(a.Slot, b.Slot), max(a.Slot, b.Slot))
		if err != nil {
			return nil, fmt.Errorf("coupling %s%s: %w", c.A, c.B, err)
		}

		writes = append(writes, WeightWrite{
			Pair:  c.A + c.B,
			Addr:  addr,
			Value: c.Weight,
		})
	}

	return writes, nil
}

// PhaseReads lists the phase registers of the oscillator nodes in
// declaration order.
func (p *Problem) PhaseReads() ([]PhaseRead, error) {
	reads := make([]PhaseRead, 0, len(p.Nodes))

	for _, n := range p.Nodes {
		if n.IsReference() {
			continue
		}

		addr, err := regmap.PhaseAddr(n.Slot)
		if err != nil {
			return nil, fmt.Errorf("node %q: %w", n.Name, err)
		}

		r := PhaseRead{Node: n.Name, Addr: addr}
		if n.Expected != nil {
			r.Expected = *n.Expected
			r.HasExpected = true
		}

		reads = append(reads, r)
	}

	return reads, nil
}

// StatusRead returns the read of the lock word.
func (p *Problem) StatusRead() PhaseRead {
	r := PhaseRead{Node: "Lo", Addr: regmap.StatusAddr}
	if p.ExpectedStatus != nil {
		r.Expected = *p.ExpectedStatus
		r.HasExpected = true
	}

	return r
}
