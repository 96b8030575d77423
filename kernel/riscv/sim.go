package riscv

import "sync/atomic"

// Sim is a simulated register file for a machine with a fixed number of
// harts. It stands in for the native backend in hosted builds and tests.
// Each hart has its own registers; different harts may use it concurrently.
type Sim struct {
	harts []simHart
}

type simHart struct {
	id   int
	regs map[Reg]*atomic.Uint64 // never mutated after NewSim
}

// NewSim creates a register file for nhart harts with every register zero
// except mhartid, which holds the hart's index.
func NewSim(nhart int) *Sim {
	s := &Sim{harts: make([]simHart, nhart)}
	for i := range s.harts {
		h := &s.harts[i]
		h.id = i
		h.regs = make(map[Reg]*atomic.Uint64, len(regNames))
		for r := range regNames {
			h.regs[r] = new(atomic.Uint64)
		}
		h.regs[MHARTID].Store(uint64(i))
	}
	return s
}

// Hart returns the register backend of hart id.
func (s *Sim) Hart(id int) Ops { return &s.harts[id] }

// NumHarts returns the number of simulated harts.
func (s *Sim) NumHarts() int { return len(s.harts) }

func (h *simHart) reg(r Reg) *atomic.Uint64 {
	v, ok := h.regs[r]
	if !ok {
		panic("riscv: access to unknown register " + r.String())
	}
	return v
}

func (h *simHart) Read(r Reg) uint64 { return h.reg(r).Load() }

func (h *simHart) Write(r Reg, x uint64) {
	if r.ReadOnly() {
		panic("riscv: write to read-only register " + r.String())
	}
	h.reg(r).Store(x)
}
