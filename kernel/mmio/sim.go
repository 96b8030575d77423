package mmio

import "reedos-in-go/kernel/sync"

// Access is one store seen by a Sim.
type Access struct {
	Addr  uintptr
	Size  int
	Value uint64
}

// Sim is a sparse simulated physical address space. Unwritten addresses read
// as zero. Every store is logged in order. Sim is safe for concurrent use.
type Sim struct {
	mem sync.Mutex[simMem]
}

type simMem struct {
	cells  map[uintptr]uint64
	loads  map[uintptr]func() uint64
	stores []Access
}

// NewSim returns an empty address space.
func NewSim() *Sim {
	s := &Sim{}
	s.mem.Do(func(m *simMem) {
		m.cells = make(map[uintptr]uint64)
		m.loads = make(map[uintptr]func() uint64)
	})
	return s
}

// Poke sets the value at addr without logging a store.
func (s *Sim) Poke(addr uintptr, v uint64) {
	s.mem.Do(func(m *simMem) { m.cells[addr] = v })
}

// Peek returns the value at addr without running a load hook.
func (s *Sim) Peek(addr uintptr) uint64 {
	var v uint64
	s.mem.Do(func(m *simMem) { v = m.cells[addr] })
	return v
}

// OnLoad makes loads from addr return fn() instead of the stored value, for
// registers that change on their own such as a free-running counter. fn
// runs with the Sim locked and must not call back into it.
func (s *Sim) OnLoad(addr uintptr, fn func() uint64) {
	s.mem.Do(func(m *simMem) { m.loads[addr] = fn })
}

// Stores returns a copy of the store log.
func (s *Sim) Stores() []Access {
	var log []Access
	s.mem.Do(func(m *simMem) { log = append(log, m.stores...) })
	return log
}

// StoresTo returns the logged stores to addr.
func (s *Sim) StoresTo(addr uintptr) []Access {
	var log []Access
	s.mem.Do(func(m *simMem) {
		for _, a := range m.stores {
			if a.Addr == addr {
				log = append(log, a)
			}
		}
	})
	return log
}

func (s *Sim) load(addr uintptr) uint64 {
	var v uint64
	s.mem.Do(func(m *simMem) {
		if fn, ok := m.loads[addr]; ok {
			v = fn()
			return
		}
		v = m.cells[addr]
	})
	return v
}

func (s *Sim) store(addr uintptr, size int, v uint64) {
	s.mem.Do(func(m *simMem) {
		m.cells[addr] = v
		m.stores = append(m.stores, Access{Addr: addr, Size: size, Value: v})
	})
}

func (s *Sim) Load64(addr uintptr) uint64     { return s.load(addr) }
func (s *Sim) Store64(addr uintptr, v uint64) { s.store(addr, 8, v) }
func (s *Sim) Load32(addr uintptr) uint32     { return uint32(s.load(addr)) }
func (s *Sim) Store32(addr uintptr, v uint32) { s.store(addr, 4, uint64(v)) }
func (s *Sim) Load8(addr uintptr) uint8       { return uint8(s.load(addr)) }
func (s *Sim) Store8(addr uintptr, v uint8)   { s.store(addr, 1, uint64(v)) }

var (
	_ Bus = Physical{}
	_ Bus = (*Sim)(nil)
)
