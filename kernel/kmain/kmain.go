// Package kmain is the boot path every hart runs once the assembly entry has
// set up a stack: console on hart 0, the hart's timer, then a shared-counter
// run that exercises the kernel lock across all harts.
package kmain

import (
	"sync/atomic"

	"reedos-in-go/kernel/clint"
	"reedos-in-go/kernel/kfmt"
	"reedos-in-go/kernel/memlayout"
	"reedos-in-go/kernel/mmio"
	"reedos-in-go/kernel/riscv"
	"reedos-in-go/kernel/sync"
	"reedos-in-go/kernel/uart"
)

// Machine is the hardware a kernel runs on.
type Machine struct {
	// Bus reaches the CLINT and the UART.
	Bus mmio.Bus

	// Priv returns the privileged-register capability of hart id.
	Priv func(id int) riscv.Priv

	// TimerVec is the machine-mode timer vector installed on every hart.
	TimerVec uintptr

	NHart  int
	Rounds int
}

type counter struct {
	num  int
	done int // harts that finished their rounds
}

// Kernel is the state shared by all harts.
type Kernel struct {
	m       Machine
	clint   *clint.CLINT
	console *uart.UART

	started atomic.Bool
	count   sync.Mutex[counter]
	scratch []clint.Scratch
}

var (
	errCount = &kfmt.Error{Module: "kmain", Message: "lost update on shared counter"}
)

// New prepares a kernel for m. Zero NHart and Rounds default to the
// memlayout parameters.
func New(m Machine) *Kernel {
	if m.NHart == 0 {
		m.NHart = memlayout.NHART
	}
	if m.Rounds == 0 {
		m.Rounds = memlayout.CounterRounds
	}
	return &Kernel{
		m:       m,
		clint:   clint.New(m.Bus, memlayout.CLINT),
		console: uart.New(m.Bus, memlayout.UART0),
		scratch: make([]clint.Scratch, m.NHart),
	}
}

// Run is Main for the kernel entry: a panic on the hart, such as a lock
// contract violation, is printed to the console and the hart halts.
func (k *Kernel) Run(id int) {
	defer kfmt.Recover()
	k.Main(id)
}

// Main runs the boot path for hart id and returns the final counter value
// it observed.
func (k *Kernel) Main(id int) int {
	if id < 0 || id >= k.m.NHart {
		kfmt.Panicf("hart %d: not configured, %d harts", id, k.m.NHart)
	}

	h := riscv.NewHart(id, k.m.Priv(id))
	// keep each hart's id in tp, as the assembly entry expects.
	h.Priv.WriteTp(uint64(id))

	if id == 0 {
		k.console.Init()
		kfmt.SetSink(k.console)
		kfmt.Printf("\nreedos kernel is booting\n\n")
		k.started.Store(true)
	} else {
		for !k.started.Load() {
		}
	}

	clint.InitHart(h, k.clint, memlayout.TimerInterval, k.m.TimerVec, &k.scratch[id])
	kfmt.Printf("hart %d: timer armed, deadline %d\n", id, k.clint.Deadline(id))

	return k.countTest(h)
}

func (k *Kernel) countTest(h *riscv.Hart) int {
	for i := 0; i < k.m.Rounds; i++ {
		k.count.DoOn(h, func(c *counter) { c.num++ })
	}
	k.count.DoOn(h, func(c *counter) { c.done++ })

	var total int
	for {
		finished := false
		k.count.DoOn(h, func(c *counter) {
			finished = c.done == k.m.NHart
			total = c.num
		})
		if finished {
			break
		}
	}

	exp := k.m.NHart * k.m.Rounds
	kfmt.Printf("hart %d: expected count %d, real count %d\n", h.ID, exp, total)
	if total != exp {
		kfmt.Panic(errCount)
	}
	return total
}
