package clint

import (
	"sync"
	"testing"
	"unsafe"

	"reedos-in-go/kernel/memlayout"
	"reedos-in-go/kernel/mmio"
	"reedos-in-go/kernel/riscv"
)

func TestArmTimer(t *testing.T) {
	specs := []struct {
		base     uintptr
		hart     int
		now      uint64
		interval uint64
		expAddr  uintptr
	}{
		{memlayout.CLINT, 0, 0, 1000000, 0x2004000},
		{memlayout.CLINT, 1, 5000, 1000000, 0x2004008},
		{memlayout.CLINT, 7, 1 << 40, 10, 0x2004038},
		{0x10000, 2, 123, 456, 0x14010},
		{memlayout.CLINT, MaxHarts - 1, 1, 1, 0x200bff0},
	}

	for specIndex, spec := range specs {
		bus := mmio.NewSim()
		bus.Poke(spec.base+0xBFF8, spec.now)

		ArmTimer(bus, spec.hart, spec.base, spec.interval)

		stores := bus.Stores()
		if len(stores) != 1 {
			t.Fatalf("[spec %d] expected exactly one store; got %d", specIndex, len(stores))
		}
		if got := stores[0]; got.Addr != spec.expAddr || got.Size != 8 || got.Value != spec.now+spec.interval {
			t.Errorf("[spec %d] expected 8-byte store of %d to %#x; got %d bytes of %d to %#x",
				specIndex, spec.now+spec.interval, spec.expAddr, got.Size, got.Value, got.Addr)
		}
	}
}

func TestArmTimerRejectsHartOutOfRange(t *testing.T) {
	for _, hart := range []int{-1, -2, MaxHarts, MaxHarts + 1} {
		bus := mmio.NewSim()
		bus.Poke(memlayout.CLINT_MTIME, 7)

		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("[hart %d] expected ArmTimer to panic", hart)
				}
			}()
			ArmTimer(bus, hart, memlayout.CLINT, 3)
		}()

		if stores := bus.Stores(); len(stores) != 0 {
			t.Errorf("[hart %d] expected no stores; got %v", hart, stores)
		}
	}
}

func TestArmReadsCounterEveryCall(t *testing.T) {
	bus := mmio.NewSim()
	var mtime uint64
	bus.OnLoad(memlayout.CLINT_MTIME, func() uint64 {
		mtime += 100
		return mtime
	})

	c := New(bus, memlayout.CLINT)
	for i := uint64(1); i <= 3; i++ {
		c.Arm(0, 50)
		if got, exp := c.Deadline(0), 100*i+50; got != exp {
			t.Fatalf("arm %d: expected deadline %d; got %d", i, exp, got)
		}
	}

	if got := bus.Peek(memlayout.CLINT_MTIME); got != 0 {
		t.Fatalf("expected the counter never to be written; got %d", got)
	}
}

func TestArmTimerConcurrentHarts(t *testing.T) {
	const (
		nhart  = 8
		rounds = 100
	)

	bus := mmio.NewSim()
	bus.Poke(memlayout.CLINT_MTIME, 1000)

	var wg sync.WaitGroup
	wg.Add(nhart)
	for hart := 0; hart < nhart; hart++ {
		go func(hart int) {
			defer wg.Done()
			for i := 0; i < rounds; i++ {
				ArmTimer(bus, hart, memlayout.CLINT, uint64(hart+1))
			}
		}(hart)
	}
	wg.Wait()

	for hart := 0; hart < nhart; hart++ {
		addr := memlayout.CLINT_MTIMECMP(hart)
		stores := bus.StoresTo(addr)
		if len(stores) != rounds {
			t.Fatalf("hart %d: expected %d stores; got %d", hart, rounds, len(stores))
		}
		for _, s := range stores {
			if exp := uint64(1000 + hart + 1); s.Value != exp {
				t.Fatalf("hart %d: expected deadline %d; got %d", hart, exp, s.Value)
			}
		}
	}
	if got := len(bus.Stores()); got != nhart*rounds {
		t.Fatalf("expected %d stores in total; got %d", nhart*rounds, got)
	}
}

func TestInitHart(t *testing.T) {
	bus := mmio.NewSim()
	bus.Poke(memlayout.CLINT_MTIME, 42)
	c := New(bus, memlayout.CLINT)

	sim := riscv.NewSim(2)
	h := riscv.NewHart(1, riscv.NewPriv(sim.Hart(1)))

	var scratch Scratch
	InitHart(h, c, memlayout.TimerInterval, 0x80001000, &scratch)

	if got, exp := c.Deadline(1), 42+memlayout.TimerInterval; got != exp {
		t.Errorf("expected deadline %d; got %d", exp, got)
	}
	if got := c.Deadline(0); got != 0 {
		t.Errorf("expected hart 0 to stay unarmed; got %d", got)
	}

	regs := sim.Hart(1)
	if got, exp := regs.Read(riscv.MSCRATCH), uint64(uintptr(unsafe.Pointer(&scratch))); got != exp {
		t.Errorf("expected mscratch %#x; got %#x", exp, got)
	}
	if got, exp := scratch[scratchMtimeCmp], uint64(memlayout.CLINT_MTIMECMP(1)); got != exp {
		t.Errorf("expected scratch mtimecmp %#x; got %#x", exp, got)
	}
	if got, exp := scratch[scratchMtime], uint64(memlayout.CLINT_MTIME); got != exp {
		t.Errorf("expected scratch mtime %#x; got %#x", exp, got)
	}
	if got := scratch[scratchInterval]; got != memlayout.TimerInterval {
		t.Errorf("expected scratch interval %d; got %d", memlayout.TimerInterval, got)
	}
	if got := regs.Read(riscv.MTVEC); got != 0x80001000 {
		t.Errorf("expected mtvec 0x80001000; got %#x", got)
	}
	if regs.Read(riscv.MSTATUS)&riscv.MSTATUS_MIE == 0 {
		t.Error("expected mstatus.MIE to be set")
	}
	if regs.Read(riscv.MIE)&riscv.MIE_MTIE == 0 {
		t.Error("expected mie.MTIE to be set")
	}
}
