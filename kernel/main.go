//go:build riscv64

package main

import (
	"reedos-in-go/kernel/clint"
	"reedos-in-go/kernel/kmain"
	"reedos-in-go/kernel/mmio"
	"reedos-in-go/kernel/riscv"
)

var kernel *kmain.Kernel

// KInit runs on hart 0 before any other hart is released from the entry
// spin loop.
//
//export KInit
func KInit() {
	kernel = kmain.New(kmain.Machine{
		Bus:      mmio.Physical{},
		Priv:     func(int) riscv.Priv { return riscv.Native() },
		TimerVec: clint.Vector(),
	})
}

//export KMain
func KMain(hartid uintptr) {
	kernel.Run(int(hartid))
	for {
	}
}

func main() {}
