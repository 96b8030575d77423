//go:build riscv64

package clint

// timervec is the machine-mode trap vector installed by InitHart. It re-arms
// the hart's timer from the Scratch area and returns with mret.
func timervec()

func timervecAddr() uintptr

// Vector returns the address to pass to InitHart as the timer vector.
func Vector() uintptr { return timervecAddr() }
