//go:build !riscv64

package kfmt

import "runtime"

// Off the kernel target a hart is a goroutine; halting it ends the goroutine.
func halt() {
	runtime.Goexit()
}
