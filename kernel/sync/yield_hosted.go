//go:build !riscv64

package sync

import "runtime"

// Off the kernel target the harts are goroutines; let the holder run.
func init() {
	yieldFn = runtime.Gosched
}
