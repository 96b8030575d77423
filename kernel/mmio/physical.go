package mmio

import (
	"sync/atomic"
	"unsafe"
)

// Physical is the bus of the machine the kernel runs on: addresses are
// dereferenced directly.
//
// Word accesses go through sync/atomic, which the compiler never elides,
// merges or reorders. There is no 8-bit atomic, so byte accesses sit in
// functions the compiler may not inline, leaving it unable to see that the
// access is unused.
type Physical struct{}

func (Physical) Load64(addr uintptr) uint64 {
	return atomic.LoadUint64((*uint64)(unsafe.Pointer(addr)))
}

func (Physical) Store64(addr uintptr, v uint64) {
	atomic.StoreUint64((*uint64)(unsafe.Pointer(addr)), v)
}

func (Physical) Load32(addr uintptr) uint32 {
	return atomic.LoadUint32((*uint32)(unsafe.Pointer(addr)))
}

func (Physical) Store32(addr uintptr, v uint32) {
	atomic.StoreUint32((*uint32)(unsafe.Pointer(addr)), v)
}

//go:noinline
func (Physical) Load8(addr uintptr) uint8 {
	return *(*uint8)(unsafe.Pointer(addr))
}

//go:noinline
func (Physical) Store8(addr uintptr, v uint8) {
	*(*uint8)(unsafe.Pointer(addr)) = v
}
