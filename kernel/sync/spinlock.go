// Package sync provides the kernel's mutual-exclusion primitive: a spinning
// Mutex that owns the value it protects and hands out a Guard for access.
package sync

import (
	"sync/atomic"
	"unsafe"

	"reedos-in-go/kernel/riscv"
)

// lock word values.
const (
	unlocked = 0
	locked   = 1
)

var (
	// yieldFn runs between polls of a held lock. It is nil in the kernel,
	// where there is nothing to yield to.
	yieldFn func()
)

// spinlock is a test-and-test-and-set lock. The word is 0 or 1 and means
// nothing else.
//
// sync/atomic operations are sequentially consistent, which is stronger than
// the acquire ordering needed on Swap and the release ordering needed on
// Store.
type spinlock struct {
	locked uint32

	// id+1 of the hart that took the lock with acquireOn, 0 otherwise.
	owner atomic.Int32
}

func (lk *spinlock) acquire() {
	for atomic.SwapUint32(&lk.locked, locked) == locked {
		for atomic.LoadUint32(&lk.locked) == locked {
			if yieldFn != nil {
				yieldFn()
			}
		}
	}
	raceAcquire(unsafe.Pointer(lk))
}

func (lk *spinlock) tryAcquire() bool {
	if atomic.SwapUint32(&lk.locked, locked) == locked {
		return false
	}
	raceAcquire(unsafe.Pointer(lk))
	return true
}

func (lk *spinlock) release() {
	raceRelease(unsafe.Pointer(lk))
	atomic.StoreUint32(&lk.locked, unlocked)
}

// acquireOn disables interrupts on h for as long as the lock is held, so an
// interrupt handler on the same hart cannot spin on a lock its own hart
// holds.
func (lk *spinlock) acquireOn(h *riscv.Hart) {
	h.PushOff()
	if lk.holding(h) {
		panic("acquire")
	}
	lk.acquire()
	lk.owner.Store(int32(h.ID) + 1)
}

func (lk *spinlock) tryAcquireOn(h *riscv.Hart) bool {
	h.PushOff()
	if lk.holding(h) {
		panic("acquire")
	}
	if !lk.tryAcquire() {
		h.PopOff()
		return false
	}
	lk.owner.Store(int32(h.ID) + 1)
	return true
}

func (lk *spinlock) releaseOn(h *riscv.Hart) {
	if !lk.holding(h) {
		panic("release")
	}
	lk.owner.Store(0)
	lk.release()
	h.PopOff()
}

// holding reports whether h holds the lock. Interrupts must be off.
func (lk *spinlock) holding(h *riscv.Hart) bool {
	return atomic.LoadUint32(&lk.locked) == locked && lk.owner.Load() == int32(h.ID)+1
}
