//go:build racedetector

package sync

import (
	"unsafe"

	"github.com/kolkov/racedetector/race"
)

// With the racedetector tag the lock reports its happens-before edges to the
// pure-Go race detector, which unlike -race works with CGO_ENABLED=0.

func raceAcquire(addr unsafe.Pointer) { race.RaceAcquire(uintptr(addr)) }
func raceRelease(addr unsafe.Pointer) { race.RaceRelease(uintptr(addr)) }
