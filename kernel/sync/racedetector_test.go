//go:build racedetector

package sync

import (
	gosync "sync"
	"testing"
	"unsafe"

	"github.com/kolkov/racedetector/race"
)

// With the lock reporting its acquire/release edges, accesses to the payload
// made under the lock are ordered for the pure-Go detector.
//
// The race package exposes no count of detected races, only the summary that
// Fini prints, so the test cannot fail on a report. Dropping raceAcquire or
// raceRelease shows up as a race in that summary, not as a test failure;
// read the test output when changing them.
func TestMutexRaceAnnotations(t *testing.T) {
	if !race.GetInfo().Enabled {
		t.Skip("race detector runtime not enabled")
	}
	race.Init()
	defer race.Fini()

	var (
		m  = New(0)
		wg gosync.WaitGroup
	)

	wg.Add(2)
	for i := 0; i < 2; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				m.Do(func(v *int) {
					addr := uintptr(unsafe.Pointer(v))
					race.RaceRead(addr)
					race.RaceWrite(addr)
					*v++
				})
			}
		}()
	}
	wg.Wait()

	m.Do(func(v *int) {
		if *v != 200 {
			t.Fatalf("expected 200; got %d", *v)
		}
	})
}
