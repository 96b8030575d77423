package kfmt

// halt parks the hart. Interrupts are left as they are: a hart that panicked
// while holding a lock has them off already.
func halt() {
	for {
	}
}
