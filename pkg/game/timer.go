package game

import (
	"sync"
	"time"
)

// PhaseTimer paces a discussion phase. Only the most recently armed
// countdown can fire, and not after Disarm.
type PhaseTimer struct {
	mu    sync.Mutex
	timer *time.Timer
	gen   uint64
}

// Arm starts a countdown of d that calls fire on expiry, replacing any
// countdown already running.
func (pt *PhaseTimer) Arm(d time.Duration, fire func()) {
	pt.mu.Lock()
	defer pt.mu.Unlock()

	pt.stop()
	gen := pt.gen
	pt.timer = time.AfterFunc(d, func() {
		pt.mu.Lock()
		current := pt.gen == gen
		if current {
			pt.timer = nil
		}
		pt.mu.Unlock()

		if current {
			fire()
		}
	})
}

// ArmProceed arms a countdown proceeding e from the phase and day it is
// in right now. lock serializes the expiry with the other users of e and
// must be held by the caller.
func (pt *PhaseTimer) ArmProceed(d time.Duration, e *Engine, lock sync.Locker) {
	phase, day := e.state.CurrentPhase, e.state.CurrentDay
	pt.Arm(d, func() {
		lock.Lock()
		defer lock.Unlock()
		_ = e.ProceedIf(phase, day)
	})
}

// Disarm cancels the running countdown, if any
func (pt *PhaseTimer) Disarm() {
	pt.mu.Lock()
	defer pt.mu.Unlock()
	pt.stop()
}

// Armed iff a countdown is running
func (pt *PhaseTimer) Armed() bool {
	pt.mu.Lock()
	defer pt.mu.Unlock()
	return pt.timer != nil
}

func (pt *PhaseTimer) stop() {
	pt.gen++
	if pt.timer != nil {
		pt.timer.Stop()
		pt.timer = nil
	}
}
