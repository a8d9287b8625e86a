package input

import (
	"sync"
	"time"
)

// Key identifies one of the four directional intents.
type Key int

const (
	KeyForward Key = iota
	KeyBackward
	KeyLeft
	KeyRight
)

// DefaultHoldWindow is how long a pressed key stays active without a
// refreshing repeat. Terminals deliver no key-up events, only presses
// and auto-repeats, so a directional intent is kept alive while
// repeats arrive and expires shortly after they stop. The default
// sits above the usual initial auto-repeat delay (~500 ms) so a held
// key does not flicker off before the first repeat.
const DefaultHoldWindow = 600 * time.Millisecond

// Keys is the keyboard intent source. Press and Release update the
// directional state machine; Sample reduces it to an Intent once per
// tick. Press/Release may be called from the UI event loop while the
// control loop samples, so the state is mutex-guarded.
type Keys struct {
	mu         sync.Mutex
	pressedAt  map[Key]time.Time
	cycles     int
	lastCycle  time.Time
	quit       bool
	holdWindow time.Duration
	now        func() time.Time
}

// NewKeys creates a keyboard source. holdWindow <= 0 disables
// expiry, leaving Release as the only way to clear an intent (for
// backends that do deliver key-up events).
func NewKeys(holdWindow time.Duration) *Keys {
	return &Keys{
		pressedAt:  make(map[Key]time.Time),
		holdWindow: holdWindow,
		now:        time.Now,
	}
}

// Press marks a directional key as held. Repeated presses refresh the
// hold window.
func (k *Keys) Press(key Key) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.pressedAt[key] = k.now()
}

// Release clears a directional key.
func (k *Keys) Release(key Key) {
	k.mu.Lock()
	defer k.mu.Unlock()
	delete(k.pressedAt, key)
}

// Cycle registers a robot-id cycle request. Calls arriving within the
// hold window of the previous one are treated as auto-repeat of a held
// key and ignored, so holding the key yields exactly one increment.
func (k *Keys) Cycle() {
	k.mu.Lock()
	defer k.mu.Unlock()
	now := k.now()
	if k.holdWindow > 0 && !k.lastCycle.IsZero() && now.Sub(k.lastCycle) < k.holdWindow {
		k.lastCycle = now
		return
	}
	k.cycles++
	k.lastCycle = now
}

// Quit requests shutdown.
func (k *Keys) Quit() {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.quit = true
}

// Sample reduces the current key state to an Intent. Stale keys past
// the hold window are dropped first; queued cycle requests are
// consumed.
func (k *Keys) Sample() (Intent, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.holdWindow > 0 {
		cutoff := k.now().Add(-k.holdWindow)
		for key, at := range k.pressedAt {
			if at.Before(cutoff) {
				delete(k.pressedAt, key)
			}
		}
	}

	var intent Intent
	if _, ok := k.pressedAt[KeyForward]; ok {
		intent.Throttle += 1
	}
	if _, ok := k.pressedAt[KeyBackward]; ok {
		intent.Throttle -= 1
	}
	if _, ok := k.pressedAt[KeyLeft]; ok {
		intent.Turn -= 0.5
	}
	if _, ok := k.pressedAt[KeyRight]; ok {
		intent.Turn += 0.5
	}

	intent.Cycles = k.cycles
	intent.Quit = k.quit
	k.cycles = 0

	return intent, nil
}

// Active returns which directional keys are currently held, for
// status display.
func (k *Keys) Active() map[Key]bool {
	k.mu.Lock()
	defer k.mu.Unlock()

	held := make(map[Key]bool, len(k.pressedAt))
	cutoff := k.now().Add(-k.holdWindow)
	for key, at := range k.pressedAt {
		if k.holdWindow > 0 && at.Before(cutoff) {
			continue
		}
		held[key] = true
	}
	return held
}
