package tui

import (
	"time"

	"github.com/vovakirdan/portalhop/internal/core"
)

// DefaultHoldWindow is how long a movement key stays down after its last
// autorepeat event.
const DefaultHoldWindow = 120 * time.Millisecond

// initialRepeatGrace bridges the autorepeat delay after the first event.
const initialRepeatGrace = 300 * time.Millisecond

// holdTracker emulates key releases. Terminals only report presses, so a
// movement counts as held until no press arrives for the hold window.
type holdTracker struct {
	window time.Duration
	keys   map[core.Action]heldKey
}

type heldKey struct {
	first time.Time
	last  time.Time
}

func newHoldTracker(window time.Duration) *holdTracker {
	if window <= 0 {
		window = DefaultHoldWindow
	}
	return &holdTracker{window: window, keys: make(map[core.Action]heldKey)}
}

// Press records a key event. Opposite directions release each other.
func (h *holdTracker) Press(a core.Action, now time.Time) {
	switch a {
	case core.ActionLeft:
		delete(h.keys, core.ActionRight)
	case core.ActionRight:
		delete(h.keys, core.ActionLeft)
	}
	k, ok := h.keys[a]
	if !ok {
		k.first = now
	}
	k.last = now
	h.keys[a] = k
}

// Active reports whether a is still held at now and forgets it otherwise.
func (h *holdTracker) Active(a core.Action, now time.Time) bool {
	k, ok := h.keys[a]
	if !ok {
		return false
	}
	window := h.window
	if k.first.Equal(k.last) {
		window = max(window, initialRepeatGrace)
	}
	if now.Sub(k.last) > window {
		delete(h.keys, a)
		return false
	}
	return true
}

// ReleaseAll forgets every held key.
func (h *holdTracker) ReleaseAll() {
	clear(h.keys)
}
