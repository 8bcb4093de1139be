// Package lastsolve holds the process-wide "last solved" handle, installed
// with Set, read with Get and torn down with Clear. All three accessors are
// guarded by one sync.RWMutex, so they are safe for concurrent use.
package lastsolve

import (
	"sync"

	"github.com/google/uuid"

	"github.com/relfind/wmf/bounds"
	"github.com/relfind/wmf/smt"
)

// Handle is the most recently solved translation: the interpreter that
// allocated its primary variables and the driver still holding the live
// solver session a subsequent next() reuses (spec §5 "A process-wide 'last
// solved' handle retains the most recent translator and model for use by
// the enumerator; it is replaced atomically on a new solve").
type Handle struct {
	SessionID   uuid.UUID
	Interpreter *bounds.Interpreter
	Driver      *smt.Driver
}

var (
	mu      sync.RWMutex
	current *Handle
)

// Set installs h as the current handle, replacing and tearing down
// whatever was there before (spec §5 "replaced atomically on a new
// solve"). Passing nil tears the handle down without installing a new one.
func Set(h *Handle) {
	mu.Lock()
	defer mu.Unlock()
	if current != nil && current.Driver != nil && (h == nil || current.Driver != h.Driver) {
		current.Driver.Close()
	}
	current = h
}

// Get returns the current handle, or ok=false if no solve has installed
// one yet (or it has been torn down).
func Get() (*Handle, bool) {
	mu.RLock()
	defer mu.RUnlock()
	if current == nil {
		return nil, false
	}
	return current, true
}

// Clear tears down the current handle's solver subprocess, if any, and
// clears the singleton (spec §5 "torn-down-on-shutdown").
func Clear() {
	mu.Lock()
	defer mu.Unlock()
	if current != nil && current.Driver != nil {
		current.Driver.Close()
	}
	current = nil
}
