// Package app contains the application services implementing the primary
// ports. Services orchestrate validation, the pure planning core and the
// repositories; every multi-row mutation runs inside one transaction.
package app

import (
	"sync"
	"time"

	"github.com/example/microfarm/internal/core/undo"
	"github.com/example/microfarm/internal/ports/primary"
)

// Session owns the per-process mutable state that does not belong in the
// database: the undo history and the registered refresh listeners. The
// history is deliberately in-memory only; closing the application empties
// it.
type Session struct {
	mu        sync.Mutex
	log       *undo.Log
	listeners []primary.RefreshListener

	// now is swapped in tests to make the throttle deterministic.
	now        func() time.Time
	throttle   time.Duration
	lastNotify time.Time
}

// NewSession creates a session with the given refresh throttle. A zero
// throttle disables it, so every change notifies immediately.
func NewSession(throttle time.Duration) *Session {
	return &Session{
		log:      undo.NewLog(undo.DefaultDepth),
		now:      time.Now,
		throttle: throttle,
	}
}

// Subscribe registers a listener for data-change notifications.
func (s *Session) Subscribe(l primary.RefreshListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// Record appends an action to the undo history.
func (s *Session) Record(a undo.Action) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.log.Record(a)
}

// Log exposes the undo history for the undo service.
func (s *Session) Log() *undo.Log {
	return s.log
}

// DataChanged fans a change notification out to every listener. Bursts of
// edits inside the throttle window collapse into the first notification.
func (s *Session) DataChanged() {
	s.mu.Lock()
	now := s.now()
	if s.throttle > 0 && now.Sub(s.lastNotify) < s.throttle {
		s.mu.Unlock()
		return
	}
	s.lastNotify = now
	listeners := append([]primary.RefreshListener(nil), s.listeners...)
	s.mu.Unlock()

	for _, l := range listeners {
		l.DataChanged()
	}
}
