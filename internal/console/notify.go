// ABOUTME: Transient single-slot notices for page and modal scope
// ABOUTME: A new message pre-empts an unexpired one; no queueing

package console

import (
	"sync"
	"time"
)

// Scope selects which notice slot a message lands in.
type Scope int

const (
	// ScopePage is the page-level banner.
	ScopePage Scope = iota
	// ScopeModal is the edit-surface banner.
	ScopeModal
)

type noticeSlot struct {
	message string
	seq     uint64
	timer   *time.Timer
}

// Notifier holds one auto-expiring message per scope.
type Notifier struct {
	mu   sync.Mutex
	ttl  map[Scope]time.Duration
	slot map[Scope]*noticeSlot
}

// NewNotifier creates a notifier with per-scope expiry windows.
func NewNotifier(pageTTL, modalTTL time.Duration) *Notifier {
	return &Notifier{
		ttl: map[Scope]time.Duration{
			ScopePage:  pageTTL,
			ScopeModal: modalTTL,
		},
		slot: map[Scope]*noticeSlot{
			ScopePage:  {},
			ScopeModal: {},
		},
	}
}

// Show replaces any pending message in the scope and restarts its countdown.
func (n *Notifier) Show(scope Scope, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	s := n.slot[scope]
	if s.timer != nil {
		s.timer.Stop()
	}
	s.message = message
	s.seq++

	// seq guards against a stopped timer that already fired and is waiting
	// on the lock.
	seq := s.seq
	s.timer = time.AfterFunc(n.ttl[scope], func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		if s.seq == seq {
			s.message = ""
			s.timer = nil
		}
	})
}

// Dismiss cancels the countdown and clears the scope immediately.
func (n *Notifier) Dismiss(scope Scope) {
	n.mu.Lock()
	defer n.mu.Unlock()

	s := n.slot[scope]
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.message = ""
	s.seq++
}

// Message returns the current message for the scope, empty when none.
func (n *Notifier) Message(scope Scope) string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.slot[scope].message
}

// Close stops all pending timers.
func (n *Notifier) Close() {
	n.Dismiss(ScopePage)
	n.Dismiss(ScopeModal)
}
