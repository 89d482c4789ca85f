// Package sched provides idle-callback scheduling for the input core.
//
// The contract is built around explicit cancellation tokens: the owner
// of a scheduled callback keeps the token and revokes it when its
// scope ends; the scheduler holds only a non-owning reference and
// silently drops a callback whose token was revoked. No registration
// survives its owner.
package sched

import (
	"sync"
	"time"
)

// Token gates a scheduled callback. A revoked token is permanent.
type Token struct {
	mu      sync.Mutex
	revoked bool
}

// NewToken creates a live token.
func NewToken() *Token {
	return &Token{}
}

// Revoke permanently cancels the callbacks guarded by this token.
// Safe to call more than once.
func (t *Token) Revoke() {
	t.mu.Lock()
	t.revoked = true
	t.mu.Unlock()
}

// Revoked reports whether the token has been revoked.
func (t *Token) Revoked() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.revoked
}

// run invokes fn unless the token was revoked, holding the token lock
// so a concurrent Revoke either wins completely or waits.
func (t *Token) run(fn func()) {
	t.mu.Lock()
	if t.revoked {
		t.mu.Unlock()
		return
	}
	t.mu.Unlock()
	fn()
}

// Scheduler schedules a callback after a delay, guarded by a token.
type Scheduler interface {
	After(d time.Duration, tok *Token, fn func())
}

// Timers is the production Scheduler. Callbacks are posted through the
// supplied post function, which must execute them on the single
// dispatch thread (typically the main event loop).
type Timers struct {
	post func(func())
}

// NewTimers creates a timer scheduler. A nil post runs callbacks
// directly on the timer goroutine; only do that in tools that have no
// event loop.
func NewTimers(post func(func())) *Timers {
	if post == nil {
		post = func(fn func()) { fn() }
	}
	return &Timers{post: post}
}

// After schedules fn to run once after d, unless tok is revoked first.
func (s *Timers) After(d time.Duration, tok *Token, fn func()) {
	time.AfterFunc(d, func() {
		s.post(func() {
			tok.run(fn)
		})
	})
}

// Manual is a deterministic Scheduler for tests: nothing fires until
// Fire or FireAll is called.
type Manual struct {
	mu      sync.Mutex
	pending []pendingCall
}

type pendingCall struct {
	tok *Token
	fn  func()
}

// NewManual creates an empty manual scheduler.
func NewManual() *Manual {
	return &Manual{}
}

// After queues fn; the delay is ignored.
func (s *Manual) After(d time.Duration, tok *Token, fn func()) {
	s.mu.Lock()
	s.pending = append(s.pending, pendingCall{tok: tok, fn: fn})
	s.mu.Unlock()
}

// Pending returns the number of queued callbacks, revoked or not.
func (s *Manual) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Fire runs the oldest queued callback whose token is still live.
// Returns false when nothing fired.
func (s *Manual) Fire() bool {
	s.mu.Lock()
	var call pendingCall
	found := false
	for i, p := range s.pending {
		if !p.tok.Revoked() {
			call = p
			found = true
			s.pending = append(s.pending[:i], s.pending[i+1:]...)
			break
		}
	}
	if !found {
		s.pending = nil
	}
	s.mu.Unlock()
	if found {
		call.tok.run(call.fn)
	}
	return found
}

// FireAll drains the queue, running every callback with a live token.
func (s *Manual) FireAll() {
	for s.Fire() {
	}
}
