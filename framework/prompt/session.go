// Package prompt holds the contract a modal prompt uses to end its
// interaction, and a Session that implements it.
package prompt

import (
	"sync"

	"github.com/google/uuid"
)

// Context ends a prompt: Finish with a result, or Close without one.
type Context interface {
	Finish(value any)
	Close()
}

// Session is a Context for a single prompt. The first Finish or Close
// settles it; later calls are ignored.
type Session struct {
	id string

	mu       sync.Mutex
	done     chan struct{}
	value    any
	finished bool
	settled  bool
}

var _ Context = (*Session)(nil)

// NewSession returns an open session with a fresh ID.
func NewSession() *Session {
	return &Session{
		id:   uuid.NewString(),
		done: make(chan struct{}),
	}
}

// ID identifies the session in logs and responses.
func (s *Session) ID() string { return s.id }

// Finish settles the session with value.
func (s *Session) Finish(value any) {
	s.settle(value, true)
}

// TryFinish settles the session with value and reports whether this call
// did it. It returns false once the session is settled.
func (s *Session) TryFinish(value any) bool {
	return s.settle(value, true)
}

// Close settles the session without a value.
func (s *Session) Close() {
	s.settle(nil, false)
}

func (s *Session) settle(value any, finished bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.settled {
		return false
	}
	s.value = value
	s.finished = finished
	s.settled = true
	close(s.done)
	return true
}

// Done is closed once the session is settled.
func (s *Session) Done() <-chan struct{} { return s.done }

// Settled reports whether Finish or Close has been called.
func (s *Session) Settled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settled
}

// Result returns the finished value. finished is false while the session is
// open and after Close.
func (s *Session) Result() (value any, finished bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value, s.finished
}
