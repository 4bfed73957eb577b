package viewport

import "sync"

// Scheduler coalesces redraw requests into a single pending slot. Any
// number of Request calls between frames wake the frame loop once; the
// loop calls Consume at the top of each frame.
type Scheduler struct {
	mu      sync.Mutex
	pending bool
	wake    func()
}

// NewScheduler creates a scheduler. wake is called once per transition
// from idle to pending, typically the window's invalidate hook. A nil
// wake is allowed for pull-only consumers.
func NewScheduler(wake func()) *Scheduler {
	return &Scheduler{wake: wake}
}

// Request marks a redraw as needed. Safe from any goroutine.
func (s *Scheduler) Request() {
	s.mu.Lock()
	already := s.pending
	s.pending = true
	s.mu.Unlock()

	if !already && s.wake != nil {
		s.wake()
	}
}

// Consume reports whether a redraw was pending and resets the slot.
func (s *Scheduler) Consume() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	was := s.pending
	s.pending = false
	return was
}
