package jobs

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Scheduler runs one-shot deferred tasks. Each task gets a handle that can
// cancel it before it fires; once fired a task is never retried.
type Scheduler struct {
	mu      sync.Mutex
	timers  map[uuid.UUID]*time.Timer
	stopped bool
}

// NewScheduler creates a new Scheduler
func NewScheduler() *Scheduler {
	return &Scheduler{
		timers: make(map[uuid.UUID]*time.Timer),
	}
}

// Schedule runs fn once after delay and returns the task handle. After Stop,
// Schedule is a no-op returning uuid.Nil.
func (s *Scheduler) Schedule(delay time.Duration, fn func()) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		log.Printf("Scheduler stopped, dropping task")
		return uuid.Nil
	}

	id := uuid.New()
	s.timers[id] = time.AfterFunc(delay, func() {
		s.mu.Lock()
		delete(s.timers, id)
		s.mu.Unlock()

		defer func() {
			if r := recover(); r != nil {
				log.Printf("Scheduled task %s panicked: %v", id, r)
			}
		}()
		fn()
	})
	return id
}

// Cancel stops a pending task. It reports whether the task was still pending.
func (s *Scheduler) Cancel(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	timer, ok := s.timers[id]
	if !ok {
		return false
	}
	delete(s.timers, id)
	return timer.Stop()
}

// Pending returns the number of tasks that have not fired yet.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.timers)
}

// Stop cancels all pending tasks and rejects new ones.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopped = true
	for id, timer := range s.timers {
		timer.Stop()
		delete(s.timers, id)
	}
}
