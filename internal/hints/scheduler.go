package hints

import (
	"sort"
	"sync"
	"time"
)

// Scheduler defers a callback; the renderer uses it to observe animation
// completion. AfterFunc returns a cancel func that is safe to call after
// the callback has fired.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) (cancel func())
}

// SystemScheduler returns the wall-clock scheduler backed by
// time.AfterFunc.
func SystemScheduler() Scheduler { return systemScheduler{} }

type systemScheduler struct{}

func (systemScheduler) AfterFunc(d time.Duration, fn func()) (cancel func()) {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}

// ManualScheduler is a deterministic Scheduler for tests: callbacks fire
// only when Advance moves the virtual clock past their deadline.
type ManualScheduler struct {
	mu     sync.Mutex
	now    time.Duration
	nextID int
	timers map[int]*manualTimer
}

type manualTimer struct {
	at time.Duration
	fn func()
}

// NewManualScheduler creates a manual scheduler at virtual time zero.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{timers: make(map[int]*manualTimer)}
}

// AfterFunc registers fn to fire when the virtual clock reaches now+d.
func (s *ManualScheduler) AfterFunc(d time.Duration, fn func()) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.timers[id] = &manualTimer{at: s.now + d, fn: fn}
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.timers, id)
	}
}

// Advance moves the virtual clock forward and fires due callbacks in
// deadline order. Callbacks run without the scheduler lock held.
func (s *ManualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	s.now += d
	type due struct {
		id int
		at time.Duration
		fn func()
	}
	var fire []due
	for id, t := range s.timers {
		if t.at <= s.now {
			fire = append(fire, due{id: id, at: t.at, fn: t.fn})
		}
	}
	for _, f := range fire {
		delete(s.timers, f.id)
	}
	sort.Slice(fire, func(i, j int) bool {
		if fire[i].at != fire[j].at {
			return fire[i].at < fire[j].at
		}
		return fire[i].id < fire[j].id
	})
	s.mu.Unlock()
	for _, f := range fire {
		f.fn()
	}
}

// Pending returns the number of timers not yet fired or canceled.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}
