package application

import (
	"context"
	"sync"
	"time"

	"github.com/bnema/levent-cli/internal/domain"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(now time.Time) *fakeClock {
	return &fakeClock{now: now}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type memoryStore struct {
	mu    sync.Mutex
	state domain.ProgressState
	saves int
}

func (s *memoryStore) Load(context.Context) (domain.ProgressState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state, nil
}

func (s *memoryStore) Save(_ context.Context, state domain.ProgressState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
	s.saves++
	return nil
}

func (s *memoryStore) Snapshot() domain.ProgressState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []domain.Event
}

func (n *recordingNotifier) Notify(_ context.Context, event domain.Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
}

func (n *recordingNotifier) Kinds() []domain.EventKind {
	n.mu.Lock()
	defer n.mu.Unlock()
	kinds := make([]domain.EventKind, 0, len(n.events))
	for _, event := range n.events {
		kinds = append(kinds, event.Kind)
	}
	return kinds
}

func (n *recordingNotifier) Milestones() []int {
	n.mu.Lock()
	defer n.mu.Unlock()
	var streaks []int
	for _, event := range n.events {
		if event.Kind == domain.EventMilestoneReached {
			streaks = append(streaks, event.Streak)
		}
	}
	return streaks
}

func (n *recordingNotifier) Reset() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = nil
}

type fixedRandom struct {
	value int
}

func (r fixedRandom) IntN(n int) int {
	if r.value >= n {
		return n - 1
	}
	return r.value
}

func day(year int, month time.Month, dayOfMonth int) time.Time {
	return time.Date(year, month, dayOfMonth, 9, 30, 0, 0, time.UTC)
}
