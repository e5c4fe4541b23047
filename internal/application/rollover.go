package application

import (
	"context"
	"sync"
	"time"

	"github.com/bnema/levent-cli/internal/ports"
	"go.uber.org/zap"
)

// RolloverWatcher fires the tracker's day rollover at each local midnight.
// At most one timer is pending at a time.
type RolloverWatcher struct {
	tracker *Tracker
	clock   ports.Clock
	logger  *zap.Logger
	// after is replaceable in tests.
	after func(d time.Duration, f func()) *time.Timer

	mu      sync.Mutex
	timer   *time.Timer
	ctx     context.Context
	cancel  context.CancelFunc
	stopped bool
}

func NewRolloverWatcher(tracker *Tracker, clock ports.Clock, logger *zap.Logger) *RolloverWatcher {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &RolloverWatcher{
		tracker: tracker,
		clock:   clock,
		logger:  logger.Named("rollover"),
		after:   time.AfterFunc,
	}
}

func (w *RolloverWatcher) Start(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		return
	}

	w.ctx, w.cancel = context.WithCancel(ctx)
	w.stopped = false
	w.armLocked()
}

func (w *RolloverWatcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.stopped = true
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	if w.cancel != nil {
		w.cancel()
		w.cancel = nil
	}
}

func (w *RolloverWatcher) pending() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.timer != nil
}

func (w *RolloverWatcher) armLocked() {
	now := w.clock.Now()
	wait := untilNextMidnight(now)
	w.logger.Debug("rollover armed", zap.Duration("in", wait))
	w.timer = w.after(wait, w.fire)
}

func (w *RolloverWatcher) fire() {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return
	}
	ctx := w.ctx
	w.timer = nil
	w.mu.Unlock()

	if _, err := w.tracker.Rollover(ctx); err != nil {
		w.logger.Error("day rollover failed", zap.Error(err))
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped || w.timer != nil {
		return
	}
	w.armLocked()
}

func untilNextMidnight(now time.Time) time.Duration {
	year, month, day := now.Date()
	next := time.Date(year, month, day+1, 0, 0, 0, 0, now.Location())
	// A small margin keeps the timer from landing a hair before midnight.
	return next.Sub(now) + time.Second
}
