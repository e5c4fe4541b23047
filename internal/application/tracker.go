package application

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bnema/levent-cli/internal/domain"
	"github.com/bnema/levent-cli/internal/ports"
	"go.uber.org/zap"
)

const (
	DefaultRequiredInteractions = 5

	// A check-in older than this breaks the streak. The extra half day over
	// one calendar day absorbs timezone and clock skew.
	streakResetAfter = 36 * time.Hour
)

type TrackerOptions struct {
	RequiredInteractions int
	Milestones           domain.Milestones
}

type InteractionResult struct {
	TodayInteractions    int
	RequiredInteractions int
	// CheckInCompleted is true only for the interaction that completed the day.
	CheckInCompleted bool
	Events           []domain.Event
}

// Tracker counts daily interactions and maintains the check-in streak.
type Tracker struct {
	store      ports.ProgressStore
	clock      ports.Clock
	notifier   ports.Notifier
	logger     *zap.Logger
	required   int
	milestones domain.Milestones

	mu          sync.Mutex
	state       domain.ProgressState
	today       domain.Date
	complete    bool
	initialized bool
}

func NewTracker(store ports.ProgressStore, clock ports.Clock, notifier ports.Notifier, logger *zap.Logger, opts TrackerOptions) *Tracker {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if notifier == nil {
		notifier = ports.NopNotifier{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.RequiredInteractions <= 0 {
		opts.RequiredInteractions = DefaultRequiredInteractions
	}
	if opts.Milestones == (domain.Milestones{}) {
		opts.Milestones = domain.DefaultMilestones()
	}

	return &Tracker{
		store:      store,
		clock:      clock,
		notifier:   notifier,
		logger:     logger.Named("tracker"),
		required:   opts.RequiredInteractions,
		milestones: opts.Milestones,
	}
}

// Initialize loads persisted progress for today. A stored interaction date
// other than today starts a fresh daily counter. A lapsed streak is reset.
func (t *Tracker) Initialize(ctx context.Context, today domain.Date) ([]domain.Event, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	events, err := t.initializeLocked(ctx, today)
	if err != nil {
		return nil, err
	}

	t.dispatch(ctx, events)
	return events, nil
}

func (t *Tracker) initializeLocked(ctx context.Context, today domain.Date) ([]domain.Event, error) {
	state, err := t.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load progress: %w", err)
	}
	state.Normalize()

	t.state = state
	t.today = today
	t.initialized = true

	dirty := false
	if state.InteractionDate == today {
		t.complete = state.TodayInteractions >= t.required
	} else {
		t.resetDayLocked(today)
		dirty = true
	}

	events := t.checkDateRolloverLocked(today.Start(t.location()))
	if len(events) > 0 {
		dirty = true
	}

	if dirty {
		if err := t.saveLocked(ctx); err != nil {
			return nil, err
		}
	}

	t.logger.Debug("progress loaded",
		zap.Stringer("today", today),
		zap.Int("today_interactions", t.state.TodayInteractions),
		zap.Int("current_streak", t.state.CurrentStreak),
		zap.Bool("check_in_complete", t.complete))

	return events, nil
}

// CheckFirstTimeUser reports true exactly once over the lifetime of the
// persisted state.
func (t *Tracker) CheckFirstTimeUser(ctx context.Context) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.ensureInitializedLocked(ctx); err != nil {
		return false, err
	}

	if t.state.FirstTimeUser {
		return false, nil
	}

	t.state.FirstTimeUser = true
	if err := t.saveLocked(ctx); err != nil {
		t.state.FirstTimeUser = false
		return false, err
	}

	t.dispatch(ctx, []domain.Event{domain.FirstTimeUser()})
	return true, nil
}

// CheckDateRollover resets the current streak when more than a day and a
// half has elapsed between the start of the last check-in day and now.
func (t *Tracker) CheckDateRollover(ctx context.Context, now time.Time) ([]domain.Event, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.ensureInitializedLocked(ctx); err != nil {
		return nil, err
	}

	events := t.checkDateRolloverLocked(now)
	if len(events) == 0 {
		return nil, nil
	}

	if err := t.saveLocked(ctx); err != nil {
		return nil, err
	}

	t.dispatch(ctx, events)
	return events, nil
}

func (t *Tracker) checkDateRolloverLocked(now time.Time) []domain.Event {
	if t.state.LastCheckInDate.IsZero() {
		return nil
	}

	elapsed := now.Sub(t.state.LastCheckInDate.Start(now.Location()))
	if elapsed <= streakResetAfter {
		return nil
	}

	t.logger.Info("streak lapsed",
		zap.Stringer("last_check_in", t.state.LastCheckInDate),
		zap.Duration("elapsed", elapsed),
		zap.Int("previous_streak", t.state.CurrentStreak))

	t.state.CurrentStreak = 0
	return []domain.Event{domain.StreakUpdated(0)}
}

// Rollover starts a new day when the clock has moved past the tracked date.
func (t *Tracker) Rollover(ctx context.Context) ([]domain.Event, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.ensureInitializedLocked(ctx); err != nil {
		return nil, err
	}

	events, rolled := t.rollDayIfNeededLocked()
	if !rolled {
		return nil, nil
	}

	if err := t.saveLocked(ctx); err != nil {
		return nil, err
	}

	t.dispatch(ctx, events)
	return events, nil
}

// LogInteraction counts one chat turn and completes the daily check-in when
// the required number of interactions is reached.
func (t *Tracker) LogInteraction(ctx context.Context) (InteractionResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.ensureInitializedLocked(ctx); err != nil {
		return InteractionResult{}, err
	}

	previous := t.state
	previousComplete := t.complete
	previousToday := t.today

	events, _ := t.rollDayIfNeededLocked()
	result := InteractionResult{RequiredInteractions: t.required}

	t.state.TotalInteractions++
	if !t.complete {
		t.state.TodayInteractions++
		if t.state.TodayInteractions >= t.required {
			events = append(events, t.completeCheckInLocked()...)
			result.CheckInCompleted = true
		}
	}

	if err := t.saveLocked(ctx); err != nil {
		t.state = previous
		t.complete = previousComplete
		t.today = previousToday
		return InteractionResult{}, err
	}

	result.TodayInteractions = t.state.TodayInteractions
	result.Events = events

	t.dispatch(ctx, events)
	return result, nil
}

func (t *Tracker) completeCheckInLocked() []domain.Event {
	t.complete = true
	t.state.LastCheckInDate = t.today
	t.state.TotalCheckIns++
	t.state.CurrentStreak++
	if t.state.CurrentStreak > t.state.LongestStreak {
		t.state.LongestStreak = t.state.CurrentStreak
	}

	streak := t.state.CurrentStreak
	t.logger.Info("daily check-in complete", zap.Int("streak", streak), zap.Stringer("date", t.today))

	events := []domain.Event{
		domain.StreakUpdated(streak),
		domain.DailyCheckInComplete(streak),
	}
	return append(events, t.checkMilestones(streak)...)
}

func (t *Tracker) checkMilestones(streak int) []domain.Event {
	if !t.milestones.IsMilestone(streak) {
		return nil
	}

	return []domain.Event{domain.MilestoneReached(t.milestones.For(streak))}
}

func (t *Tracker) rollDayIfNeededLocked() ([]domain.Event, bool) {
	now := t.clock.Now()
	today := domain.DateOf(now)
	if today == t.today {
		return nil, false
	}

	t.logger.Debug("calendar day changed", zap.Stringer("from", t.today), zap.Stringer("to", today))
	t.today = today
	t.resetDayLocked(today)

	return t.checkDateRolloverLocked(today.Start(now.Location())), true
}

func (t *Tracker) resetDayLocked(today domain.Date) {
	t.state.TodayInteractions = 0
	t.state.InteractionDate = today
	t.complete = false
}

func (t *Tracker) ensureInitializedLocked(ctx context.Context) error {
	if t.initialized {
		return nil
	}

	events, err := t.initializeLocked(ctx, domain.DateOf(t.clock.Now()))
	if err != nil {
		return err
	}

	t.dispatch(ctx, events)
	return nil
}

func (t *Tracker) saveLocked(ctx context.Context) error {
	if err := t.store.Save(ctx, t.state); err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}

func (t *Tracker) dispatch(ctx context.Context, events []domain.Event) {
	for _, event := range events {
		t.notifier.Notify(ctx, event)
	}
}

func (t *Tracker) location() *time.Location {
	return t.clock.Now().Location()
}

func (t *Tracker) CurrentStreak() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state.CurrentStreak
}

func (t *Tracker) LongestStreak() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state.LongestStreak
}

func (t *Tracker) TotalCheckIns() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state.TotalCheckIns
}

func (t *Tracker) TodayInteractions() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state.TodayInteractions
}

func (t *Tracker) InteractionsRequired() int {
	return t.required
}

func (t *Tracker) IsDailyCheckInComplete() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.complete
}

// Snapshot returns the current progress for display.
func (t *Tracker) Snapshot() ProgressStatus {
	t.mu.Lock()
	defer t.mu.Unlock()

	return ProgressStatus{
		Today:                t.today,
		LastCheckInDate:      t.state.LastCheckInDate,
		CurrentStreak:        t.state.CurrentStreak,
		LongestStreak:        t.state.LongestStreak,
		TotalCheckIns:        t.state.TotalCheckIns,
		TotalInteractions:    t.state.TotalInteractions,
		TodayInteractions:    t.state.TodayInteractions,
		RequiredInteractions: t.required,
		CheckInComplete:      t.complete,
		NextMilestone:        nextMilestone(t.milestones, t.state.CurrentStreak),
	}
}

func nextMilestone(m domain.Milestones, streak int) int {
	for _, threshold := range m.Thresholds {
		if threshold > streak {
			return threshold
		}
	}
	return 0
}
