package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bnema/levent-cli/internal/domain"
	"github.com/bnema/levent-cli/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestTracker(t *testing.T, store *memoryStore, clock *fakeClock) (*Tracker, *recordingNotifier) {
	t.Helper()

	notifier := &recordingNotifier{}
	tracker := NewTracker(store, clock, notifier, nil, TrackerOptions{})
	_, err := tracker.Initialize(context.Background(), domain.DateOf(clock.Now()))
	require.NoError(t, err)

	return tracker, notifier
}

func logN(t *testing.T, tracker *Tracker, n int) InteractionResult {
	t.Helper()

	var result InteractionResult
	for i := 0; i < n; i++ {
		var err error
		result, err = tracker.LogInteraction(context.Background())
		require.NoError(t, err)
	}
	return result
}

func TestTrackerCountsInteractionsUntilCheckInCompletes(t *testing.T) {
	t.Parallel()

	store := &memoryStore{}
	clock := newFakeClock(day(2024, time.March, 10))
	tracker, notifier := newTestTracker(t, store, clock)

	for i := 1; i <= 4; i++ {
		result, err := tracker.LogInteraction(context.Background())
		require.NoError(t, err)
		assert.Equal(t, i, result.TodayInteractions)
		assert.False(t, result.CheckInCompleted)
		assert.Empty(t, result.Events)
	}
	assert.False(t, tracker.IsDailyCheckInComplete())

	result, err := tracker.LogInteraction(context.Background())
	require.NoError(t, err)
	assert.True(t, result.CheckInCompleted)
	assert.Equal(t, 5, result.TodayInteractions)
	assert.Equal(t, []domain.Event{
		domain.StreakUpdated(1),
		domain.DailyCheckInComplete(1),
	}, result.Events)

	for i := 0; i < 3; i++ {
		result, err = tracker.LogInteraction(context.Background())
		require.NoError(t, err)
		assert.False(t, result.CheckInCompleted)
		assert.Equal(t, 5, result.TodayInteractions)
	}

	assert.True(t, tracker.IsDailyCheckInComplete())
	assert.Equal(t, 1, tracker.CurrentStreak())
	assert.Equal(t, 1, tracker.TotalCheckIns())
	assert.Equal(t, 5, tracker.TodayInteractions())

	persisted := store.Snapshot()
	assert.Equal(t, 8, persisted.TotalInteractions)
	assert.Equal(t, domain.NewDate(2024, time.March, 10), persisted.LastCheckInDate)
	assert.Equal(t, domain.NewDate(2024, time.March, 10), persisted.InteractionDate)
	assert.Equal(t, []domain.EventKind{domain.EventStreakUpdated, domain.EventDailyCheckInComplete}, notifier.Kinds())
}

func TestTrackerRespectsConfiguredRequiredInteractions(t *testing.T) {
	t.Parallel()

	store := &memoryStore{}
	clock := newFakeClock(day(2024, time.March, 10))
	tracker := NewTracker(store, clock, nil, nil, TrackerOptions{RequiredInteractions: 2})

	assert.Equal(t, 2, tracker.InteractionsRequired())
	result := logN(t, tracker, 2)
	assert.True(t, result.CheckInCompleted)
	assert.Equal(t, 2, result.RequiredInteractions)
}

func TestTrackerStreakGrowsAcrossConsecutiveDays(t *testing.T) {
	t.Parallel()

	store := &memoryStore{}
	clock := newFakeClock(day(2024, time.March, 10))
	tracker, _ := newTestTracker(t, store, clock)

	for i := 1; i <= 4; i++ {
		logN(t, tracker, 5)
		assert.Equal(t, i, tracker.CurrentStreak())
		assert.Equal(t, i, tracker.LongestStreak())
		clock.Advance(24 * time.Hour)
	}

	assert.Equal(t, 4, tracker.TotalCheckIns())
}

func TestTrackerResetsDailyCounterOnceAtDayChange(t *testing.T) {
	t.Parallel()

	store := &memoryStore{}
	clock := newFakeClock(time.Date(2024, time.March, 10, 23, 58, 0, 0, time.UTC))
	tracker, _ := newTestTracker(t, store, clock)

	logN(t, tracker, 3)
	assert.Equal(t, 3, tracker.TodayInteractions())

	clock.Advance(5 * time.Minute)
	result := logN(t, tracker, 1)
	assert.Equal(t, 1, result.TodayInteractions)

	result = logN(t, tracker, 1)
	assert.Equal(t, 2, result.TodayInteractions)
	assert.Equal(t, domain.NewDate(2024, time.March, 11), store.Snapshot().InteractionDate)
	assert.Equal(t, 5, store.Snapshot().TotalInteractions)
}

func TestTrackerCheckDateRolloverThreshold(t *testing.T) {
	t.Parallel()

	lastCheckIn := domain.NewDate(2024, time.March, 10)
	start := lastCheckIn.Start(time.UTC)

	testCases := []struct {
		name       string
		elapsed    time.Duration
		wantStreak int
		wantEvents []domain.Event
	}{
		{name: "1.2 days keeps streak", elapsed: time.Duration(1.2 * float64(24*time.Hour)), wantStreak: 4},
		{name: "exactly 1.5 days keeps streak", elapsed: 36 * time.Hour, wantStreak: 4},
		{name: "1.6 days resets streak", elapsed: time.Duration(1.6 * float64(24*time.Hour)), wantStreak: 0, wantEvents: []domain.Event{domain.StreakUpdated(0)}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			store := &memoryStore{state: domain.ProgressState{
				LastCheckInDate: lastCheckIn,
				InteractionDate: lastCheckIn,
				CurrentStreak:   4,
				LongestStreak:   6,
			}}
			clock := newFakeClock(start.Add(10 * time.Hour))
			tracker, _ := newTestTracker(t, store, clock)

			events, err := tracker.CheckDateRollover(context.Background(), start.Add(tc.elapsed))
			require.NoError(t, err)
			assert.Equal(t, tc.wantEvents, events)
			assert.Equal(t, tc.wantStreak, tracker.CurrentStreak())
			assert.Equal(t, tc.wantStreak, store.Snapshot().CurrentStreak)
			assert.Equal(t, 6, tracker.LongestStreak())
		})
	}
}

func TestTrackerCheckDateRolloverWithoutCheckInIsNoop(t *testing.T) {
	t.Parallel()

	store := &memoryStore{}
	clock := newFakeClock(day(2024, time.March, 10))
	tracker, _ := newTestTracker(t, store, clock)
	saves := store.saves

	events, err := tracker.CheckDateRollover(context.Background(), clock.Now().Add(90*24*time.Hour))
	require.NoError(t, err)
	assert.Empty(t, events)
	assert.Equal(t, saves, store.saves)
}

func TestTrackerMissedDayBreaksStreak(t *testing.T) {
	t.Parallel()

	store := &memoryStore{}
	clock := newFakeClock(day(2024, time.March, 10))
	tracker, _ := newTestTracker(t, store, clock)

	logN(t, tracker, 5)
	clock.Advance(24 * time.Hour)
	logN(t, tracker, 5)
	require.Equal(t, 2, tracker.CurrentStreak())

	clock.Advance(48 * time.Hour)
	result := logN(t, tracker, 1)
	assert.Equal(t, domain.StreakUpdated(0), result.Events[0])
	assert.Equal(t, 0, tracker.CurrentStreak())

	logN(t, tracker, 4)
	assert.Equal(t, 1, tracker.CurrentStreak())
	assert.Equal(t, 2, tracker.LongestStreak())
}

func TestTrackerInitializeResetsLapsedStreak(t *testing.T) {
	t.Parallel()

	store := &memoryStore{state: domain.ProgressState{
		LastCheckInDate:   domain.NewDate(2024, time.March, 1),
		InteractionDate:   domain.NewDate(2024, time.March, 1),
		TodayInteractions: 5,
		CurrentStreak:     9,
		LongestStreak:     9,
	}}
	clock := newFakeClock(day(2024, time.March, 10))
	notifier := &recordingNotifier{}
	tracker := NewTracker(store, clock, notifier, nil, TrackerOptions{})

	events, err := tracker.Initialize(context.Background(), domain.DateOf(clock.Now()))
	require.NoError(t, err)
	assert.Equal(t, []domain.Event{domain.StreakUpdated(0)}, events)
	assert.Equal(t, []domain.EventKind{domain.EventStreakUpdated}, notifier.Kinds())

	persisted := store.Snapshot()
	assert.Equal(t, 0, persisted.CurrentStreak)
	assert.Equal(t, 9, persisted.LongestStreak)
	assert.Equal(t, 0, persisted.TodayInteractions)
	assert.Equal(t, domain.NewDate(2024, time.March, 10), persisted.InteractionDate)
	assert.False(t, tracker.IsDailyCheckInComplete())
}

func TestTrackerInitializeRestoresSameDayCompletion(t *testing.T) {
	t.Parallel()

	today := domain.NewDate(2024, time.March, 10)
	store := &memoryStore{state: domain.ProgressState{
		LastCheckInDate:   today,
		InteractionDate:   today,
		TodayInteractions: 5,
		TotalInteractions: 5,
		TotalCheckIns:     1,
		CurrentStreak:     1,
		LongestStreak:     1,
	}}
	clock := newFakeClock(day(2024, time.March, 10))
	tracker, _ := newTestTracker(t, store, clock)

	assert.True(t, tracker.IsDailyCheckInComplete())
	assert.Equal(t, 0, store.saves, "same-day load must not rewrite state")

	result := logN(t, tracker, 1)
	assert.False(t, result.CheckInCompleted)
	assert.Equal(t, 1, tracker.CurrentStreak())
}

func TestTrackerMilestonesFireOnceAtEachThreshold(t *testing.T) {
	t.Parallel()

	store := &memoryStore{}
	clock := newFakeClock(day(2024, time.January, 1))
	tracker, notifier := newTestTracker(t, store, clock)

	for i := 0; i < 31; i++ {
		logN(t, tracker, 5)
		clock.Advance(24 * time.Hour)
	}

	assert.Equal(t, []int{3, 7, 14, 30}, notifier.Milestones())
	assert.Equal(t, 31, tracker.CurrentStreak())
}

func TestTrackerMilestoneEventCarriesMessage(t *testing.T) {
	t.Parallel()

	store := &memoryStore{state: domain.ProgressState{
		LastCheckInDate: domain.NewDate(2024, time.March, 9),
		InteractionDate: domain.NewDate(2024, time.March, 9),
		CurrentStreak:   6,
		LongestStreak:   6,
	}}
	clock := newFakeClock(day(2024, time.March, 10))
	tracker, _ := newTestTracker(t, store, clock)

	result := logN(t, tracker, 5)
	require.Len(t, result.Events, 3)

	milestone := result.Events[2]
	assert.Equal(t, domain.EventMilestoneReached, milestone.Kind)
	require.NotNil(t, milestone.Milestone)
	assert.Equal(t, "7 Day Streak!", milestone.Milestone.Headline)
	assert.Equal(t, domain.DefaultMilestones().Message(7), milestone.Milestone.Message)
}

func TestTrackerCheckFirstTimeUserOnceAcrossReloads(t *testing.T) {
	t.Parallel()

	store := &memoryStore{}
	clock := newFakeClock(day(2024, time.March, 10))
	tracker, notifier := newTestTracker(t, store, clock)

	first, err := tracker.CheckFirstTimeUser(context.Background())
	require.NoError(t, err)
	assert.True(t, first)

	again, err := tracker.CheckFirstTimeUser(context.Background())
	require.NoError(t, err)
	assert.False(t, again)
	assert.Equal(t, []domain.EventKind{domain.EventFirstTimeUser}, notifier.Kinds())

	reloaded, _ := newTestTracker(t, store, clock)
	afterReload, err := reloaded.CheckFirstTimeUser(context.Background())
	require.NoError(t, err)
	assert.False(t, afterReload)
}

func TestTrackerStateSurvivesReload(t *testing.T) {
	t.Parallel()

	store := &memoryStore{}
	clock := newFakeClock(day(2024, time.March, 10))
	tracker, _ := newTestTracker(t, store, clock)

	logN(t, tracker, 5)
	clock.Advance(24 * time.Hour)
	logN(t, tracker, 2)
	before := tracker.Snapshot()

	reloaded, _ := newTestTracker(t, store, clock)
	assert.Equal(t, before, reloaded.Snapshot())
}

func TestTrackerInitializesLazily(t *testing.T) {
	t.Parallel()

	store := &memoryStore{}
	clock := newFakeClock(day(2024, time.March, 10))
	tracker := NewTracker(store, clock, nil, nil, TrackerOptions{})

	result, err := tracker.LogInteraction(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.TodayInteractions)
	assert.Equal(t, domain.NewDate(2024, time.March, 10), store.Snapshot().InteractionDate)
}

func TestTrackerRolloverStartsNewDay(t *testing.T) {
	t.Parallel()

	store := &memoryStore{}
	clock := newFakeClock(day(2024, time.March, 10))
	tracker, _ := newTestTracker(t, store, clock)
	logN(t, tracker, 5)

	events, err := tracker.Rollover(context.Background())
	require.NoError(t, err)
	assert.Empty(t, events)
	assert.True(t, tracker.IsDailyCheckInComplete(), "same day rollover is a no-op")

	clock.Advance(24 * time.Hour)
	_, err = tracker.Rollover(context.Background())
	require.NoError(t, err)
	assert.False(t, tracker.IsDailyCheckInComplete())
	assert.Equal(t, 0, tracker.TodayInteractions())
	assert.Equal(t, 1, tracker.CurrentStreak())
}

func TestTrackerSnapshotReportsNextMilestone(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		streak int
		want   int
	}{
		{streak: 0, want: 3},
		{streak: 3, want: 7},
		{streak: 13, want: 14},
		{streak: 30, want: 0},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, nextMilestone(domain.DefaultMilestones(), tc.streak))
	}

	store := &memoryStore{}
	clock := newFakeClock(day(2024, time.March, 10))
	tracker, _ := newTestTracker(t, store, clock)
	logN(t, tracker, 2)

	status := tracker.Snapshot()
	assert.Equal(t, 3, status.NextMilestone)
	assert.Equal(t, 3, status.RemainingInteractions())
	assert.Equal(t, domain.NewDate(2024, time.March, 10), status.Today)
}

func TestTrackerLoadErrorIsReturned(t *testing.T) {
	t.Parallel()

	store := mocks.NewMockProgressStore(t)
	loadErr := errors.New("disk unreadable")
	store.EXPECT().Load(mock.Anything).Return(domain.ProgressState{}, loadErr)

	tracker := NewTracker(store, newFakeClock(day(2024, time.March, 10)), nil, nil, TrackerOptions{})
	_, err := tracker.Initialize(context.Background(), domain.NewDate(2024, time.March, 10))
	require.ErrorIs(t, err, loadErr)
}

func TestTrackerSaveErrorRollsBackInteraction(t *testing.T) {
	t.Parallel()

	today := domain.NewDate(2024, time.March, 10)
	store := mocks.NewMockProgressStore(t)
	store.EXPECT().Load(mock.Anything).Return(domain.ProgressState{InteractionDate: today, TodayInteractions: 4, TotalInteractions: 4}, nil)

	saveErr := errors.New("disk full")
	store.EXPECT().Save(mock.Anything, mock.Anything).Return(saveErr).Once()

	notifier := mocks.NewMockNotifier(t)
	tracker := NewTracker(store, newFakeClock(day(2024, time.March, 10)), notifier, nil, TrackerOptions{})
	_, err := tracker.Initialize(context.Background(), today)
	require.NoError(t, err)

	_, err = tracker.LogInteraction(context.Background())
	require.ErrorIs(t, err, saveErr)
	assert.Equal(t, 4, tracker.TodayInteractions())
	assert.Equal(t, 0, tracker.CurrentStreak())
	assert.False(t, tracker.IsDailyCheckInComplete())
}
