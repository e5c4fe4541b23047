package toml

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bnema/levent-cli/internal/domain"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, path string) *ProgressStore {
	t.Helper()

	config := viper.New()
	config.Set("progress.path", path)

	store, err := NewProgressStore(config)
	require.NoError(t, err)
	return store
}

func sampleState() domain.ProgressState {
	return domain.ProgressState{
		LastCheckInDate:   domain.NewDate(2024, time.March, 9),
		CurrentStreak:     3,
		LongestStreak:     8,
		TotalCheckIns:     14,
		TotalInteractions: 77,
		TodayInteractions: 2,
		InteractionDate:   domain.NewDate(2024, time.March, 10),
		FirstTimeUser:     true,
	}
}

func TestProgressStoreRoundTrip(t *testing.T) {
	t.Parallel()

	store := newTestStore(t, filepath.Join(t.TempDir(), "progress.toml"))
	want := sampleState()

	require.NoError(t, store.Save(context.Background(), want))

	got, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestProgressStoreWritesPersistedKeyNames(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "progress.toml")
	store := newTestStore(t, path)
	require.NoError(t, store.Save(context.Background(), sampleState()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	content := string(data)
	assert.Contains(t, content, "version = 1")
	assert.Contains(t, content, "[prefs]")
	for _, line := range []string{
		"LastCheckInDate = '2024-03-09'",
		"CurrentStreak = 3",
		"LongestStreak = 8",
		"TotalCheckIns = 14",
		"TotalInteractions = 77",
		"TodayInteractions = 2",
		"InteractionDate = '2024-03-10'",
		"FirstTimeUser = 1",
	} {
		assert.Contains(t, content, line)
	}
}

func TestProgressStoreMissingFileLoadsZeroState(t *testing.T) {
	t.Parallel()

	store := newTestStore(t, filepath.Join(t.TempDir(), "missing", "progress.toml"))

	state, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.ProgressState{}, state)
}

func TestProgressStoreMalformedDatesFailOpen(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "progress.toml")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join([]string{
		"version = 1",
		"",
		"[prefs]",
		"LastCheckInDate = 'yesterday'",
		"CurrentStreak = 4",
		"LongestStreak = 2",
		"InteractionDate = '2024-13-01'",
		"",
	}, "\n")), 0o600))

	state, err := newTestStore(t, path).Load(context.Background())
	require.NoError(t, err)
	assert.True(t, state.LastCheckInDate.IsZero())
	assert.True(t, state.InteractionDate.IsZero())
	assert.Equal(t, 4, state.CurrentStreak)
	assert.Equal(t, 4, state.LongestStreak, "longest is never below current")
}

func TestProgressStoreSaveCreatesDefaultPathAndEnforcesPermissions(t *testing.T) {
	homeDir := t.TempDir()
	t.Setenv("HOME", homeDir)

	store, err := NewProgressStore(viper.New())
	require.NoError(t, err)
	require.NoError(t, store.Save(context.Background(), sampleState()))

	path := filepath.Join(homeDir, ".levent", "progress.toml")
	assert.Equal(t, path, store.Path())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestProgressStoreMalformedTOMLReturnsError(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "progress.toml")
	require.NoError(t, os.WriteFile(path, []byte("prefs = ["), 0o600))

	_, err := newTestStore(t, path).Load(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "decode progress file")
}

func TestProgressStoreSaveCanceledContextReturnsContextError(t *testing.T) {
	t.Parallel()

	store := newTestStore(t, filepath.Join(t.TempDir(), "progress.toml"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := store.Save(ctx, sampleState())
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestProgressStoreConcurrentSavesAcrossInstancesLeaveValidFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "progress.toml")
	storeA := newTestStore(t, path)
	storeB := newTestStore(t, path)

	const perStoreWrites = 50
	start := make(chan struct{})
	errCh := make(chan error, perStoreWrites*2)
	var wg sync.WaitGroup
	wg.Add(2)

	write := func(store *ProgressStore, offset int) {
		defer wg.Done()
		<-start
		for i := 0; i < perStoreWrites; i++ {
			errCh <- store.Save(context.Background(), domain.ProgressState{TotalInteractions: offset + i})
		}
	}

	go write(storeA, 0)
	go write(storeB, 1000)

	close(start)
	wg.Wait()
	close(errCh)

	for err := range errCh {
		require.NoError(t, err)
	}

	state, err := storeA.Load(context.Background())
	require.NoError(t, err)
	assert.Contains(t, []int{perStoreWrites - 1, 1000 + perStoreWrites - 1}, state.TotalInteractions)
}

func TestProgressStoreFutureSchemaVersionReturnsError(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "progress.toml")
	require.NoError(t, os.WriteFile(path, []byte("version = 999\n"), 0o600))

	_, err := newTestStore(t, path).Load(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "unsupported progress schema version")
}
