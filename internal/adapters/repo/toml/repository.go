package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/bnema/levent-cli/internal/adapters/repo/prefs"
	"github.com/bnema/levent-cli/internal/domain"
	"github.com/bnema/levent-cli/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	progressPathKey    = "progress.path"
	progressFileMode   = 0o600
	progressDirMode    = 0o700
	progressConfigDir  = ".levent"
	progressConfigFile = "progress.toml"
	tempFilePattern    = ".progress-*.toml.tmp"
)

// ProgressStore keeps progress in a single TOML file.
type ProgressStore struct {
	path string
	mu   *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.ProgressStore = (*ProgressStore)(nil)

func NewProgressStore(cfg *viper.Viper) (*ProgressStore, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	path := cfg.GetString(progressPathKey)
	if path == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		path = filepath.Join(homeDir, progressConfigDir, progressConfigFile)
	}

	path, err := normalizePath(path)
	if err != nil {
		return nil, err
	}

	return &ProgressStore{path: path, mu: lockForPath(path)}, nil
}

func (s *ProgressStore) Path() string {
	return s.path
}

func (s *ProgressStore) Load(ctx context.Context) (domain.ProgressState, error) {
	if err := ctx.Err(); err != nil {
		return domain.ProgressState{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	file, err := s.readSchema()
	if err != nil {
		return domain.ProgressState{}, err
	}

	return fromSchema(file.Prefs), nil
}

func (s *ProgressStore) Save(ctx context.Context, state domain.ProgressState) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.readSchema()
	if err != nil {
		return err
	}
	file.Prefs = toSchema(state)

	if err := ctx.Err(); err != nil {
		return err
	}

	return s.writeSchema(file)
}

func (s *ProgressStore) readSchema() (fileSchema, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fileSchema{}, nil
		}
		return fileSchema{}, fmt.Errorf("read progress file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode progress file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func (s *ProgressStore) writeSchema(file fileSchema) error {
	file.applyDefaults()

	if err := os.MkdirAll(filepath.Dir(s.path), progressDirMode); err != nil {
		return fmt.Errorf("create progress directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode progress file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(s.path), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp progress file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp progress file: %w", err)
	}

	if err := tempFile.Chmod(progressFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp progress file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp progress file: %w", err)
	}

	if err := os.Rename(tempName, s.path); err != nil {
		return fmt.Errorf("replace progress file: %w", err)
	}

	cleanup = false
	return nil
}

func normalizePath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve progress path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

func toSchema(state domain.ProgressState) prefsSchema {
	schema := prefsSchema{
		LastCheckInDate:   state.LastCheckInDate.String(),
		CurrentStreak:     state.CurrentStreak,
		LongestStreak:     state.LongestStreak,
		TotalCheckIns:     state.TotalCheckIns,
		TotalInteractions: state.TotalInteractions,
		TodayInteractions: state.TodayInteractions,
		InteractionDate:   state.InteractionDate.String(),
	}
	if state.FirstTimeUser {
		schema.FirstTimeUser = 1
	}

	return schema
}

func fromSchema(schema prefsSchema) domain.ProgressState {
	state := domain.ProgressState{
		LastCheckInDate:   prefs.Date(schema.LastCheckInDate),
		CurrentStreak:     schema.CurrentStreak,
		LongestStreak:     schema.LongestStreak,
		TotalCheckIns:     schema.TotalCheckIns,
		TotalInteractions: schema.TotalInteractions,
		TodayInteractions: schema.TodayInteractions,
		InteractionDate:   prefs.Date(schema.InteractionDate),
		FirstTimeUser:     schema.FirstTimeUser != 0,
	}
	state.Normalize()

	return state
}
