package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bnema/levent-cli/internal/adapters/repo/prefs"
	"github.com/bnema/levent-cli/internal/domain"
	"github.com/bnema/levent-cli/internal/ports"
	"github.com/redis/go-redis/v9"
)

const (
	DefaultKey         = "levent:prefs"
	defaultDialTimeout = 5 * time.Second
)

var ErrConnection = errors.New("redis connection failed")

type Config struct {
	Addr        string
	Password    string
	DB          int
	Key         string
	DialTimeout time.Duration
}

// ProgressStore keeps progress in a single Redis hash whose fields are the
// persisted key names.
type ProgressStore struct {
	client redis.UniversalClient
	key    string
}

var _ ports.ProgressStore = (*ProgressStore)(nil)

// Open connects and pings the server before returning the store.
func Open(ctx context.Context, cfg Config) (*ProgressStore, error) {
	if cfg.DialTimeout <= 0 {
		cfg.DialTimeout = defaultDialTimeout
	}

	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: cfg.DialTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, cfg.DialTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%w: %s: %v", ErrConnection, cfg.Addr, err)
	}

	return NewProgressStore(client, cfg.Key), nil
}

func NewProgressStore(client redis.UniversalClient, key string) *ProgressStore {
	if key == "" {
		key = DefaultKey
	}

	return &ProgressStore{client: client, key: key}
}

func (s *ProgressStore) Close() error {
	return s.client.Close()
}

func (s *ProgressStore) Load(ctx context.Context) (domain.ProgressState, error) {
	values, err := s.client.HGetAll(ctx, s.key).Result()
	if err != nil {
		return domain.ProgressState{}, fmt.Errorf("read prefs hash %s: %w", s.key, err)
	}

	return prefs.Decode(values), nil
}

func (s *ProgressStore) Save(ctx context.Context, state domain.ProgressState) error {
	encoded := prefs.Encode(state)
	fields := make(map[string]interface{}, len(encoded))
	for key, value := range encoded {
		fields[key] = value
	}

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, s.key, fields)
		return nil
	})
	if err != nil {
		return fmt.Errorf("write prefs hash %s: %w", s.key, err)
	}

	return nil
}
