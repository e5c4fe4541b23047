package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	yamlcatalog "github.com/bnema/levent-cli/internal/adapters/catalog/yaml"
	"github.com/bnema/levent-cli/internal/adapters/chat/offline"
	"github.com/bnema/levent-cli/internal/adapters/chat/openai"
	"github.com/bnema/levent-cli/internal/adapters/notify/zaplog"
	statusadapter "github.com/bnema/levent-cli/internal/adapters/render/status"
	redisrepo "github.com/bnema/levent-cli/internal/adapters/repo/redis"
	sqliterepo "github.com/bnema/levent-cli/internal/adapters/repo/sqlite"
	tomlrepo "github.com/bnema/levent-cli/internal/adapters/repo/toml"
	chainstore "github.com/bnema/levent-cli/internal/adapters/secrets/chain"
	filestore "github.com/bnema/levent-cli/internal/adapters/secrets/file"
	"github.com/bnema/levent-cli/internal/application"
	"github.com/bnema/levent-cli/internal/config"
	"github.com/bnema/levent-cli/internal/domain"
	"github.com/bnema/levent-cli/internal/logging"
	"github.com/bnema/levent-cli/internal/ports"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const openAIKeyEnv = "OPENAI_API_KEY"

type app struct {
	cfg            config.Config
	viper          *viper.Viper
	logger         *zap.Logger
	credentials    *application.CredentialService
	catalogSource  ports.CatalogSource
	statusRenderer func(application.ProgressStatus, statusadapter.RenderOptions) (string, error)
	httpClient     *http.Client
	clock          ports.Clock
	random         ports.Random

	mu       sync.Mutex
	tracker  *application.Tracker
	selector *application.Selector
	closers  []func() error
}

func wireApp() (*app, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	cfg, v, err := config.Load(homeDir)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(cfg.Log.Level, os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	secretStore, err := newSecretStore(cfg.Secrets)
	if err != nil {
		return nil, fmt.Errorf("wire secret store: %w", err)
	}

	return &app{
		cfg:            cfg,
		viper:          v,
		logger:         logger,
		credentials:    application.NewCredentialService(secretStore, cfg.Chat.APIKeyRef),
		catalogSource:  yamlcatalog.NewSource(cfg.Playbook.Path),
		statusRenderer: statusadapter.Render,
		httpClient:     http.DefaultClient,
		clock:          ports.SystemClock{},
		random:         ports.SystemRandom{},
	}, nil
}

func newSecretStore(cfg config.SecretsConfig) (ports.SecretStore, error) {
	if cfg.Backend == config.SecretsFile {
		return filestore.NewStore(cfg.Dir), nil
	}
	return chainstore.NewPassFirstWithFileFallback(cfg.Dir)
}

// progressTracker opens the configured progress store on first use and
// loads today's state.
func (a *app) progressTracker(ctx context.Context) (*application.Tracker, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.tracker != nil {
		return a.tracker, nil
	}

	store, err := a.openProgressStore(ctx)
	if err != nil {
		return nil, err
	}

	tracker := application.NewTracker(store, a.clock, zaplog.NewNotifier(a.logger), a.logger, application.TrackerOptions{
		RequiredInteractions: a.cfg.Progress.RequiredInteractions,
		Milestones:           a.cfg.Progress.Milestones,
	})
	if _, err := tracker.Initialize(ctx, domain.DateOf(a.clock.Now())); err != nil {
		return nil, err
	}

	a.tracker = tracker
	return tracker, nil
}

func (a *app) openProgressStore(ctx context.Context) (ports.ProgressStore, error) {
	switch a.cfg.Progress.Backend {
	case config.BackendSQLite:
		store, err := sqliterepo.Open(ctx, a.cfg.Progress.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite progress store: %w", err)
		}
		a.closers = append(a.closers, store.Close)
		return store, nil
	case config.BackendRedis:
		store, err := redisrepo.Open(ctx, redisrepo.Config{
			Addr:     a.cfg.Redis.Addr,
			Password: a.cfg.Redis.Password,
			DB:       a.cfg.Redis.DB,
			Key:      a.cfg.Redis.Key,
		})
		if err != nil {
			return nil, fmt.Errorf("open redis progress store: %w", err)
		}
		a.closers = append(a.closers, store.Close)
		return store, nil
	default:
		a.viper.Set(config.KeyProgressPath, a.cfg.Progress.Path)
		store, err := tomlrepo.NewProgressStore(a.viper)
		if err != nil {
			return nil, fmt.Errorf("open toml progress store: %w", err)
		}
		return store, nil
	}
}

func (a *app) playbookSelector(ctx context.Context) (*application.Selector, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.selector != nil {
		return a.selector, nil
	}

	catalog, err := a.catalogSource.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load playbook: %w", err)
	}

	a.selector = application.NewSelector(catalog, a.random)
	return a.selector, nil
}

// chatBackend returns the OpenAI client when chat.mode is openai and a key
// is available, otherwise the offline responder.
func (a *app) chatBackend(ctx context.Context) (ports.ChatBackend, error) {
	offlineBackend := offline.NewResponder(a.random, a.cfg.Chat.OfflineDelay)
	if a.cfg.Chat.Mode != config.ChatModeOpenAI {
		return offlineBackend, nil
	}

	apiKey, err := a.credentials.APIKey(ctx)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrSecretNotFound):
		apiKey = os.Getenv(openAIKeyEnv)
	default:
		return nil, fmt.Errorf("read api key: %w", err)
	}

	if apiKey == "" {
		a.logger.Warn("no openai api key configured, using offline replies",
			zap.String("secret_ref", a.credentials.Ref()))
		return offlineBackend, nil
	}

	return openai.Client{
		BaseURL:        a.cfg.Chat.BaseURL,
		APIKey:         apiKey,
		Model:          a.cfg.Chat.Model,
		MaxTokens:      a.cfg.Chat.MaxTokens,
		Temperature:    a.cfg.Chat.Temperature,
		HTTPClient:     a.httpClient,
		RequestTimeout: a.cfg.Chat.Timeout,
	}, nil
}

func (a *app) now() time.Time {
	return a.clock.Now()
}

func (a *app) close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	var errs []error
	for _, closeFn := range a.closers {
		errs = append(errs, closeFn())
	}
	a.closers = nil
	_ = a.logger.Sync()

	return errors.Join(errs...)
}
