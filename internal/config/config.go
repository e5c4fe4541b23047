package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/bnema/levent-cli/internal/domain"
	"github.com/bnema/levent-cli/internal/logging"
	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "toml"
	configDir  = ".levent"
	envPrefix  = "LVJ"

	BackendTOML   = "toml"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"

	ChatModeOffline = "offline"
	ChatModeOpenAI  = "openai"

	SecretsChain = "chain"
	SecretsFile  = "file"
)

const (
	KeyProgressBackend              = "progress.backend"
	KeyProgressPath                 = "progress.path"
	KeyProgressSQLitePath           = "progress.sqlite_path"
	KeyProgressRequiredInteractions = "progress.required_interactions"
	KeyProgressMilestones           = "progress.milestones"
	KeyRedisAddr                    = "redis.addr"
	KeyRedisPassword                = "redis.password"
	KeyRedisDB                      = "redis.db"
	KeyRedisKey                     = "redis.key"
	KeyPlaybookPath                 = "playbook.path"
	KeyChatMode                     = "chat.mode"
	KeyChatModel                    = "chat.model"
	KeyChatMaxTokens                = "chat.max_tokens"
	KeyChatTemperature              = "chat.temperature"
	KeyChatBaseURL                  = "chat.base_url"
	KeyChatTimeout                  = "chat.timeout"
	KeyChatOfflineDelay             = "chat.offline_delay"
	KeyChatAPIKeyRef                = "chat.api_key_ref"
	KeySecretsBackend               = "secrets.backend"
	KeySecretsDir                   = "secrets.dir"
	KeyLogLevel                     = "log.level"
)

type Config struct {
	HomeDir  string
	Progress ProgressConfig
	Redis    RedisConfig
	Playbook PlaybookConfig
	Chat     ChatConfig
	Secrets  SecretsConfig
	Log      LogConfig
}

type ProgressConfig struct {
	Backend              string
	Path                 string
	SQLitePath           string
	RequiredInteractions int
	Milestones           domain.Milestones
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Key      string
}

type PlaybookConfig struct {
	// Path is empty when the built-in playbook is used.
	Path string
}

type ChatConfig struct {
	Mode         string
	Model        string
	MaxTokens    int
	Temperature  float64
	BaseURL      string
	Timeout      time.Duration
	OfflineDelay time.Duration
	APIKeyRef    string
}

type SecretsConfig struct {
	// Backend is "chain" (pass, then files) or "file" (files only).
	Backend string
	Dir     string
}

type LogConfig struct {
	Level string
}

// Dir returns the directory holding config, progress and file secrets.
func Dir(homeDir string) string {
	return filepath.Join(homeDir, configDir)
}

// New returns a viper instance with defaults, the config file search path
// and LVJ_ environment overrides registered.
func New(homeDir string) *viper.Viper {
	v := viper.New()
	dir := Dir(homeDir)

	v.SetConfigName(configName)
	v.SetConfigType(configType)
	v.AddConfigPath(dir)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyProgressBackend, BackendTOML)
	v.SetDefault(KeyProgressPath, filepath.Join(dir, "progress.toml"))
	v.SetDefault(KeyProgressSQLitePath, filepath.Join(dir, "progress.db"))
	v.SetDefault(KeyProgressRequiredInteractions, 5)
	v.SetDefault(KeyProgressMilestones, []int{3, 7, 14, 30})
	v.SetDefault(KeyRedisAddr, "localhost:6379")
	v.SetDefault(KeyRedisDB, 0)
	v.SetDefault(KeyRedisKey, "levent:prefs")
	v.SetDefault(KeyPlaybookPath, "")
	v.SetDefault(KeyChatMode, ChatModeOffline)
	v.SetDefault(KeyChatModel, "gpt-3.5-turbo")
	v.SetDefault(KeyChatMaxTokens, 150)
	v.SetDefault(KeyChatTemperature, 0.7)
	v.SetDefault(KeyChatBaseURL, "https://api.openai.com/v1/")
	v.SetDefault(KeyChatTimeout, 30*time.Second)
	v.SetDefault(KeyChatOfflineDelay, time.Second)
	v.SetDefault(KeyChatAPIKeyRef, "levent/openai/api_key")
	v.SetDefault(KeySecretsBackend, SecretsChain)
	v.SetDefault(KeySecretsDir, filepath.Join(dir, "secrets"))
	v.SetDefault(KeyLogLevel, logging.DefaultLevel)

	return v
}

// Load reads ~/.levent/config.toml when present and validates the result.
func Load(homeDir string) (Config, *viper.Viper, error) {
	v := New(homeDir)

	if err := v.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return Config{}, nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg, err := FromViper(v, homeDir)
	if err != nil {
		return Config{}, nil, err
	}
	return cfg, v, nil
}

func FromViper(v *viper.Viper, homeDir string) (Config, error) {
	cfg := Config{
		HomeDir: homeDir,
		Progress: ProgressConfig{
			Backend:              strings.ToLower(strings.TrimSpace(v.GetString(KeyProgressBackend))),
			Path:                 expandHome(v.GetString(KeyProgressPath), homeDir),
			SQLitePath:           expandHome(v.GetString(KeyProgressSQLitePath), homeDir),
			RequiredInteractions: v.GetInt(KeyProgressRequiredInteractions),
		},
		Redis: RedisConfig{
			Addr:     v.GetString(KeyRedisAddr),
			Password: v.GetString(KeyRedisPassword),
			DB:       v.GetInt(KeyRedisDB),
			Key:      v.GetString(KeyRedisKey),
		},
		Playbook: PlaybookConfig{
			Path: expandHome(v.GetString(KeyPlaybookPath), homeDir),
		},
		Chat: ChatConfig{
			Mode:         strings.ToLower(strings.TrimSpace(v.GetString(KeyChatMode))),
			Model:        v.GetString(KeyChatModel),
			MaxTokens:    v.GetInt(KeyChatMaxTokens),
			Temperature:  v.GetFloat64(KeyChatTemperature),
			BaseURL:      v.GetString(KeyChatBaseURL),
			Timeout:      v.GetDuration(KeyChatTimeout),
			OfflineDelay: v.GetDuration(KeyChatOfflineDelay),
			APIKeyRef:    v.GetString(KeyChatAPIKeyRef),
		},
		Secrets: SecretsConfig{
			Backend: strings.ToLower(strings.TrimSpace(v.GetString(KeySecretsBackend))),
			Dir:     expandHome(v.GetString(KeySecretsDir), homeDir),
		},
		Log: LogConfig{
			Level: v.GetString(KeyLogLevel),
		},
	}

	milestones, err := parseMilestones(milestoneValues(v))
	if err != nil {
		return Config{}, err
	}
	cfg.Progress.Milestones = milestones

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error

	switch c.Progress.Backend {
	case BackendTOML, BackendSQLite, BackendRedis:
	default:
		errs = append(errs, fmt.Errorf("%s must be one of toml, sqlite, redis, got %q", KeyProgressBackend, c.Progress.Backend))
	}
	if c.Progress.RequiredInteractions <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %d", KeyProgressRequiredInteractions, c.Progress.RequiredInteractions))
	}
	if c.Progress.Backend == BackendRedis && strings.TrimSpace(c.Redis.Addr) == "" {
		errs = append(errs, fmt.Errorf("%s is required for the redis backend", KeyRedisAddr))
	}

	switch c.Chat.Mode {
	case ChatModeOffline, ChatModeOpenAI:
	default:
		errs = append(errs, fmt.Errorf("%s must be offline or openai, got %q", KeyChatMode, c.Chat.Mode))
	}
	if c.Chat.MaxTokens <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %d", KeyChatMaxTokens, c.Chat.MaxTokens))
	}
	if c.Chat.Temperature < 0 || c.Chat.Temperature > 2 {
		errs = append(errs, fmt.Errorf("%s must be between 0 and 2, got %v", KeyChatTemperature, c.Chat.Temperature))
	}
	if c.Chat.OfflineDelay < 0 {
		errs = append(errs, fmt.Errorf("%s must not be negative", KeyChatOfflineDelay))
	}

	switch c.Secrets.Backend {
	case SecretsChain, SecretsFile:
	default:
		errs = append(errs, fmt.Errorf("%s must be chain or file, got %q", KeySecretsBackend, c.Secrets.Backend))
	}

	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("%s: %w", KeyLogLevel, err))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func parseMilestones(values []int) (domain.Milestones, error) {
	if len(values) != 4 {
		return domain.Milestones{}, fmt.Errorf("%s needs exactly 4 values, got %v", KeyProgressMilestones, values)
	}

	milestones := domain.Milestones{Thresholds: [4]int{values[0], values[1], values[2], values[3]}}
	if err := milestones.Validate(); err != nil {
		return domain.Milestones{}, fmt.Errorf("%s: %w", KeyProgressMilestones, err)
	}
	return milestones, nil
}

// milestoneValues also accepts the comma-separated form used by
// LVJ_PROGRESS_MILESTONES.
func milestoneValues(v *viper.Viper) []int {
	if raw, ok := v.Get(KeyProgressMilestones).(string); ok {
		parts := strings.Split(raw, ",")
		values := make([]int, 0, len(parts))
		for _, part := range parts {
			value, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil {
				return nil
			}
			values = append(values, value)
		}
		return values
	}
	return v.GetIntSlice(KeyProgressMilestones)
}

func expandHome(path string, homeDir string) string {
	trimmed := strings.TrimSpace(path)
	if trimmed == "~" {
		return homeDir
	}
	if strings.HasPrefix(trimmed, "~"+string(os.PathSeparator)) {
		return filepath.Join(homeDir, trimmed[2:])
	}
	return trimmed
}
