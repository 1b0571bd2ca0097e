package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"

	"github.com/emarabot/plaza-os/internal/core/domain"
)

type Config struct {
	Port      string        `env:"PORT,      default=8080"`
	Env       string        `env:"ENV,       default=development"`
	JWTSecret string        `env:"JWT_SECRET, required"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=12h"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`

	Building BuildingConfig
	Timing   TimingConfig
	Sessions SessionsConfig
	AI       AIConfig
	Redis    RedisConfig
}

// BuildingConfig holds the demo's fixed credentials and seed data.
type BuildingConfig struct {
	Passphrase   string   `env:"PLAZA_PASSPHRASE,     default=emarabot"`
	AdminUser    string   `env:"PLAZA_ADMIN_USER,     default=admin"`
	Residents    []string `env:"PLAZA_RESIDENTS,      default=Yassin,Rashwan,Mostafa"`
	SeedGuestKey string   `env:"PLAZA_SEED_GUEST_KEY, default=G-8821-X"`
}

type TimingConfig struct {
	Boot         time.Duration `env:"PLAZA_BOOT_DELAY,    default=3s"`
	Login        time.Duration `env:"PLAZA_LOGIN_DELAY,   default=800ms"`
	Scan         time.Duration `env:"PLAZA_SCAN_DELAY,    default=1500ms"`
	MoodInterval time.Duration `env:"PLAZA_MOOD_INTERVAL, default=2s"`
}

// SessionsConfig bounds the in-memory session registry. Sessions older than
// TokenTTL are always evicted.
type SessionsConfig struct {
	IdleTTL time.Duration `env:"PLAZA_SESSION_IDLE_TTL, default=2h"`
	Max     int           `env:"PLAZA_MAX_SESSIONS,     default=10000"`
}

type AIConfig struct {
	ConciergeModel string        `env:"AI_CONCIERGE_MODEL, default=gemini-3-pro-preview"`
	VisionModel    string        `env:"AI_VISION_MODEL,    default=gemini-2.5-flash-image"`
	WriterModel    string        `env:"AI_WRITER_MODEL,    default=gemini-3-pro-preview"`
	DraftModel     string        `env:"AI_DRAFT_MODEL,     default=gemini-2.5-flash"`
	Timeout        time.Duration `env:"AI_TIMEOUT,         default=60s"`
	ThinkingBudget int32         `env:"AI_THINKING_BUDGET, default=32768"`
}

// RedisConfig enables the shared in-flight guard when Addr is set.
type RedisConfig struct {
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

// IsDevelopment reports whether console logging should be used.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development")
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadWith(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadWith processes configuration from an arbitrary lookuper.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type credentialEnv struct {
	APIKey       string `env:"API_KEY"`
	GeminiAPIKey string `env:"GEMINI_API_KEY"`
}

// EnvCredential resolves the AI API key from the environment on every call,
// so a key exported after startup is picked up without a restart.
type EnvCredential struct {
	Lookuper envconfig.Lookuper
}

func NewEnvCredential() *EnvCredential {
	return &EnvCredential{Lookuper: envconfig.OsLookuper()}
}

func (e *EnvCredential) APIKey(ctx context.Context) (string, error) {
	var env credentialEnv
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &env, Lookuper: e.Lookuper}); err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrConfiguration, err)
	}
	key := strings.TrimSpace(env.APIKey)
	if key == "" {
		key = strings.TrimSpace(env.GeminiAPIKey)
	}
	if key == "" {
		return "", fmt.Errorf("%w: API_KEY is not set", domain.ErrConfiguration)
	}
	return key, nil
}
