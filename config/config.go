package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"parlour-api/pkg/paseto"
)

// ErrInvalidConfig wraps every validation failure returned by Load.
var ErrInvalidConfig = errors.New("invalid configuration")

const envPrefix = "PARLOUR_"

type AppConfig struct {
	Port           string        `koanf:"port"`
	MongoURI       string        `koanf:"mongo_uri"`
	DBName         string        `koanf:"db_name"`
	PasetoSecret   string        `koanf:"paseto_secret"`
	TokenTTL       time.Duration `koanf:"token_ttl"`
	AllowedOrigins string        `koanf:"allowed_origins"`
	LogLevel       string        `koanf:"log_level"`
	Timezone       string        `koanf:"timezone"`
	RequestTimeout time.Duration `koanf:"request_timeout"`

	// Punches may carry a client clock that runs slightly ahead of ours.
	PunchMaxClockSkew time.Duration `koanf:"punch_max_clock_skew"`
	StatusConcurrency int           `koanf:"status_concurrency"`

	RealtimeRequireAuth bool `koanf:"realtime_require_auth"`
	RealtimeSendBuffer  int  `koanf:"realtime_send_buffer"`

	// Clients are pinged every interval and dropped after pong_wait of silence.
	RealtimePingInterval time.Duration `koanf:"realtime_ping_interval"`
	RealtimePongWait     time.Duration `koanf:"realtime_pong_wait"`

	TelegramToken  string `koanf:"telegram_token"`
	TelegramChatID int64  `koanf:"telegram_chat_id"`
}

// Defaults returns the configuration used when nothing overrides it.
func Defaults() *AppConfig {
	return &AppConfig{
		Port:                "3000",
		DBName:              "parlour",
		TokenTTL:            24 * time.Hour,
		AllowedOrigins:      "http://localhost:5173,http://127.0.0.1:5173",
		LogLevel:            "info",
		Timezone:            "UTC",
		RequestTimeout:      10 * time.Second,
		PunchMaxClockSkew:   time.Minute,
		StatusConcurrency:   8,
		RealtimeRequireAuth: false,
		RealtimeSendBuffer:  32,

		RealtimePingInterval: 25 * time.Second,
		RealtimePongWait:     45 * time.Second,
	}
}

// LoadConfig layers defaults, an optional YAML file named by PARLOUR_CONFIG and PARLOUR_* env vars.
// A .env file in the working directory is loaded into the environment first when present.
func LoadConfig() (*AppConfig, error) {
	_ = godotenv.Load()

	k := koanf.New(".")

	if path := os.Getenv(envPrefix + "CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("load env config: %w", err)
	}

	cfg := *Defaults()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *AppConfig) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("%w: port must not be empty", ErrInvalidConfig)
	}
	if c.MongoURI == "" {
		return fmt.Errorf("%w: mongo_uri must be set", ErrInvalidConfig)
	}
	if c.DBName == "" {
		return fmt.Errorf("%w: db_name must not be empty", ErrInvalidConfig)
	}
	if _, err := paseto.DecodeKey(c.PasetoSecret); err != nil {
		return fmt.Errorf("%w: paseto_secret: %v", ErrInvalidConfig, err)
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("%w: token_ttl must be positive", ErrInvalidConfig)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("%w: request_timeout must be positive", ErrInvalidConfig)
	}
	if c.PunchMaxClockSkew < 0 {
		return fmt.Errorf("%w: punch_max_clock_skew must not be negative", ErrInvalidConfig)
	}
	if c.StatusConcurrency <= 0 {
		return fmt.Errorf("%w: status_concurrency must be positive", ErrInvalidConfig)
	}
	if c.RealtimeSendBuffer <= 0 {
		return fmt.Errorf("%w: realtime_send_buffer must be positive", ErrInvalidConfig)
	}
	if c.RealtimePingInterval < 0 || c.RealtimePongWait < 0 {
		return fmt.Errorf("%w: realtime_ping_interval and realtime_pong_wait must not be negative", ErrInvalidConfig)
	}
	if c.RealtimePongWait > 0 && c.RealtimePongWait <= c.RealtimePingInterval {
		return fmt.Errorf("%w: realtime_pong_wait must be longer than realtime_ping_interval", ErrInvalidConfig)
	}
	if c.RealtimePongWait > 0 && c.RealtimePingInterval == 0 {
		return fmt.Errorf("%w: realtime_pong_wait needs realtime_ping_interval, idle clients would be dropped", ErrInvalidConfig)
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("%w: timezone: %v", ErrInvalidConfig, err)
	}
	if (c.TelegramToken == "") != (c.TelegramChatID == 0) {
		return fmt.Errorf("%w: telegram_token and telegram_chat_id must be set together", ErrInvalidConfig)
	}
	return nil
}

// Location returns the configured timezone. Validate has already proven it loads.
func (c *AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c *AppConfig) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func (c *AppConfig) TelegramEnabled() bool {
	return c.TelegramToken != "" && c.TelegramChatID != 0
}
