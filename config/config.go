package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	env "github.com/Netflix/go-env"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	EngineMemory = "memory"
	EngineBleve  = "bleve"
	Production   = "production"
	Development  = "development"
)

type Config struct {
	Host           string        `env:"HOST,default=0.0.0.0"`
	Port           int           `env:"PORT,default=8080" validate:"min=1,max=65535"`
	Environment    string        `env:"ENVIRONMENT,default=development" validate:"oneof=development production"`
	LogLevel       string        `env:"LOG_LEVEL,default=info"`
	SearchEngine   string        `env:"SEARCH_ENGINE,default=memory" validate:"oneof=memory bleve"`
	CatalogPath    string        `env:"CATALOG_PATH"`
	MarketPath     string        `env:"MARKET_PATH"`
	ChatScriptPath string        `env:"CHAT_SCRIPT_PATH"`
	ChatMinDelay   time.Duration `env:"CHAT_MIN_DELAY,default=1s" validate:"min=0"`
	ChatMaxDelay   time.Duration `env:"CHAT_MAX_DELAY,default=2s" validate:"gtefield=ChatMinDelay"`
	SessionTTL     time.Duration `env:"SESSION_TTL,default=30m" validate:"gt=0"`
	SessionLimit   int           `env:"SESSION_LIMIT,default=10000" validate:"min=1"`
	AllowedOrigins string        `env:"ALLOWED_ORIGINS,default=http://localhost:3000"`
}

// Load reads an optional .env file, then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	var cfg Config
	if _, err := env.UnmarshalFromEnviron(&cfg); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c *Config) Origins() []string {
	var origins []string
	for _, origin := range strings.Split(c.AllowedOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

func (c *Config) IsProduction() bool {
	return c.Environment == Production
}

// SetupLogger configures the global zerolog logger: console output in development, JSON
// in production.
func SetupLogger(c *Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if c.IsProduction() {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
	return log.Logger
}
