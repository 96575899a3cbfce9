package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
)

const (
	LedgerBadger   = "badger"
	LedgerPostgres = "postgres"
	LedgerNone     = "none"
)

type Config struct {
	App struct {
		Env       string `env:"APP_ENV" env-default:"development" validate:"oneof=development production test"`
		Port      int    `env:"APP_PORT" env-default:"8080"`
		SentryUrl string `env:"SENTRY_URL"`
		LogFile   string `env:"LOG_FILE"`
		LogLevel  string `env:"LOG_LEVEL" env-default:"info" validate:"oneof=debug info warn error"`
	}
	Archive struct {
		Root            string `env:"ARCHIVE_ROOT" env-default:"." validate:"required"`
		SanitizeCaption bool   `env:"ARCHIVE_SANITIZE_CAPTION" env-default:"false"`
	}
	Instagram struct {
		User          string `env:"INSTAGRAM_USER" validate:"required"`
		Pass          string `env:"INSTAGRAM_PASS" validate:"required"`
		SessionPath   string `env:"INSTAGRAM_SESSION_PATH" env-default:"./goinsta-session"`
		AccountID     int64  `env:"INSTAGRAM_ACCOUNT_ID"`
		AccountHandle string `env:"INSTAGRAM_ACCOUNT_HANDLE" validate:"required_without=AccountID"`
	}
	Download struct {
		RatePerSecond float64       `env:"DOWNLOAD_RATE_PER_SECOND" env-default:"0" validate:"gte=0"`
		Timeout       time.Duration `env:"DOWNLOAD_TIMEOUT" env-default:"2m"`
	}
	Ledger struct {
		Backend string `env:"LEDGER_BACKEND" env-default:"badger" validate:"oneof=badger postgres none"`
		Path    string `env:"LEDGER_PATH" env-default:"./.archiver/ledger"`
	}
	Postgres struct {
		Port    int    `env:"POSTGRES_PORT" env-default:"5432"`
		Host    string `env:"POSTGRES_HOST"`
		User    string `env:"POSTGRES_USER"`
		Pass    string `env:"POSTGRES_PASS"`
		Name    string `env:"POSTGRES_NAME"`
		SslMode string `env:"POSTGRES_SSL_MODE" env-default:"disable"`
	}
	Telegram struct {
		User    int64  `env:"TELEGRAM_USER"`
		Token   string `env:"TELEGRAM_TOKEN"`
		Channel string `env:"TELEGRAM_CHANNEL"`
	}
	Schedule struct {
		Cron     string `env:"SCHEDULE_CRON" env-default:"0 */6 * * *"`
		Timezone string `env:"SCHEDULE_TIMEZONE" env-default:"UTC"`
	}
}

// EnvFile is read in addition to the process environment when it exists.
const EnvFile = ".env"

// New loads the configuration from the environment (and EnvFile when present)
// and validates it.
func New() (*Config, error) {
	cfg := &Config{}

	var err error
	if _, statErr := os.Stat(EnvFile); statErr == nil {
		err = cleanenv.ReadConfig(EnvFile, cfg)
	} else {
		err = cleanenv.ReadEnv(cfg)
	}
	if err != nil {
		help, _ := cleanenv.GetDescription(cfg, nil)
		return nil, fmt.Errorf("failed to read configuration: %w\n%s", err, help)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.Ledger.Backend == LedgerPostgres && c.Postgres.Host == "" {
		return fmt.Errorf("invalid configuration: POSTGRES_HOST is required for the postgres ledger")
	}
	return nil
}

// GetDSN returns the postgres connection string.
func (c *Config) GetDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Postgres.User,
		c.Postgres.Pass,
		c.Postgres.Host,
		c.Postgres.Port,
		c.Postgres.Name,
		c.Postgres.SslMode,
	)
}

func (c *Config) TelegramEnabled() bool {
	return c.Telegram.Token != ""
}
