package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Telegram TelegramConfig `mapstructure:"telegram"`
	HTTP     HTTPConfig     `mapstructure:"http"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Content  ContentConfig  `mapstructure:"content"`
	Prayer   PrayerConfig   `mapstructure:"prayer"`
	Feedback FeedbackConfig `mapstructure:"feedback"`
	Reading  ReadingConfig  `mapstructure:"reading"`
}

type AppConfig struct {
	Environment string `mapstructure:"environment" validate:"oneof=development production"`
	LogLevel    string `mapstructure:"log_level"`
	LocalesDir  string `mapstructure:"locales_dir" validate:"required"`
}

type TelegramConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Token   string `mapstructure:"token" validate:"required_if=Enabled true"`
}

type HTTPConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Addr    string `mapstructure:"addr" validate:"required_if=Enabled true"`
}

type StorageConfig struct {
	Driver     string `mapstructure:"driver" validate:"oneof=redis badger memory"`
	RedisURI   string `mapstructure:"redis_uri" validate:"required_if=Driver redis"`
	BadgerPath string `mapstructure:"badger_path" validate:"required_if=Driver badger"`
}

type ContentConfig struct {
	BaseURL string        `mapstructure:"base_url" validate:"required,url"`
	Timeout time.Duration `mapstructure:"timeout" validate:"gt=0"`
}

type PrayerConfig struct {
	BaseURL string        `mapstructure:"base_url" validate:"required,url"`
	Method  int           `mapstructure:"method" validate:"gte=0"`
	Timeout time.Duration `mapstructure:"timeout" validate:"gt=0"`
}

type FeedbackConfig struct {
	BaseURL   string        `mapstructure:"base_url" validate:"required,url"`
	Recipient string        `mapstructure:"recipient" validate:"required"`
	Timeout   time.Duration `mapstructure:"timeout" validate:"gt=0"`
	// Every and Burst limit submissions per user
	Every     time.Duration `mapstructure:"every" validate:"gt=0"`
	Burst     int           `mapstructure:"burst" validate:"gte=1"`
}

// ReadingConfig tunes the reading session timers
type ReadingConfig struct {
	Debounce        time.Duration `mapstructure:"debounce" validate:"gt=0"`
	AutoScrollDelay time.Duration `mapstructure:"auto_scroll_delay" validate:"gt=0"`
	TimerFlush      time.Duration `mapstructure:"timer_flush" validate:"gt=0"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout" validate:"gt=0"`
	AyahsPerPage    int           `mapstructure:"ayahs_per_page" validate:"gte=1,lte=50"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.locales_dir", "locales")

	v.SetDefault("telegram.enabled", true)
	v.SetDefault("telegram.token", "")

	v.SetDefault("http.enabled", false)
	v.SetDefault("http.addr", ":8080")

	v.SetDefault("storage.driver", "redis")
	v.SetDefault("storage.redis_uri", "redis://localhost:6379/0")
	v.SetDefault("storage.badger_path", "data/preferences")

	v.SetDefault("content.base_url", "https://equran.id/api/v2")
	v.SetDefault("content.timeout", 15*time.Second)

	v.SetDefault("prayer.base_url", "https://api.aladhan.com/v1")
	v.SetDefault("prayer.method", 20)
	v.SetDefault("prayer.timeout", 10*time.Second)

	v.SetDefault("feedback.base_url", "https://formsubmit.co")
	v.SetDefault("feedback.recipient", "")
	v.SetDefault("feedback.timeout", 10*time.Second)
	v.SetDefault("feedback.every", 30*time.Second)
	v.SetDefault("feedback.burst", 2)

	v.SetDefault("reading.debounce", time.Second)
	v.SetDefault("reading.auto_scroll_delay", 600*time.Millisecond)
	v.SetDefault("reading.timer_flush", 30*time.Second)
	v.SetDefault("reading.idle_timeout", 15*time.Minute)
	v.SetDefault("reading.ayahs_per_page", 5)
}

// Load loads configuration from a YAML file with environment variable overrides.
// An empty filename loads defaults and environment only.
func Load(filename string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if filename != "" {
		v.SetConfigFile(filename)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	// TELEGRAM_TOKEN overrides telegram.token
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints and that at least one surface is enabled
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("invalid config %s: failed %q", verrs[0].Namespace(), verrs[0].Tag())
		}
		return fmt.Errorf("validate config: %w", err)
	}
	if !c.Telegram.Enabled && !c.HTTP.Enabled {
		return errors.New("no surface enabled: enable telegram or http")
	}
	return nil
}
