package config

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Lang  string `toml:"lang" mapstructure:"lang" json:"lang" validate:"oneof=ar en"`
	Proxy string `toml:"proxy" mapstructure:"proxy" json:"proxy"`

	Log      logConfig      `toml:"log" mapstructure:"log" json:"log"`
	DB       dbConfig       `toml:"db" mapstructure:"db" json:"db"`
	Cache    cacheConfig    `toml:"cache" mapstructure:"cache" json:"cache"`
	Telegram telegramConfig `toml:"telegram" mapstructure:"telegram" json:"telegram"`
	Monitor  monitorConfig  `toml:"monitor" mapstructure:"monitor" json:"monitor"`
	Notify   notifyConfig   `toml:"notify" mapstructure:"notify" json:"notify"`
	API      apiConfig      `toml:"api" mapstructure:"api" json:"api"`
	Schedule scheduleConfig `toml:"schedule" mapstructure:"schedule" json:"schedule"`
}

type logConfig struct {
	Level string `toml:"level" mapstructure:"level" json:"level" validate:"oneof=debug info warn error"`
	File  string `toml:"file" mapstructure:"file" json:"file"`
}

var cfg = &Config{}

func C() *Config {
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("lang", "ar")
	v.SetDefault("log.level", "info")

	v.SetDefault("telegram.app_id", 1025907)
	v.SetDefault("telegram.app_hash", "452b0359b988148995f22ff0f4229750")
	v.SetDefault("telegram.session", "data/session.db")
	v.SetDefault("telegram.rpc_retry", 5)
	v.SetDefault("telegram.flood_retry", 5)
	v.SetDefault("telegram.rate_limit.enable", true)
	v.SetDefault("telegram.rate_limit.interval_ms", 100)
	v.SetDefault("telegram.rate_limit.burst", 5)

	v.SetDefault("db.persist", true)
	v.SetDefault("db.path", "data/watchword.db")
	v.SetDefault("db.redis_prefix", "watchword:")

	v.SetDefault("cache.ttl", 3600)
	v.SetDefault("cache.num_counters", 100000)
	v.SetDefault("cache.max_cost", 1000000)

	v.SetDefault("monitor.groups_only", true)
	v.SetDefault("monitor.startup_notice", true)

	v.SetDefault("notify.target", "me")

	v.SetDefault("api.port", 8080)

	v.SetDefault("schedule.stats_cron", "*/30 * * * *")
}

// Init loads the configuration from configFile, or from config.toml in the
// working directory or /etc/watchword/ when configFile is empty. A default
// config.toml is written when none exists.
func Init(ctx context.Context, configFile ...string) error {
	logger := log.FromContext(ctx)
	if len(configFile) > 0 && configFile[0] != "" {
		viper.SetConfigFile(configFile[0])
	} else {
		viper.SetConfigName("config")
		viper.AddConfigPath(".")
		viper.AddConfigPath("/etc/watchword/")
		viper.SetConfigType("toml")
	}
	viper.SetEnvPrefix("WATCHWORD")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	// KEYWORDS is the variable name used by older deployments
	if err := viper.BindEnv("monitor.keywords", "WATCHWORD_KEYWORDS", "KEYWORDS"); err != nil {
		return fmt.Errorf("error binding keywords env: %w", err)
	}
	if err := viper.BindEnv("telegram.session_string", "WATCHWORD_TELEGRAM_SESSION_STRING", "TELEGRAM_SESSION_STRING"); err != nil {
		return fmt.Errorf("error binding session env: %w", err)
	}

	setDefaults(viper.GetViper())

	if len(configFile) == 0 || configFile[0] == "" {
		// the written file holds defaults only, never values taken from the environment
		defaults := viper.New()
		setDefaults(defaults)
		if err := defaults.SafeWriteConfigAs("config.toml"); err != nil {
			var exists viper.ConfigFileAlreadyExistsError
			if !errors.As(err, &exists) {
				return fmt.Errorf("error saving default config: %w", err)
			}
		} else {
			logger.Info("Wrote default config", "path", "config.toml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}

	loaded := &Config{}
	if err := viper.Unmarshal(loaded); err != nil {
		return fmt.Errorf("error unmarshalling config file: %w", err)
	}
	loaded.normalize()
	if err := loaded.Validate(); err != nil {
		return err
	}
	cfg = loaded
	logger.Debug("Config loaded", "file", viper.ConfigFileUsed())
	return nil
}

func (c *Config) normalize() {
	c.Lang = strings.TrimSpace(c.Lang)
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	c.Monitor.Keywords = splitKeywords(c.Monitor.Keywords)
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.API.Enable && c.API.Token == "" {
		return errors.New("invalid config: api is enabled but api.token is empty")
	}
	return nil
}

// Set overrides a single key, mainly for flags and tests.
func Set(key string, value any) {
	viper.Set(key, value)
}
