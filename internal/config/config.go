package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const (
	DefaultDatabaseType   = "sqlite"
	DefaultDatabaseDSN    = "data/bot.db"
	DefaultHandlerTimeout = 30 * time.Second
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Discord  Discord  `mapstructure:"discord"`
	Bot      Bot      `mapstructure:"bot"`
	Database Database `mapstructure:"database"`
	Handler  Handler  `mapstructure:"handler"`
	Metrics  Metrics  `mapstructure:"metrics"`
}

type Discord struct {
	Token         string `mapstructure:"token"`
	ApplicationID string `mapstructure:"application_id"`
	// GuildID scopes command publication to a single guild when set.
	GuildID string `mapstructure:"guild_id"`
}

type Bot struct {
	LogLevel string `mapstructure:"log_level"`
}

type Database struct {
	Type string `mapstructure:"type"`
	DSN  string `mapstructure:"dsn"`
}

type Handler struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

type Metrics struct {
	// Address is where /metrics and /healthz are served. Empty disables them.
	Address string `mapstructure:"address"`
}

// Load reads configFile, or config.toml from the working directory when
// configFile is empty. A .env file is loaded into the environment first if
// present, and environment variables such as DISCORD_TOKEN override file
// values.
func Load(configFile string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
	}

	v.SetDefault("discord.token", "")
	v.SetDefault("discord.application_id", "")
	v.SetDefault("discord.guild_id", "")
	v.SetDefault("bot.log_level", "info")
	v.SetDefault("database.type", DefaultDatabaseType)
	v.SetDefault("database.dsn", DefaultDatabaseDSN)
	v.SetDefault("handler.timeout", DefaultHandlerTimeout)
	v.SetDefault("metrics.address", "")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	log.Info().Msg("reading config file...")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("could not read config file: %w", err)
		}
		log.Warn().Msg("no config file found, using defaults and environment")
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("could not decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error

	if c.Discord.Token == "" {
		errs = append(errs, fmt.Errorf("%w: discord.token is required", ErrInvalidConfig))
	}

	switch c.Database.Type {
	case "sqlite", "postgres":
	default:
		errs = append(errs, fmt.Errorf("%w: unsupported database.type %q", ErrInvalidConfig, c.Database.Type))
	}

	if c.Database.DSN == "" {
		errs = append(errs, fmt.Errorf("%w: database.dsn is required", ErrInvalidConfig))
	}

	if c.Handler.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("%w: handler.timeout must be positive", ErrInvalidConfig))
	}

	return errors.Join(errs...)
}

func (b Bot) Level() zerolog.Level {
	switch b.LogLevel {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
