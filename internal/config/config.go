package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var ErrMissingEnvironmentVariables = errors.New("missing required environment variables")

// History storage drivers.
const (
	HistoryDriverSQLite   = "sqlite"
	HistoryDriverPostgres = "postgres"
	HistoryDriverNone     = "none"
)

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env              string      `mapstructure:"env"`         // current application environment (local, dev, production etc)
	LogFile          string      `mapstructure:"log_file"`    // write logs to this file instead of stderr
	TelegramAPIToken string      `mapstructure:"-"`           // Telegram API token loaded from environment
	DataDir          string      `mapstructure:"data_dir"`    // directory for wrong books and the sqlite history
	Vocabulary       Vocabulary  `mapstructure:"vocabulary"`  // vocabulary modules section
	Preferences      Preferences `mapstructure:"preferences"` // session defaults handed to the quiz
	Quiz             Quiz        `mapstructure:"quiz"`        // quiz engine options
	History          History     `mapstructure:"history"`     // session history storage
	DB               DB          `mapstructure:"database"`    // database configuration section
}

// Vocabulary describes where word lists live and which modules exist.
type Vocabulary struct {
	Dir     string         `mapstructure:"dir"`     // directory with module JSON files
	Modules []ModuleConfig `mapstructure:"modules"` // ordered module list
}

// ModuleConfig is one configured vocabulary module.
type ModuleConfig struct {
	ID   string `mapstructure:"id"`
	Name string `mapstructure:"name"`
	File string `mapstructure:"file"`
}

// Preferences are the user defaults a front end starts a session with.
type Preferences struct {
	DefaultModule    string `mapstructure:"default_module"`
	DefaultMode      string `mapstructure:"default_mode"`
	TimeLimitSeconds int    `mapstructure:"time_limit_seconds"` // 0 disables the countdown
	FontSize         int    `mapstructure:"font_size"`
	NightMode        bool   `mapstructure:"night_mode"`
}

// TimeLimit returns the per-question time limit, zero when disabled.
func (p Preferences) TimeLimit() time.Duration {
	if p.TimeLimitSeconds <= 0 {
		return 0
	}
	return time.Duration(p.TimeLimitSeconds) * time.Second
}

// Quiz contains options of the question generator.
type Quiz struct {
	Seed int64 `mapstructure:"seed"` // fixed random seed, 0 seeds from the clock
}

// History selects where finished sessions and favorites are stored.
type History struct {
	Driver     string `mapstructure:"driver"`      // sqlite, postgres or none
	SQLitePath string `mapstructure:"sqlite_path"` // database file for the sqlite driver
}

// DB contains database-related configuration parameters.
type DB struct {
	URL             string        `mapstructure:"-"`                 // database connection string loaded from environment
	MaxConnections  int           `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
}

// DSN returns the database connection string if it is configured.
func (db DB) DSN() (string, error) {
	if db.URL == "" {
		return "", ErrMissingEnvironmentVariables
	}
	return db.URL, nil
}

// DefaultModules returns the built-in module list.
func DefaultModules() []ModuleConfig {
	return []ModuleConfig{
		{ID: "1", Name: "初中", File: "1-初中-顺序.json"},
		{ID: "2", Name: "高中", File: "2-高中-顺序.json"},
		{ID: "3", Name: "CET4", File: "3-CET4-顺序.json"},
		{ID: "4", Name: "CET6", File: "4-CET6-顺序.json"},
		{ID: "5", Name: "考研", File: "5-考研-顺序.json"},
		{ID: "6", Name: "托福", File: "6-托福-顺序.json"},
		{ID: "7", Name: "SAT", File: "7-SAT-顺序.json"},
	}
}

// Load reads configuration from ./config and environment variables.
func Load() (*Config, error) {
	return LoadFrom("./config")
}

// LoadFrom reads configuration from a config.yaml in dir and environment variables.
// A missing config file is not an error.
func LoadFrom(dir string) (*Config, error) {
	// Pick up a local .env file when there is one.
	_ = godotenv.Load()

	// Initialize Viper instance and base config options.
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	// Set default values for configuration keys.
	v.SetDefault("env", "local")
	v.SetDefault("log_file", "")
	v.SetDefault("data_dir", "data")
	v.SetDefault("vocabulary.dir", "json")
	v.SetDefault("preferences.default_module", "1")
	v.SetDefault("preferences.default_mode", "chinese")
	v.SetDefault("preferences.time_limit_seconds", 0)
	v.SetDefault("preferences.font_size", 16)
	v.SetDefault("preferences.night_mode", false)
	v.SetDefault("quiz.seed", 0)
	v.SetDefault("history.driver", HistoryDriverSQLite)
	v.SetDefault("history.sqlite_path", "data/history.db")
	v.SetDefault("database.max_connections", 10)
	v.SetDefault("database.max_conn_lifetime", "30m")

	// Configure environment variable handling and key mapping.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	// Bind explicit environment variables to configuration keys.
	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("env", "APP_ENV")
	_ = v.BindEnv("history.driver", "HISTORY_DRIVER")
	_ = v.BindEnv("vocabulary.dir", "VOCABULARY_DIR")

	// Try to read configuration file if present.
	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	// Unmarshal configuration into strongly typed struct.
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	if len(cfg.Vocabulary.Modules) == 0 {
		cfg.Vocabulary.Modules = DefaultModules()
	}

	// Load sensitive values from environment variables.
	cfg.TelegramAPIToken = v.GetString("telegram_api_token")
	cfg.DB.URL = v.GetString("database_url")

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// RequireTelegramToken fails when the bot token is not configured.
func (c *Config) RequireTelegramToken() error {
	if c.TelegramAPIToken == "" {
		return fmt.Errorf("%w: TELEGRAM_API_TOKEN", ErrMissingEnvironmentVariables)
	}
	return nil
}

func (c *Config) validate() error {
	switch c.History.Driver {
	case HistoryDriverSQLite, HistoryDriverNone:
	case HistoryDriverPostgres:
		if c.DB.URL == "" {
			return fmt.Errorf("%w: DATABASE_URL", ErrMissingEnvironmentVariables)
		}
	default:
		return fmt.Errorf("unknown history driver: %q", c.History.Driver)
	}

	seen := make(map[string]struct{}, len(c.Vocabulary.Modules))
	for _, m := range c.Vocabulary.Modules {
		if m.ID == "" || m.File == "" {
			return fmt.Errorf("module %q: id and file are required", m.Name)
		}
		if _, ok := seen[m.ID]; ok {
			return fmt.Errorf("duplicate module id %q", m.ID)
		}
		seen[m.ID] = struct{}{}
	}

	return nil
}
