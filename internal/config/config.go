// Package config loads famledger settings from YAML and FAMLEDGER_* env vars.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// DefaultFile is read from the working directory when no path is given.
const DefaultFile = "famledger.yaml"

// EnvPrefix prefixes env overrides, e.g. FAMLEDGER_SERVER_PORT=9000.
const EnvPrefix = "FAMLEDGER"

type ServerConfig struct {
	Port int `mapstructure:"port" yaml:"port"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

type JWTConfig struct {
	Secret      string `mapstructure:"secret" yaml:"secret"`
	ExpireHours int    `mapstructure:"expire_hours" yaml:"expire_hours"`
}

type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
}

type AIConfig struct {
	// Provider is gemini, openai or none.
	Provider string        `mapstructure:"provider" yaml:"provider"`
	APIKey   string        `mapstructure:"api_key" yaml:"api_key"`
	Model    string        `mapstructure:"model" yaml:"model"`
	BaseURL  string        `mapstructure:"base_url" yaml:"base_url"`
	Timeout  time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

type MessagingConfig struct {
	SecretToken string `mapstructure:"secret_token" yaml:"secret_token"`
}

type SubscriptionConfig struct {
	TrialDays int `mapstructure:"trial_days" yaml:"trial_days"`
}

type CurationConfig struct {
	FetchLimit int `mapstructure:"fetch_limit" yaml:"fetch_limit"`
}

type ThresholdsConfig struct {
	AutoApply  float64 `mapstructure:"auto_apply" yaml:"auto_apply"`
	Review     float64 `mapstructure:"review" yaml:"review"`
	AutoInsert float64 `mapstructure:"auto_insert" yaml:"auto_insert"`
}

type Config struct {
	Server       ServerConfig       `mapstructure:"server" yaml:"server"`
	Database     DatabaseConfig     `mapstructure:"database" yaml:"database"`
	JWT          JWTConfig          `mapstructure:"jwt" yaml:"jwt"`
	Log          LogConfig          `mapstructure:"log" yaml:"log"`
	AI           AIConfig           `mapstructure:"ai" yaml:"ai"`
	Messaging    MessagingConfig    `mapstructure:"messaging" yaml:"messaging"`
	Subscription SubscriptionConfig `mapstructure:"subscription" yaml:"subscription"`
	Curation     CurationConfig     `mapstructure:"curation" yaml:"curation"`
	Thresholds   ThresholdsConfig   `mapstructure:"thresholds" yaml:"thresholds"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server:       ServerConfig{Port: 8080},
		Database:     DatabaseConfig{Path: "famledger.db"},
		JWT:          JWTConfig{Secret: "dev-secret-change-in-production", ExpireHours: 24},
		Log:          LogConfig{Level: "info"},
		AI:           AIConfig{Provider: "none", Timeout: 60 * time.Second},
		Subscription: SubscriptionConfig{TrialDays: 14},
		Curation:     CurationConfig{FetchLimit: 100},
		Thresholds:   ThresholdsConfig{AutoApply: 0.90, Review: 0.70, AutoInsert: 0.80},
	}
}

// Validate rejects settings the server cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d out of range", c.Server.Port))
	}
	if c.Database.Path == "" {
		errs = append(errs, errors.New("database.path is required"))
	}
	if c.JWT.Secret == "" {
		errs = append(errs, errors.New("jwt.secret is required"))
	}
	switch c.AI.Provider {
	case "none", "":
	case "gemini", "openai":
		if c.AI.APIKey == "" {
			errs = append(errs, fmt.Errorf("ai.api_key is required for provider %q", c.AI.Provider))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown ai.provider %q", c.AI.Provider))
	}
	t := c.Thresholds
	if t.Review < 0 || t.Review > t.AutoApply || t.AutoApply > 1 {
		errs = append(errs, fmt.Errorf("thresholds must satisfy 0 <= review (%.2f) <= auto_apply (%.2f) <= 1", t.Review, t.AutoApply))
	}
	if t.AutoInsert < 0 || t.AutoInsert > 1 {
		errs = append(errs, fmt.Errorf("thresholds.auto_insert %.2f out of range", t.AutoInsert))
	}
	return errors.Join(errs...)
}

// Loader reads and watches one config source.
type Loader struct {
	v *viper.Viper

	mu  sync.RWMutex
	cfg *Config
}

// Load reads path, or DefaultFile from the working directory when path is
// empty. A missing default file is not an error; a missing explicit path is.
func Load(path string) (*Loader, error) {
	v := viper.New()
	setDefaults(v, Default())

	if path == "" {
		v.SetConfigName(strings.TrimSuffix(DefaultFile, filepath.Ext(DefaultFile)))
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	} else {
		v.SetConfigFile(path)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		slog.Debug("No config file found, using defaults and environment")
	}

	cfg, err := decode(v)
	if err != nil {
		return nil, err
	}
	return &Loader{v: v, cfg: cfg}, nil
}

// Config returns the current configuration.
func (l *Loader) Config() *Config {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.cfg
}

// File returns the path of the file that was read, or "".
func (l *Loader) File() string {
	return l.v.ConfigFileUsed()
}

// Watch re-reads the file whenever it changes and passes the new config to
// onChange. Invalid edits are logged and ignored.
func (l *Loader) Watch(onChange func(*Config)) {
	if l.File() == "" {
		return
	}
	l.v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		cfg, err := decode(l.v)
		if err != nil {
			slog.Warn("Ignoring invalid config change", "file", e.Name, "error", err)
			return
		}
		l.mu.Lock()
		l.cfg = cfg
		l.mu.Unlock()
		slog.Info("Config reloaded", "file", e.Name)
		if onChange != nil {
			onChange(cfg)
		}
	})
	l.v.WatchConfig()
}

// Save writes cfg as YAML, refusing to overwrite unless force is set.
func Save(path string, cfg *Config, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		}
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func decode(v *viper.Viper) (*Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &c, nil
}

// setDefaults registers every key so env overrides apply even when the file
// omits them.
func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("database.path", d.Database.Path)
	v.SetDefault("jwt.secret", d.JWT.Secret)
	v.SetDefault("jwt.expire_hours", d.JWT.ExpireHours)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("ai.provider", d.AI.Provider)
	v.SetDefault("ai.api_key", d.AI.APIKey)
	v.SetDefault("ai.model", d.AI.Model)
	v.SetDefault("ai.base_url", d.AI.BaseURL)
	v.SetDefault("ai.timeout", d.AI.Timeout)
	v.SetDefault("messaging.secret_token", d.Messaging.SecretToken)
	v.SetDefault("subscription.trial_days", d.Subscription.TrialDays)
	v.SetDefault("curation.fetch_limit", d.Curation.FetchLimit)
	v.SetDefault("thresholds.auto_apply", d.Thresholds.AutoApply)
	v.SetDefault("thresholds.review", d.Thresholds.Review)
	v.SetDefault("thresholds.auto_insert", d.Thresholds.AutoInsert)
}
