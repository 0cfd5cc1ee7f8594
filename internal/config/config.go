// Package config assembles the listener's startup settings from the
// optional TOML file, the environment, and defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/jukanntenn/crashfeishu/internal/notify"
)

// Environment variables honored at startup. Empty values are ignored.
const (
	EnvWebhook = "CRASHFEISHU_WEBHOOK"
	EnvSecret  = "CRASHFEISHU_SECRET"
)

var ErrInvalidNotifyTimeout = errors.New("config: notify timeout must be positive")

// Config carries the effective listener settings.
type Config struct {
	// WebhookURL is the Feishu webhook crash messages go to. Empty
	// disables delivery while the protocol loop keeps running.
	WebhookURL string

	// Secret signs webhook requests when the bot has signature
	// verification enabled.
	Secret string

	// Programs lists the watch targets, each "process" or
	// "group:process". Empty watches every process.
	Programs []string

	// NotifyTimeout bounds one webhook delivery attempt.
	NotifyTimeout time.Duration
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{NotifyTimeout: notify.DefaultTimeout}
}

// Load resolves the effective configuration. Precedence, lowest first:
// defaults, the TOML file, environment variables. Flag values are laid
// on top by the command layer.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := applyFile(&cfg, path); err != nil {
			return Config{}, err
		}
	}
	applyEnv(&cfg)
	return cfg, nil
}

// Validate checks settings that have no usable fallback.
func (c Config) Validate() error {
	if c.NotifyTimeout <= 0 {
		return ErrInvalidNotifyTimeout
	}
	return nil
}

type fileConfig struct {
	Webhook       string   `toml:"webhook"`
	Secret        string   `toml:"secret"`
	Programs      []string `toml:"programs"`
	NotifyTimeout duration `toml:"notify_timeout"`
}

type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func applyFile(cfg *Config, path string) error {
	var file fileConfig
	meta, err := toml.DecodeFile(path, &file)
	if err != nil {
		return fmt.Errorf("config: load %s: %w", path, err)
	}
	if meta.IsDefined("webhook") {
		cfg.WebhookURL = file.Webhook
	}
	if meta.IsDefined("secret") {
		cfg.Secret = file.Secret
	}
	if meta.IsDefined("programs") {
		cfg.Programs = file.Programs
	}
	if meta.IsDefined("notify_timeout") {
		cfg.NotifyTimeout = file.NotifyTimeout.Duration
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvWebhook); v != "" {
		cfg.WebhookURL = v
	}
	if v := os.Getenv(EnvSecret); v != "" {
		cfg.Secret = v
	}
}
