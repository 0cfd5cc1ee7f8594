package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jukanntenn/crashfeishu/internal/config"
)

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "crashfeishu.toml")
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

// parseFlags runs the root command's flag parsing the way Execute does,
// so Changed reflects what the operator passed.
func parseFlags(t *testing.T, args ...string) {
	t.Helper()
	if err := rootCmd.ParseFlags(args); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
}

func resetFlags(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		flagConfig = ""
		flagWebhook = ""
		flagSecret = ""
		flagPrograms = nil
		flagNotifyTimeout = 0
		for _, name := range []string{"config", "webhook", "secret", "program", "notify-timeout"} {
			rootCmd.PersistentFlags().Lookup(name).Changed = false
		}
	})
}

func TestLoadConfigFlagWinsOverEnvAndFile(t *testing.T) {
	resetFlags(t)

	flagConfig = writeConfigFile(t, `
webhook = "https://example.com/file"
secret = "filesecret"
programs = ["app:worker"]
notify_timeout = "30s"
`)
	t.Setenv(config.EnvWebhook, "https://example.com/env")
	t.Setenv(config.EnvSecret, "envsecret")
	parseFlags(t, "--webhook", "https://example.com/flag")

	cfg, err := loadConfig(rootCmd)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.WebhookURL != "https://example.com/flag" {
		t.Fatalf("webhook = %q, flag should win over env and file", cfg.WebhookURL)
	}
	if cfg.Secret != "envsecret" {
		t.Fatalf("secret = %q, env should win over file", cfg.Secret)
	}
	if len(cfg.Programs) != 1 || cfg.Programs[0] != "app:worker" {
		t.Fatalf("programs = %#v", cfg.Programs)
	}
	if cfg.NotifyTimeout != 30*time.Second {
		t.Fatalf("notify timeout = %v", cfg.NotifyTimeout)
	}
}

func TestLoadConfigFlagProgramsAndTimeout(t *testing.T) {
	resetFlags(t)

	flagConfig = writeConfigFile(t, `
programs = ["app:worker"]
notify_timeout = "30s"
`)
	parseFlags(t, "--program", "db:redis", "--program", "cache", "--notify-timeout", "5s")

	cfg, err := loadConfig(rootCmd)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if len(cfg.Programs) != 2 || cfg.Programs[0] != "db:redis" || cfg.Programs[1] != "cache" {
		t.Fatalf("programs = %#v", cfg.Programs)
	}
	if cfg.NotifyTimeout != 5*time.Second {
		t.Fatalf("notify timeout = %v", cfg.NotifyTimeout)
	}
}

func TestLoadConfigRejectsZeroTimeout(t *testing.T) {
	resetFlags(t)

	parseFlags(t, "--notify-timeout", "0s")

	if _, err := loadConfig(rootCmd); !errors.Is(err, config.ErrInvalidNotifyTimeout) {
		t.Fatalf("expected ErrInvalidNotifyTimeout, got %v", err)
	}
}
