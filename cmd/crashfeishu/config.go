package main

import (
	"github.com/spf13/cobra"

	"github.com/jukanntenn/crashfeishu/internal/config"
)

// loadConfig resolves the effective settings for one invocation: file and
// environment via config.Load, explicit flags on top.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, err
	}
	flags := cmd.Flags()
	if flags.Changed("webhook") {
		cfg.WebhookURL = flagWebhook
	}
	if flags.Changed("secret") {
		cfg.Secret = flagSecret
	}
	if flags.Changed("program") {
		cfg.Programs = flagPrograms
	}
	if flags.Changed("notify-timeout") {
		cfg.NotifyTimeout = flagNotifyTimeout
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}
