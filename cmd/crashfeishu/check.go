package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jukanntenn/crashfeishu/internal/config"
	"github.com/jukanntenn/crashfeishu/internal/notify"
)

var cmdCheck = &cobra.Command{
	Use:   "check",
	Short: "Push a test message to the configured webhook",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cfg.WebhookURL == "" {
			return fmt.Errorf("no webhook specified (neither --webhook nor %s)", config.EnvWebhook)
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.NotifyTimeout)
		defer cancel()

		host, err := os.Hostname()
		if err != nil {
			host = "unknown host"
		}
		notifier := notify.NewFeishu(cfg.WebhookURL, cfg.Secret, cfg.NotifyTimeout)
		if err := notifier.Deliver(ctx, fmt.Sprintf("crashfeishu test message from %s", host)); err != nil {
			return err
		}
		fmt.Println("ok")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cmdCheck)
}
