package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/jukanntenn/crashfeishu/internal/config"
	"github.com/jukanntenn/crashfeishu/internal/listener"
	"github.com/jukanntenn/crashfeishu/internal/logging"
	"github.com/jukanntenn/crashfeishu/internal/notify"
	"github.com/jukanntenn/crashfeishu/internal/protocol"
)

const version = "0.2.0"

var (
	flagConfig        string
	flagWebhook       string
	flagSecret        string
	flagPrograms      []string
	flagNotifyTimeout time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "crashfeishu",
	Short: "Push a Feishu message when a supervised process crashes",
	Long: `crashfeishu is a supervisord eventlistener. Wire it into an [eventlistener:x]
section with events=PROCESS_STATE and it pushes a Feishu message whenever a
watched process exits unexpectedly or enters the FATAL state.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runListen,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "path to a TOML config file")
	rootCmd.PersistentFlags().StringVarP(&flagWebhook, "webhook", "w", "", "Feishu webhook URL to push messages to")
	rootCmd.PersistentFlags().StringVarP(&flagSecret, "secret", "s", "", "signing secret, needed only when the webhook verifies signatures")
	rootCmd.PersistentFlags().StringArrayVarP(&flagPrograms, "program", "p", nil, `program to watch, "process" or "group:process" (repeatable; default all)`)
	rootCmd.PersistentFlags().DurationVar(&flagNotifyTimeout, "notify-timeout", 0, "upper bound for one webhook delivery attempt")
}

func runListen(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	targets, err := cfg.WatchSet()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var notifier notify.Notifier
	if cfg.WebhookURL != "" {
		notifier = notify.NewFeishu(cfg.WebhookURL, cfg.Secret, cfg.NotifyTimeout)
	} else {
		log.Warn().Msgf("no webhook specified (neither --webhook nor %s), crash messages will not be pushed", config.EnvWebhook)
	}

	return listener.New(listener.Config{
		Channel:       protocol.NewChannel(os.Stdin, os.Stdout),
		Watch:         targets,
		Notifier:      notifier,
		NotifyTimeout: cfg.NotifyTimeout,
	}).Run(ctx)
}

func main() {
	logging.ConfigureRuntime()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "crashfeishu: %v\n", err)
		os.Exit(1)
	}
}
