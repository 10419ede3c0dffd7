/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/easytech/webapi/config"
	"github.com/easytech/webapi/internal/mq"
	"github.com/spf13/cobra"
)

// workerCmd represents the worker command
var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Consume site events from the configured broker",
	Long: `Subscribes to EVENTS_CHANNEL and logs every contact, newsletter and
booking notification. Usage:

	webapi worker
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadConfig()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		events, err := mq.Open(ctx, cfg)
		if err != nil {
			return err
		}
		defer events.Close()

		log.Printf("consuming events from %q via %s", events.Channel(), cfg.MQ.Backend)
		err = events.SubscribeEvents(ctx, func(ctx context.Context, event mq.Event) error {
			log.Printf("event %s at %s: %s", event.Type, event.OccurredAt, event.Payload)
			return nil
		})
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(workerCmd)
}
