package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"dineslot/config"
	"dineslot/cron"
	"dineslot/services/events"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newWorkerCmd() *cobra.Command {
	var audit bool

	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Run the housekeeping task worker and reap scheduler",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			a, err := bootstrap(ctx)
			if err != nil {
				return err
			}
			defer a.close()

			if audit && config.AppConfig.RabbitMQURL != "" {
				auditLogger := a.logger.Named("audit")
				go func() {
					err := events.Consume(ctx, config.AppConfig.RabbitMQURL, events.AuditLog(auditLogger), auditLogger)
					if err != nil && ctx.Err() == nil {
						auditLogger.Error("event consumer stopped", zap.Error(err))
					}
				}()
			}

			return cron.RunWorker(ctx, a.housekeeper, a.logger.Named("worker"))
		},
	}

	cmd.Flags().BoolVar(&audit, "audit", true, "log every reservation event consumed from RabbitMQ")
	return cmd
}
