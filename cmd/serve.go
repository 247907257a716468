package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dineslot/config"
	"dineslot/cron"
	"dineslot/database"
	"dineslot/handlers"
	"dineslot/routes"
	"dineslot/utils"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd() *cobra.Command {
	var withWorker bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API (and, by default, the housekeeping worker)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			a, err := bootstrap(ctx)
			if err != nil {
				return err
			}
			defer a.close()
			logger := a.logger

			if err := a.ensureIndexes(ctx); err != nil {
				return err
			}
			utils.StartHealthMonitor(ctx, utils.GetCacheClient(), database.MongoClient)

			taskClient := cron.NewClient()
			defer taskClient.Close()

			calc := a.calculator()
			bundle := handlers.NewHandlerBundle(
				&handlers.ReservationHandler{Service: a.reservationService(calc)},
				&handlers.AvailabilityHandler{Calculator: calc},
				&handlers.AdminHandler{Tasks: taskClient, Location: config.Location()},
			)

			if config.IsProduction() {
				gin.SetMode(gin.ReleaseMode)
			}
			router := gin.New()
			routes.RegisterRoutes(router, bundle)

			if withWorker {
				go func() {
					if err := cron.RunWorker(ctx, a.housekeeper, logger.Named("worker")); err != nil {
						logger.Error("housekeeping worker failed", zap.Error(err))
					}
				}()
			}

			port := config.AppConfig.AppPort
			if port == "" {
				port = "8080"
			}
			srv := &http.Server{
				Addr:              "0.0.0.0:" + port,
				Handler:           router,
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Sugar().Infof("Starting server on %s...", srv.Addr)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}
			logger.Info("server is shutting down...")

			shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
			defer stop()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return err
			}
			logger.Info("server stopped gracefully")
			return nil
		},
	}

	cmd.Flags().BoolVar(&withWorker, "worker", true, "also run the housekeeping worker in this process")
	return cmd
}
