package cron

import (
	"context"
	"encoding/json"
	"fmt"

	"dineslot/config"
	"dineslot/models"
	"dineslot/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Housekeeping is implemented by capacity.Housekeeper.
type Housekeeping interface {
	Reconcile(ctx context.Context, spaceID, date string, repair bool) ([]models.Drift, error)
	Reap(ctx context.Context, before string) (int64, error)
}

// RedisOpt is the asynq connection taken from configuration.
func RedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskDB,
	}
}

// NewClient returns an asynq client for enqueueing housekeeping tasks.
func NewClient() *asynq.Client {
	return asynq.NewClient(RedisOpt())
}

// NewMux routes every housekeeping task type to its handler.
func NewMux(h Housekeeping, logger *zap.Logger) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeCapacityReap, handleReapTask(h, logger))
	mux.HandleFunc(tasks.TypeCapacityReconcile, handleReconcileTask(h, logger))
	return mux
}

// RunWorker processes housekeeping tasks and schedules the periodic reap until
// ctx is cancelled.
func RunWorker(ctx context.Context, h Housekeeping, logger *zap.Logger) error {
	redisOpt := RedisOpt()

	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 4,
		Queues: map[string]int{
			tasks.QueueHousekeeping: 1,
		},
		Logger: logger.Sugar(),
	})
	if err := srv.Start(NewMux(h, logger)); err != nil {
		return fmt.Errorf("failed to start task server: %w", err)
	}
	defer srv.Shutdown()

	scheduler := asynq.NewScheduler(redisOpt, &asynq.SchedulerOpts{
		Location: config.Location(),
		Logger:   logger.Sugar(),
	})
	reap, err := tasks.NewReapTask(models.ReapPayload{})
	if err != nil {
		return err
	}
	entryID, err := scheduler.Register(config.AppConfig.ReapSchedule, reap)
	if err != nil {
		return fmt.Errorf("failed to schedule %s on %q: %w", tasks.TypeCapacityReap, config.AppConfig.ReapSchedule, err)
	}
	if err := scheduler.Start(); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}
	defer scheduler.Shutdown()

	logger.Info("housekeeping worker started",
		zap.String("reapSchedule", config.AppConfig.ReapSchedule),
		zap.String("entryID", entryID))

	<-ctx.Done()
	logger.Info("housekeeping worker stopping")
	return nil
}

func handleReapTask(h Housekeeping, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReapPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("invalid reap payload", zap.Error(err))
			return fmt.Errorf("invalid payload: %v: %w", err, asynq.SkipRetry)
		}
		n, err := h.Reap(ctx, p.Before)
		if err != nil {
			logger.Error("reap failed", zap.String("before", p.Before), zap.Error(err))
			return err
		}
		logger.Info("reap task done", zap.Int64("deleted", n))
		return nil
	}
}

func handleReconcileTask(h Housekeeping, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReconcilePayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("invalid reconcile payload", zap.Error(err))
			return fmt.Errorf("invalid payload: %v: %w", err, asynq.SkipRetry)
		}
		if p.SpaceID == "" || p.Date == "" {
			return fmt.Errorf("reconcile needs spaceId and date: %w", asynq.SkipRetry)
		}
		drifts, err := h.Reconcile(ctx, p.SpaceID, p.Date, p.Repair)
		if err != nil {
			logger.Error("reconcile failed", zap.String("spaceID", p.SpaceID), zap.String("date", p.Date), zap.Error(err))
			return err
		}
		logger.Info("reconcile task done",
			zap.String("spaceID", p.SpaceID),
			zap.String("date", p.Date),
			zap.Int("drifted", len(drifts)),
			zap.Bool("repair", p.Repair))
		return nil
	}
}
