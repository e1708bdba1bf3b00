package cron

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hoardify/config"
	"hoardify/models"
	"hoardify/services/notification"
	"hoardify/services/tasks"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// NotificationWorker delivers queued booking-status pushes.
type NotificationWorker struct {
	srv    *asynq.Server
	logger *zap.Logger
}

// InitNotificationWorker runs the async worker in background.
func InitNotificationWorker(ctx context.Context, cfg *config.Config, notifSvc notification.NotificationService, logger *zap.Logger) *NotificationWorker {
	redisOpts := asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisQueueDB,
	}

	concurrency := cfg.NotifyConcurrency
	if concurrency <= 0 {
		concurrency = 5
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: concurrency,
			Queues: map[string]int{
				"default": 1,
			},
			Logger:   logger.Sugar(),
			LogLevel: asynq.WarnLevel,
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				logger.Warn("Notification task failed", zap.String("type", task.Type()), zap.Error(err))
			}),
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeBookingStatus, handleBookingStatusTask(notifSvc, logger))

	go monitorRedisConnection(ctx, redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisQueueDB,
	}), logger)

	// Start async worker with retry logic
	go func() {
		logger.Info("Starting notification worker", zap.Int("concurrency", concurrency))
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Start(mux)
			if err == nil {
				return
			}
			logger.Error("Failed to start notification worker",
				zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
			if attempts == maxAttempts {
				logger.Error("Notification worker gave up; status pushes stay queued until restart")
				return
			}
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Duration(attempts*2) * time.Second):
			}
		}
	}()

	return &NotificationWorker{srv: srv, logger: logger}
}

// Shutdown waits for in-flight tasks and stops the worker.
func (w *NotificationWorker) Shutdown() {
	w.srv.Shutdown()
	w.logger.Info("Notification worker stopped")
}

func handleBookingStatusTask(notifSvc notification.NotificationService, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		p, err := tasks.ParseBookingStatusTask(task)
		if err != nil {
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}

		log := logger.With(zap.String("bookingID", p.BookingID), zap.String("customerID", p.CustomerID))
		err = notifSvc.NotifyBookingStatus(ctx, p)
		switch {
		case err == nil:
			log.Info("Booking status push delivered", zap.String("field", p.Field), zap.String("to", p.To))
			return nil
		case errors.Is(err, notification.ErrNoToken), errors.Is(err, models.ErrNotFound):
			log.Info("Booking status push skipped", zap.Error(err))
			return nil
		default:
			return err
		}
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection(ctx context.Context, client *redis.Client, logger *zap.Logger) {
	defer client.Close()

	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	healthy := true
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			err := client.Ping(ctx).Err()
			switch {
			case err != nil && healthy:
				logger.Warn("Queue Redis connection lost", zap.Error(err))
				healthy = false
			case err == nil && !healthy:
				logger.Info("Queue Redis connection restored")
				healthy = true
			}
		}
	}
}
