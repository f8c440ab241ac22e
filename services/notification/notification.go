package notification

import (
	"tripnest/models"
	"tripnest/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Service dispatches notifications fire-and-forget. Delivery failures
// are logged and never propagate into the calling flow.
type Service interface {
	Dispatch(payload models.NotificationPayload)
}

// AsynqDispatcher enqueues notifications onto the async worker queue.
type AsynqDispatcher struct {
	Client *asynq.Client
	Logger *zap.Logger
}

func NewAsynqDispatcher(client *asynq.Client, logger *zap.Logger) *AsynqDispatcher {
	return &AsynqDispatcher{Client: client, Logger: logger}
}

func (d *AsynqDispatcher) Dispatch(payload models.NotificationPayload) {
	task, err := tasks.NewNotificationTask(payload)
	if err != nil {
		d.Logger.Warn("failed to build notification task", zap.Error(err))
		return
	}
	if _, err := d.Client.Enqueue(task); err != nil {
		d.Logger.Warn("failed to enqueue notification",
			zap.String("target", payload.Target),
			zap.String("id", payload.ID),
			zap.Error(err))
	}
}

// NopService drops every notification; used in tests.
type NopService struct{}

func (NopService) Dispatch(models.NotificationPayload) {}
