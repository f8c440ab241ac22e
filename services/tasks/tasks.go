package tasks

import (
	"encoding/json"
	"time"

	"tripnest/models"

	"github.com/hibiken/asynq"
)

const (
	TypeNotificationDispatch = "notification:dispatch"
	TypePaymentReconcile     = "payment:reconcile"
)

// NewNotificationTask packages a best-effort notification for the queue.
func NewNotificationTask(payload models.NotificationPayload) (*asynq.Task, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeNotificationDispatch, b), nil
}

// NewReconcileTask schedules a gateway-state re-check after the given delay.
func NewReconcileTask(payload models.ReconcilePayload, delay time.Duration) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypePaymentReconcile, b)
	opts := []asynq.Option{asynq.ProcessIn(delay), asynq.MaxRetry(5)}

	return task, opts, nil
}
