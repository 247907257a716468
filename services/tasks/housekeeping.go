package tasks

import (
	"encoding/json"
	"time"

	"dineslot/models"

	"github.com/hibiken/asynq"
)

const (
	TypeCapacityReap      = "capacity:reap"
	TypeCapacityReconcile = "capacity:reconcile"

	// QueueHousekeeping is the asynq queue both task types are routed to.
	QueueHousekeeping = "housekeeping"
)

// NewReapTask builds a task that deletes capacity records dated before payload.Before.
func NewReapTask(payload models.ReapPayload) (*asynq.Task, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeCapacityReap, b,
		asynq.Queue(QueueHousekeeping),
		asynq.MaxRetry(3),
		asynq.Timeout(5*time.Minute)), nil
}

// NewReconcileTask builds a task comparing the counters of one space/date with
// its confirmed reservations. Duplicate requests within a minute collapse into one.
func NewReconcileTask(payload models.ReconcilePayload) (*asynq.Task, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeCapacityReconcile, b,
		asynq.Queue(QueueHousekeeping),
		asynq.MaxRetry(3),
		asynq.Timeout(time.Minute),
		asynq.Unique(time.Minute)), nil
}
