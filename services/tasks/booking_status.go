package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"hoardify/models"

	"github.com/hibiken/asynq"
)

const TypeBookingStatus = "booking:status"

// NewBookingStatusTask builds the push task queued after an admin status change.
func NewBookingStatusTask(payload models.BookingStatusPayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeBookingStatus, b)
	opts := []asynq.Option{
		asynq.MaxRetry(5),
		asynq.Timeout(30 * time.Second),
		// collapse double clicks on the same booking into one push
		asynq.Unique(time.Minute),
	}
	return task, opts, nil
}

// ParseBookingStatusTask decodes a task produced by NewBookingStatusTask.
func ParseBookingStatusTask(task *asynq.Task) (models.BookingStatusPayload, error) {
	var p models.BookingStatusPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		return p, fmt.Errorf("invalid %s payload: %w", TypeBookingStatus, err)
	}
	return p, nil
}

// Enqueuer is the part of asynq.Client the dispatcher uses.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Dispatcher queues background work on asynq.
type Dispatcher struct {
	Client Enqueuer
}

// EnqueueStatusChange queues a booking-status push. A duplicate within the unique
// window is not an error.
func (d *Dispatcher) EnqueueStatusChange(ctx context.Context, payload models.BookingStatusPayload) error {
	task, opts, err := NewBookingStatusTask(payload)
	if err != nil {
		return err
	}
	if _, err := d.Client.EnqueueContext(ctx, task, opts...); err != nil {
		if errors.Is(err, asynq.ErrDuplicateTask) {
			return nil
		}
		return fmt.Errorf("failed to enqueue %s task: %w", TypeBookingStatus, err)
	}
	return nil
}
