package tasks

import (
	"context"
	"errors"
	"testing"

	"hoardify/models"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingEnqueuer struct {
	tasks []*asynq.Task
	err   error
}

func (r *recordingEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.tasks = append(r.tasks, task)
	return &asynq.TaskInfo{ID: "t1"}, nil
}

func TestBookingStatusTaskRoundTrip(t *testing.T) {
	in := models.BookingStatusPayload{BookingID: "b1", CustomerID: "u1", Field: "status", From: "Pending", To: "Approved"}

	task, opts, err := NewBookingStatusTask(in)
	require.NoError(t, err)
	assert.Equal(t, TypeBookingStatus, task.Type())
	assert.NotEmpty(t, opts)

	out, err := ParseBookingStatusTask(task)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestParseBookingStatusTask_Invalid(t *testing.T) {
	_, err := ParseBookingStatusTask(asynq.NewTask(TypeBookingStatus, []byte("{")))
	assert.Error(t, err)
}

func TestDispatcher_EnqueueStatusChange(t *testing.T) {
	q := &recordingEnqueuer{}
	d := &Dispatcher{Client: q}

	require.NoError(t, d.EnqueueStatusChange(context.Background(), models.BookingStatusPayload{BookingID: "b1"}))
	assert.Len(t, q.tasks, 1)

	q.err = asynq.ErrDuplicateTask
	assert.NoError(t, d.EnqueueStatusChange(context.Background(), models.BookingStatusPayload{BookingID: "b1"}))

	q.err = errors.New("redis down")
	assert.Error(t, d.EnqueueStatusChange(context.Background(), models.BookingStatusPayload{BookingID: "b1"}))
}
