package amqpqueue

import (
	"encoding/json"
	"testing"
	"time"

	"foodtruck/internal/core/domain/model/kernel"
	"foodtruck/internal/core/ports"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobMessage_RoundTrip(t *testing.T) {
	job := ports.ScheduleOrderJob{
		ID:            kernel.NewUUID(),
		Type:          ports.JobTypeScheduleOrder,
		UserID:        kernel.NewUUID(),
		CurryQuantity: 2,
		NaanQuantity:  3,
		SubmittedAt:   time.Now().UTC().Truncate(time.Second),
	}

	body, err := json.Marshal(messageFromJob(job))
	require.NoError(t, err)

	var msg jobMessage
	require.NoError(t, json.Unmarshal(body, &msg))

	restored, err := msg.toJob(2)
	require.NoError(t, err)
	assert.True(t, restored.ID.IsEqual(job.ID))
	assert.True(t, restored.UserID.IsEqual(job.UserID))
	assert.Equal(t, job.CurryQuantity, restored.CurryQuantity)
	assert.Equal(t, job.NaanQuantity, restored.NaanQuantity)
	assert.True(t, job.SubmittedAt.Equal(restored.SubmittedAt))
	assert.Equal(t, 2, restored.Attempt)
}

func TestJobMessage_ToJob_InvalidIDs(t *testing.T) {
	msg := jobMessage{JobID: "not-a-uuid", UserID: kernel.NewUUID().String()}
	_, err := msg.toJob(1)
	require.Error(t, err)

	msg = jobMessage{JobID: kernel.NewUUID().String(), UserID: ""}
	_, err = msg.toJob(1)
	require.Error(t, err)
}

func TestAttemptFromHeaders(t *testing.T) {
	assert.Equal(t, 0, attemptFromHeaders(nil))
	assert.Equal(t, 0, attemptFromHeaders(amqp.Table{}))
	assert.Equal(t, 2, attemptFromHeaders(amqp.Table{attemptHeader: int32(2)}))
	assert.Equal(t, 3, attemptFromHeaders(amqp.Table{attemptHeader: int64(3)}))
	assert.Equal(t, 0, attemptFromHeaders(amqp.Table{attemptHeader: "bogus"}))
}
