package notify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (f *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func TestKafkaNotifier_Send(t *testing.T) {
	w := &fakeWriter{}
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	n := &KafkaNotifier{w: w, now: func() time.Time { return at }}

	require.NoError(t, n.Send(context.Background(), "https://x/password-reset?token=t&id=1", "ada@example.com"))

	require.Len(t, w.msgs, 1)
	assert.Equal(t, []byte("ada@example.com"), w.msgs[0].Key)

	var ev ResetEvent
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &ev))
	assert.Equal(t, ResetEvent{
		Type:      EventPasswordReset,
		Email:     "ada@example.com",
		Link:      "https://x/password-reset?token=t&id=1",
		CreatedAt: at,
	}, ev)

	require.NoError(t, n.Close())
	assert.True(t, w.closed)
}

func TestKafkaNotifier_WriteError(t *testing.T) {
	n := &KafkaNotifier{w: &fakeWriter{err: errors.New("broker down")}, now: time.Now}

	err := n.Send(context.Background(), "l", "ada@example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker down")
}
