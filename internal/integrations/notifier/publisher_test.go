package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioScheduler/pkg/logger"
)

type fakeWriter struct {
	mu       sync.Mutex
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func (w *fakeWriter) sent() []kafka.Message {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]kafka.Message(nil), w.messages...)
}

func TestPublish_MessageShape(t *testing.T) {
	writer := &fakeWriter{}
	p := NewPublisherWithWriter(writer, "studio.booking", time.Second, logger.Nop())

	start := time.Date(2026, 10, 20, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	err := p.Publish(t.Context(), BookingEvent{
		Type:          EventBookingCreated,
		ProjectID:     42,
		ProjectNumber: 1001,
		ClientID:      7,
		Start:         &start,
		End:           &end,
	})
	require.NoError(t, err)

	msgs := writer.sent()
	require.Len(t, msgs, 1)
	msg := msgs[0]

	assert.Equal(t, "studio.booking.created", msg.Topic)
	assert.Equal(t, "42", string(msg.Key))
	require.Len(t, msg.Headers, 2)
	assert.Equal(t, "event_id", msg.Headers[0].Key)
	assert.NotEmpty(t, msg.Headers[0].Value)
	assert.Equal(t, "studio.booking.created", string(msg.Headers[1].Value))

	var decoded BookingEvent
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, int64(1001), decoded.ProjectNumber)
	assert.Equal(t, string(msg.Headers[0].Value), decoded.EventID)
	assert.True(t, decoded.Start.Equal(start))
}

func TestPublish_WriterError(t *testing.T) {
	writer := &fakeWriter{err: errors.New("broker down")}
	p := NewPublisherWithWriter(writer, "studio.booking", time.Second, logger.Nop())

	err := p.Publish(t.Context(), BookingEvent{Type: EventBookingCancelled, ProjectID: 1})
	assert.ErrorIs(t, err, ErrPublish)
}

func TestNotify_SurvivesCallerCancellation(t *testing.T) {
	writer := &fakeWriter{}
	p := NewPublisherWithWriter(writer, "studio.booking", time.Second, logger.Nop())

	ctx, cancel := context.WithCancel(t.Context())
	p.Notify(ctx, BookingEvent{Type: EventBookingRescheduled, ProjectID: 5})
	cancel()

	require.NoError(t, p.Close())
	assert.True(t, writer.closed)

	msgs := writer.sent()
	require.Len(t, msgs, 1)
	assert.Equal(t, "studio.booking.rescheduled", msgs[0].Topic)
}

func TestDisabledPublisher(t *testing.T) {
	p := NewPublisher("", "studio.booking", time.Second, logger.Nop())

	p.Notify(t.Context(), BookingEvent{Type: EventBookingCreated})
	assert.ErrorIs(t, p.Publish(t.Context(), BookingEvent{Type: EventBookingCreated}), ErrDisabled)
	assert.NoError(t, p.Close())
}

func TestSplitBrokers(t *testing.T) {
	assert.Equal(t, []string{"a:9092", "b:9092"}, SplitBrokers(" a:9092, ,b:9092 "))
	assert.Empty(t, SplitBrokers(""))
}
