package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	msgs []kafka.Message
	err  error
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *recordingWriter) Close() error { return nil }

type staticPropagator map[string]string

func (p staticPropagator) GetCarrier(context.Context) map[string]string { return p }

func headers(msg kafka.Message) map[string]string {
	out := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		out[h.Key] = string(h.Value)
	}
	return out
}

func TestPublishStateEvent(t *testing.T) {
	w := &recordingWriter{}
	k := &KafkaClient{
		writer:     w,
		propagator: staticPropagator{"traceparent": "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01"},
	}

	ev := NewStateEvent(EventInserted, "WVW1", "fleet", []string{"color"})
	require.NoError(t, k.PublishStateEvent(context.Background(), ev))

	require.Len(t, w.msgs, 1)
	msg := w.msgs[0]
	assert.Equal(t, "WVW1", string(msg.Key))

	h := headers(msg)
	assert.Equal(t, "inserted", h["eventType"])
	assert.Equal(t, ev.ID, h["eventId"])
	assert.Contains(t, h["traceparent"], "4bf92f3577b34da6a3ce929d0e0e4736")

	var decoded StateEvent
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, ev.ID, decoded.ID)
	assert.Equal(t, EventInserted, decoded.Type)
	assert.Equal(t, []string{"color"}, decoded.Keys)
	assert.True(t, ev.OccurredAt.Equal(decoded.OccurredAt))
}

func TestPublishStateEvent_WriteError(t *testing.T) {
	boom := errors.New("leader not available")
	k := &KafkaClient{writer: &recordingWriter{err: boom}}

	err := k.PublishStateEvent(context.Background(), NewStateEvent(EventFlushed, "WVW1", "", nil))

	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "flushed")
}

func TestNewStateEvent(t *testing.T) {
	ev := NewStateEvent(EventFlushed, "WVW2", "", nil)

	_, err := uuid.Parse(ev.ID)
	assert.NoError(t, err)
	assert.Equal(t, EventFlushed, ev.Type)
	assert.False(t, ev.OccurredAt.IsZero())
	assert.NotEqual(t, ev.ID, NewStateEvent(EventFlushed, "WVW2", "", nil).ID)
}

func TestCreateWriter(t *testing.T) {
	log := nopLogger{}

	w, err := createWriter(Config{Brokers: []string{"localhost:9092"}, Topic: "t", CompressionCodec: "zstd"}, log)
	require.NoError(t, err)
	assert.Equal(t, kafka.Zstd, w.Compression)
	assert.Nil(t, w.Transport)

	w, err = createWriter(Config{
		Brokers: []string{"localhost:9092"},
		SASL:    SASLConfig{Enabled: true, Mechanism: "SCRAM-SHA-512", Username: "u", Password: "p"},
	}, log)
	require.NoError(t, err)
	assert.NotNil(t, w.Transport)

	_, err = createWriter(Config{Brokers: []string{"localhost:9092"}, CompressionCodec: "brotli"}, log)
	assert.Error(t, err)

	_, err = createWriter(Config{
		Brokers: []string{"localhost:9092"},
		SASL:    SASLConfig{Enabled: true, Mechanism: "GSSAPI"},
	}, log)
	assert.Error(t, err)
}

func TestNewClient_RequiresBrokers(t *testing.T) {
	_, err := NewClient(Config{}, nil, nopLogger{})
	assert.Error(t, err)
}

type nopLogger struct{}

func (nopLogger) Info(string, error, ...map[string]interface{})  {}
func (nopLogger) Error(string, error, ...map[string]interface{}) {}
