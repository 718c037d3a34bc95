package kafka

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	mu   sync.Mutex
	msgs []kafka.Message
	err  error
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error { return nil }

type countingHandler struct {
	topic string
	fail  int
	calls int
	trace string
}

func (h *countingHandler) Topic() string { return h.topic }

func (h *countingHandler) Handle(ctx context.Context, _ []byte) error {
	h.calls++
	h.trace = TraceIDFrom(ctx)
	if h.calls <= h.fail {
		return errors.New("transient")
	}
	return nil
}

func TestPublishEncodesJSONAndTrace(t *testing.T) {
	w := &fakeWriter{}
	p := NewProducerWithWriter(w, "snappy")

	err := p.Publish(context.Background(), "alerts.triggered", []byte("k"), map[string]int{"a": 1}, "trace-1")
	require.NoError(t, err)
	require.Len(t, w.msgs, 1)
	assert.Equal(t, `{"a":1}`, string(w.msgs[0].Value))
	assert.Equal(t, "trace-1", ExtractTraceID(w.msgs[0]))
}

func TestNewProducerRequiresBrokers(t *testing.T) {
	_, err := NewProducer()
	assert.Error(t, err)
}

func newTestConsumer(t *testing.T, h MessageHandler, retry int) *Consumer {
	t.Helper()
	c, err := NewConsumer(
		WithConsumerBrokers([]string{"localhost:9092"}),
		WithConsumerRetry(retry, time.Millisecond, 2*time.Millisecond),
	)
	require.NoError(t, err)
	c.RegisterHandler(h)
	return c
}

func TestProcessRetriesUntilSuccess(t *testing.T) {
	h := &countingHandler{topic: "t", fail: 2}
	c := newTestConsumer(t, h, 3)
	c.WithConsumerHook(NewHookChain(TraceHook()))

	km := kafka.Message{Value: []byte("{}"), Headers: []kafka.Header{{Key: "trace_id", Value: []byte("abc")}}}
	commit := c.process(&message{topic: "t", km: km})

	assert.True(t, commit)
	assert.Equal(t, 3, h.calls)
	assert.Equal(t, "abc", h.trace)
}

func TestProcessSendsToDLQAfterRetries(t *testing.T) {
	h := &countingHandler{topic: "t", fail: 100}
	c := newTestConsumer(t, h, 1)
	dlq := &fakeWriter{}
	c.dlq = dlq
	c.cfg.DLQTopic = "t.dlq"

	commit := c.process(&message{topic: "t", km: kafka.Message{Value: []byte("bad")}})

	assert.True(t, commit)
	assert.Equal(t, 2, h.calls)
	require.Len(t, dlq.msgs, 1)
	assert.Equal(t, "t.dlq", dlq.msgs[0].Topic)
}

func TestProcessWithoutDLQDoesNotCommitFailures(t *testing.T) {
	h := &countingHandler{topic: "t", fail: 100}
	c := newTestConsumer(t, h, 0)

	assert.False(t, c.process(&message{topic: "t", km: kafka.Message{}}))
}

func TestHookChainRecoversPanics(t *testing.T) {
	chain := NewHookChain(HookFuncs{
		Before: func(context.Context, string, kafka.Message, []byte) (context.Context, kafka.Message, []byte, error) {
			panic("bad hook")
		},
	})
	_, _, _, err := chain.BeforeHandle(context.Background(), "t", kafka.Message{}, nil)

	var herr *HookError
	require.ErrorAs(t, err, &herr)
	assert.Equal(t, "ERR_PANIC", herr.Code)
}

func TestBackoffWithJitterBounds(t *testing.T) {
	for attempt := 1; attempt < 10; attempt++ {
		d := backoffWithJitter(10*time.Millisecond, 80*time.Millisecond, attempt)
		assert.LessOrEqual(t, d, 80*time.Millisecond)
		assert.Greater(t, d, time.Duration(0))
	}
}
