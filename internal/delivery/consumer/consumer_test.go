package consumer

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CosmiCloud/othub-processor/internal/domain"
	publisher "github.com/CosmiCloud/othub-processor/internal/infrastructure/kafka"
	"github.com/CosmiCloud/othub-processor/internal/infrastructure/logger"
)

type stubSubscriber struct {
	messages chan domain.Message
}

func (s *stubSubscriber) Subscribe(ctx context.Context, topic, groupID string) (<-chan domain.Message, error) {
	return s.messages, nil
}

type stubProcessor struct {
	mu       sync.Mutex
	requests []*domain.TxnRequest
	outcome  *domain.ProcessOutcome
}

func (p *stubProcessor) Process(ctx context.Context, req *domain.TxnRequest) *domain.ProcessOutcome {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.requests = append(p.requests, req)
	outcome := *p.outcome
	outcome.TxnID = req.TxnID
	return &outcome
}

type capturingOutcomePublisher struct {
	mu     sync.Mutex
	events []publisher.TxnOutcomeEvent
	done   chan struct{}
}

func (p *capturingOutcomePublisher) PublishOutcome(event publisher.TxnOutcomeEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	close(p.done)
	return nil
}

type capturingEventLogger struct {
	mu     sync.Mutex
	events []logger.TxnAttemptEvent
}

func (l *capturingEventLogger) LogAttempt(ctx context.Context, event logger.TxnAttemptEvent) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, event)
	return nil
}

func TestConsumerProcessesRequestAndPublishesOutcome(t *testing.T) {
	sub := &stubSubscriber{messages: make(chan domain.Message, 1)}
	proc := &stubProcessor{outcome: &domain.ProcessOutcome{
		Disposition: domain.DispositionComplete,
		UAL:         "did:dkg:otp:20430/0xabc/42",
		State:       "0xstate",
	}}
	pub := &capturingOutcomePublisher{done: make(chan struct{})}
	eventLog := &capturingEventLogger{}
	c := NewTxnConsumer(sub, proc, pub, eventLog, "txn-requests", "othub-processor")

	payload, err := json.Marshal(publisher.TxnRequestEvent{
		TxnID:    "txn-1",
		Approver: "pk1",
		TxnData:  `{"name":"asset"}`,
		Network:  "otp:20430",
		Epochs:   2,
		Receiver: "0xreceiver",
	})
	require.NoError(t, err)
	sub.messages <- domain.Message{Value: payload}

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- c.Start(ctx) }()

	select {
	case <-pub.done:
	case <-time.After(2 * time.Second):
		t.Fatal("outcome was not published")
	}
	cancel()
	require.ErrorIs(t, <-errCh, context.Canceled)

	proc.mu.Lock()
	require.Len(t, proc.requests, 1)
	assert.Equal(t, "txn-1", proc.requests[0].TxnID)
	assert.Equal(t, "pk1", proc.requests[0].Approver)
	assert.Equal(t, "0xreceiver", proc.requests[0].Receiver)
	proc.mu.Unlock()

	pub.mu.Lock()
	require.Len(t, pub.events, 1)
	assert.Equal(t, "txn-1", pub.events[0].TxnID)
	assert.Equal(t, string(domain.ProgressComplete), pub.events[0].Progress)
	assert.Equal(t, "did:dkg:otp:20430/0xabc/42", pub.events[0].UAL)
	assert.Empty(t, pub.events[0].ErrorName)
	pub.mu.Unlock()

	eventLog.mu.Lock()
	require.Len(t, eventLog.events, 1)
	assert.Equal(t, string(domain.DispositionComplete), eventLog.events[0].Disposition)
	eventLog.mu.Unlock()
}

func TestConsumerSkipsUndecodableMessages(t *testing.T) {
	sub := &stubSubscriber{messages: make(chan domain.Message, 2)}
	proc := &stubProcessor{outcome: &domain.ProcessOutcome{Disposition: domain.DispositionComplete}}
	pub := &capturingOutcomePublisher{done: make(chan struct{})}
	c := NewTxnConsumer(sub, proc, pub, nil, "txn-requests", "othub-processor")

	sub.messages <- domain.Message{Value: []byte("not json")}
	payload, err := json.Marshal(publisher.TxnRequestEvent{TxnID: "txn-2", Approver: "pk1"})
	require.NoError(t, err)
	sub.messages <- domain.Message{Value: payload}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go c.Start(ctx)

	select {
	case <-pub.done:
	case <-time.After(2 * time.Second):
		t.Fatal("valid message after a broken one was not processed")
	}

	proc.mu.Lock()
	require.Len(t, proc.requests, 1)
	assert.Equal(t, "txn-2", proc.requests[0].TxnID)
	proc.mu.Unlock()
}

func TestProgressOfMapsDispositions(t *testing.T) {
	assert.Equal(t, domain.ProgressComplete, progressOf(domain.DispositionComplete))
	assert.Equal(t, domain.ProgressPending, progressOf(domain.DispositionRequeued))
	assert.Equal(t, domain.ProgressTransferFailed, progressOf(domain.DispositionShadowRetry))
	assert.Equal(t, domain.ProgressAbandoned, progressOf(domain.DispositionAbandoned))
}

func TestConsumerStopsWhenSubscriberCloses(t *testing.T) {
	sub := &stubSubscriber{messages: make(chan domain.Message)}
	proc := &stubProcessor{outcome: &domain.ProcessOutcome{Disposition: domain.DispositionComplete}}
	c := NewTxnConsumer(sub, proc, nil, nil, "txn-requests", "othub-processor")

	errCh := make(chan error, 1)
	go func() { errCh <- c.Start(context.Background()) }()
	close(sub.messages)

	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("consumer did not stop after the message channel closed")
	}
}
