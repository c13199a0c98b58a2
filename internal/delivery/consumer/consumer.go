package consumer

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/CosmiCloud/othub-processor/internal/domain"
	publisher "github.com/CosmiCloud/othub-processor/internal/infrastructure/kafka"
	"github.com/CosmiCloud/othub-processor/internal/infrastructure/logger"
	"github.com/CosmiCloud/othub-processor/internal/usecase"
)

// OutcomePublisher reports terminal dispositions to the events topic.
type OutcomePublisher interface {
	PublishOutcome(event publisher.TxnOutcomeEvent) error
}

// TxnConsumer bridges the inbound topic and the processor. Each message is
// one independent task; messages for different transactions run concurrently.
type TxnConsumer struct {
	Subscriber  domain.SubscriberPort
	Processor   usecase.TxnProcessor
	Publisher   OutcomePublisher
	EventLogger logger.TxnEventLogger
	Topic       string
	GroupID     string
}

func NewTxnConsumer(
	subscriber domain.SubscriberPort,
	processor usecase.TxnProcessor,
	outcomePublisher OutcomePublisher,
	eventLogger logger.TxnEventLogger,
	topic, groupID string) *TxnConsumer {

	return &TxnConsumer{
		Subscriber:  subscriber,
		Processor:   processor,
		Publisher:   outcomePublisher,
		EventLogger: eventLogger,
		Topic:       topic,
		GroupID:     groupID,
	}
}

func (c *TxnConsumer) Start(ctx context.Context) error {
	messages, err := c.Subscriber.Subscribe(ctx, c.Topic, c.GroupID)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			var event publisher.TxnRequestEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				slog.Error("failed to decode txn request", "error", err.Error())
				continue
			}
			go c.handle(ctx, event)
		}
	}
}

func (c *TxnConsumer) handle(ctx context.Context, event publisher.TxnRequestEvent) {
	outcome := c.Processor.Process(ctx, &domain.TxnRequest{
		TxnID:    event.TxnID,
		Approver: event.Approver,
		Data:     event.TxnData,
		Network:  event.Network,
		Epochs:   event.Epochs,
		Keywords: event.Keywords,
		Receiver: event.Receiver,
		APIKey:   event.APIKey,
	})

	if c.EventLogger != nil {
		if err := c.EventLogger.LogAttempt(ctx, logger.TxnAttemptEvent{
			TxnID:       outcome.TxnID,
			PublicKey:   event.Approver,
			Network:     event.Network,
			Disposition: string(outcome.Disposition),
			ErrorName:   outcomeErrorName(outcome),
			UAL:         outcome.UAL,
			Timestamp:   time.Now(),
		}); err != nil {
			slog.Error("failed to log txn attempt", "txn_id", outcome.TxnID, "error", err.Error())
		}
	}

	if c.Publisher == nil {
		return
	}
	if err := c.Publisher.PublishOutcome(publisher.TxnOutcomeEvent{
		TxnID:     outcome.TxnID,
		Approver:  event.Approver,
		Progress:  string(progressOf(outcome.Disposition)),
		UAL:       outcome.UAL,
		ErrorName: outcomeErrorName(outcome),
	}); err != nil {
		slog.Error("failed to publish TxnOutcomeEvent", "txn_id", outcome.TxnID, "error", err.Error())
	}
}

func progressOf(disposition domain.Disposition) domain.Progress {
	switch disposition {
	case domain.DispositionComplete:
		return domain.ProgressComplete
	case domain.DispositionRequeued:
		return domain.ProgressPending
	case domain.DispositionShadowRetry:
		return domain.ProgressTransferFailed
	default:
		return domain.ProgressAbandoned
	}
}

func outcomeErrorName(outcome *domain.ProcessOutcome) string {
	if outcome.TransferErr != nil {
		return outcome.TransferErr.Error()
	}
	if outcome.CreateErr != nil {
		return outcome.CreateErr.Error()
	}
	return ""
}
