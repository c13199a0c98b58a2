package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/CosmiCloud/othub-processor/internal/domain"
	publisher "github.com/CosmiCloud/othub-processor/internal/infrastructure/kafka"
)

// RequestPublisher pushes assigned work back onto the request topic.
type RequestPublisher interface {
	PublishRequest(event publisher.TxnRequestEvent) error
}

// PendingRequeueWorker periodically assigns unowned PENDING rows to wallets
// round-robin and republishes them to the request topic.
type PendingRequeueWorker struct {
	TxnRepo   domain.TxnRepository
	Wallets   domain.WalletRegistry
	Publisher RequestPublisher
	Interval  time.Duration

	next int
}

func NewPendingRequeueWorker(
	txnRepo domain.TxnRepository,
	wallets domain.WalletRegistry,
	requestPublisher RequestPublisher,
	interval time.Duration) *PendingRequeueWorker {

	return &PendingRequeueWorker{
		TxnRepo:   txnRepo,
		Wallets:   wallets,
		Publisher: requestPublisher,
		Interval:  interval,
	}
}

func (w *PendingRequeueWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := w.dispatchPending(); err != nil {
				slog.Error("pending dispatch failed", "error", err.Error())
			}
		}
	}
}

func (w *PendingRequeueWorker) dispatchPending() error {
	wallets := w.Wallets.Wallets()
	records, err := w.TxnRepo.FindPending(len(wallets))
	if err != nil {
		return err
	}

	for _, record := range records {
		wallet := wallets[w.next%len(wallets)]
		w.next++

		if err := w.Publisher.PublishRequest(publisher.TxnRequestEvent{
			TxnID:    record.TxnID,
			Approver: wallet.PublicKey,
			TxnData:  record.Data,
			Network:  record.Network,
			Epochs:   record.Epochs,
			Keywords: record.Keywords,
			Receiver: record.Receiver,
			APIKey:   record.APIKey,
		}); err != nil {
			slog.Error("failed to publish TxnRequestEvent", "txn_id", record.TxnID, "error", err.Error())
			continue
		}
		slog.Info("dispatched pending txn", "txn_id", record.TxnID, "wallet", wallet.Name)
	}
	return nil
}
