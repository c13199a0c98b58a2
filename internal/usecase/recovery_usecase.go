package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/CosmiCloud/othub-processor/internal/domain"
	"github.com/google/uuid"
)

const transferRetryNote = "TRANSFER RETRY ATTEMPT"

type RecoveryHandler interface {
	Handle(ctx context.Context, event *domain.FailureEvent) domain.Compensation
}

// DefaultRecoveryHandler classifies a failure event and applies exactly one
// compensating state transition. It never raises: store errors while
// compensating are logged and swallowed so the consumer loop is never blocked
// by a transient store fault.
type DefaultRecoveryHandler struct {
	TxnRepo            domain.TxnRepository
	RequeueDelay       time.Duration
	TransferRetryDelay time.Duration
}

func NewDefaultRecoveryHandler(txnRepo domain.TxnRepository, requeueDelay, transferRetryDelay time.Duration) *DefaultRecoveryHandler {
	return &DefaultRecoveryHandler{
		TxnRepo:            txnRepo,
		RequeueDelay:       requeueDelay,
		TransferRetryDelay: transferRetryDelay,
	}
}

// Handle evaluates the classification rules in priority order; the first
// matching rule is exclusive.
func (h *DefaultRecoveryHandler) Handle(ctx context.Context, event *domain.FailureEvent) domain.Compensation {
	slog.Error("txn attempt failed",
		"wallet", event.Wallet.Name,
		"public_key", event.Wallet.PublicKey,
		"request", event.Request,
		"error_name", event.ErrorName,
	)

	if isValidationError(event.ErrorName) {
		slog.Info("create failed due to safe mode validation, abandoning",
			"wallet", event.Wallet.Name, "public_key", event.Wallet.PublicKey)
		if err := h.TxnRepo.Abandon(event.Wallet.PublicKey); err != nil {
			slog.Error("failed to abandon txn", "public_key", event.Wallet.PublicKey, "error", err.Error())
		}
		return domain.CompensationAbandoned
	}

	if event.Request == domain.RequestCreateAndTransfer {
		slog.Info("create failed, setting back to pending",
			"wallet", event.Wallet.Name, "public_key", event.Wallet.PublicKey, "delay", h.RequeueDelay)
		time.Sleep(h.RequeueDelay)

		if err := h.TxnRepo.Requeue(event.Wallet.PublicKey); err != nil {
			slog.Error("failed to requeue txn", "public_key", event.Wallet.PublicKey, "error", err.Error())
		}
		return domain.CompensationRequeued
	}

	if event.Request == domain.RequestTransfer {
		slog.Info("transfer failed, scheduling retry",
			"wallet", event.Wallet.Name, "public_key", event.Wallet.PublicKey, "delay", h.TransferRetryDelay)
		time.Sleep(h.TransferRetryDelay)

		// The original CREATED row is left untouched as historical fact; the
		// retry is tracked in a fresh shadow row instead.
		now := time.Now()
		shadow := &domain.TxnRecord{
			TxnID:     uuid.NewString(),
			Progress:  domain.ProgressTransferFailed,
			Approver:  event.Wallet.PublicKey,
			Request:   domain.RequestCreateAndTransfer,
			Network:   event.Network,
			Data:      event.UAL,
			UAL:       event.UAL,
			Receiver:  event.Receiver,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := h.TxnRepo.InsertShadow(shadow); err != nil {
			slog.Error("failed to insert shadow txn", "ual", event.UAL, "error", err.Error())
		}
		if err := h.TxnRepo.AnnotateShadow(event.UAL, transferRetryNote); err != nil {
			slog.Error("failed to annotate shadow txn", "ual", event.UAL, "error", err.Error())
		}
		return domain.CompensationShadowRetry
	}

	slog.Info("unexpected error, abandoning",
		"wallet", event.Wallet.Name, "public_key", event.Wallet.PublicKey, "error_name", event.ErrorName)
	if err := h.TxnRepo.Abandon(event.Wallet.PublicKey); err != nil {
		slog.Error("failed to abandon txn", "public_key", event.Wallet.PublicKey, "error", err.Error())
	}
	return domain.CompensationAbandoned
}

// isValidationError matches the node's schema validation rejections, plus the
// syntax errors raised before the payload ever reaches the node.
func isValidationError(name string) bool {
	return name == "jsonld.ValidationError" ||
		strings.HasSuffix(name, "ValidationError") ||
		name == "SyntaxError"
}
