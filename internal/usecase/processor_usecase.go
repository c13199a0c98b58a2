package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/CosmiCloud/othub-processor/internal/domain"
	"github.com/CosmiCloud/othub-processor/internal/infrastructure/metrics"
	"github.com/jaevor/go-nanoid"
)

const defaultContext = "https://schema.org"

var testnetTags = map[string]bool{
	"otp:20430":    true,
	"gnosis:10200": true,
}

var mainnetTags = map[string]bool{
	"otp:2043":   true,
	"gnosis:100": true,
}

type TxnProcessor interface {
	Process(ctx context.Context, req *domain.TxnRequest) *domain.ProcessOutcome
}

// DefaultTxnProcessor drives one transaction through asset creation and
// transfer, persisting each milestone. The ledger call is authoritative and
// the store is a best-effort mirror: a failed milestone write is reported in
// the outcome but never rolls back or aborts the ledger side.
type DefaultTxnProcessor struct {
	TxnRepo   domain.TxnRepository
	Wallets   domain.WalletRegistry
	Testnet   domain.LedgerClient
	Mainnet   domain.LedgerClient
	Recovery  RecoveryHandler
	Metrics   *metrics.TxnMetrics
	MasterKey string
}

func NewDefaultTxnProcessor(
	txnRepo domain.TxnRepository,
	wallets domain.WalletRegistry,
	testnet domain.LedgerClient,
	mainnet domain.LedgerClient,
	recovery RecoveryHandler,
	txnMetrics *metrics.TxnMetrics,
	masterKey string) *DefaultTxnProcessor {

	return &DefaultTxnProcessor{
		TxnRepo:   txnRepo,
		Wallets:   wallets,
		Testnet:   testnet,
		Mainnet:   mainnet,
		Recovery:  recovery,
		Metrics:   txnMetrics,
		MasterKey: masterKey,
	}
}

// Process never returns an error: every failure is re-expressed as a
// FailureEvent and handed to the recovery handler exactly once.
func (p *DefaultTxnProcessor) Process(ctx context.Context, req *domain.TxnRequest) *domain.ProcessOutcome {
	startTime := time.Now()
	outcome := &domain.ProcessOutcome{TxnID: req.TxnID}
	attemptID := newAttemptID()

	environment, ledger := p.resolveEnvironment(req.Network, req.APIKey)

	defer func() {
		p.Metrics.TxnProcessedTotal.WithLabelValues(string(outcome.Disposition), req.Network, string(environment)).Inc()
		p.Metrics.TxnProcessingDuration.WithLabelValues(string(outcome.Disposition)).Observe(time.Since(startTime).Seconds())
	}()

	// Re-issuing this update with the same approver has no additional effect.
	if err := p.TxnRepo.MarkProcessing(req.TxnID, req.Approver); err != nil {
		slog.Error("failed to mark txn processing", "txn_id", req.TxnID, "error", err.Error())
		outcome.PersistErrs = append(outcome.PersistErrs, err)
	}

	wallet, err := p.Wallets.ByPublicKey(req.Approver)
	if err != nil {
		// Not a create failure: left unclassified so recovery falls through
		// to the terminal abandon branch instead of requeueing forever.
		slog.Error("approver is not a known wallet", "public_key", req.Approver, "txn_id", req.TxnID)
		outcome.CreateErr = err
		compensation := p.Recovery.Handle(ctx, &domain.FailureEvent{
			ErrorName: "WalletNotFound",
			Wallet:    domain.WalletIdentity{PublicKey: req.Approver},
		})
		outcome.Disposition = dispositionOf(compensation)
		return outcome
	}

	payload, err := ensureContext(req.Data)
	if err != nil {
		compensation := p.Recovery.Handle(ctx, &domain.FailureEvent{
			ErrorName: "SyntaxError",
			Wallet:    *wallet,
			Request:   domain.RequestCreateAndTransfer,
		})
		outcome.CreateErr = err
		outcome.Disposition = dispositionOf(compensation)
		return outcome
	}

	slog.Info("creating next asset",
		"wallet", wallet.Name,
		"public_key", wallet.PublicKey,
		"network", req.Network,
		"environment", environment,
		"attempt_id", attemptID,
	)

	opts := domain.LedgerOptions{
		Environment: environment,
		Epochs:      req.Epochs,
		Keywords:    req.Keywords,
		Blockchain: domain.BlockchainIdentity{
			Name:       req.Network,
			PublicKey:  wallet.PublicKey,
			PrivateKey: wallet.PrivateKey,
		},
	}

	createResult, err := ledger.Create(ctx, payload, opts)
	if err != nil {
		p.Metrics.LedgerErrorsTotal.WithLabelValues("create", errorName(err)).Inc()
		outcome.CreateErr = err
		compensation := p.Recovery.Handle(ctx, &domain.FailureEvent{
			ErrorName: errorName(err),
			Wallet:    *wallet,
			Request:   domain.RequestCreateAndTransfer,
		})
		outcome.Disposition = dispositionOf(compensation)
		return outcome
	}
	outcome.UAL = createResult.UAL
	outcome.State = createResult.State

	if err := p.TxnRepo.MarkCreated(req.TxnID, createResult.UAL, createResult.State); err != nil {
		slog.Error("failed to mark txn created", "txn_id", req.TxnID, "error", err.Error())
		p.Metrics.PersistErrorsTotal.WithLabelValues("created").Inc()
		outcome.PersistErrs = append(outcome.PersistErrs, err)
	}

	slog.Info("created asset, transferring",
		"wallet", wallet.Name,
		"public_key", wallet.PublicKey,
		"ual", createResult.UAL,
		"receiver", req.Receiver,
		"attempt_id", attemptID,
	)

	if err := ledger.Transfer(ctx, createResult.UAL, req.Receiver, opts); err != nil {
		p.Metrics.LedgerErrorsTotal.WithLabelValues("transfer", errorName(err)).Inc()
		outcome.TransferErr = err
		compensation := p.Recovery.Handle(ctx, &domain.FailureEvent{
			ErrorName: errorName(err),
			Wallet:    *wallet,
			Request:   domain.RequestTransfer,
			Network:   req.Network,
			UAL:       createResult.UAL,
			Receiver:  req.Receiver,
		})
		outcome.Disposition = dispositionOf(compensation)
		return outcome
	}

	slog.Info("transferred asset",
		"wallet", wallet.Name,
		"public_key", wallet.PublicKey,
		"ual", createResult.UAL,
		"receiver", req.Receiver,
		"attempt_id", attemptID,
	)

	if err := p.TxnRepo.MarkComplete(req.TxnID); err != nil {
		slog.Error("failed to mark txn complete", "txn_id", req.TxnID, "error", err.Error())
		p.Metrics.PersistErrorsTotal.WithLabelValues("complete").Inc()
		outcome.PersistErrs = append(outcome.PersistErrs, err)
	}

	outcome.Disposition = domain.DispositionComplete
	return outcome
}

// resolveEnvironment elevates to mainnet only on an exact master key match.
// A mainnet chain tag alone never selects the mainnet node.
func (p *DefaultTxnProcessor) resolveEnvironment(network, apiKey string) (domain.Environment, domain.LedgerClient) {
	if testnetTags[network] {
		return domain.EnvTestnet, p.Testnet
	}
	if mainnetTags[network] && p.MasterKey != "" && apiKey == p.MasterKey {
		return domain.EnvMainnet, p.Mainnet
	}
	return domain.EnvTestnet, p.Testnet
}

// ensureContext injects the default schema context when the payload carries
// none.
func ensureContext(data string) (string, error) {
	var payload map[string]interface{}
	if err := json.Unmarshal([]byte(data), &payload); err != nil {
		return "", err
	}
	if _, ok := payload["@context"]; !ok {
		payload["@context"] = defaultContext
	}
	updated, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	return string(updated), nil
}

func errorName(err error) string {
	var ledgerErr *domain.LedgerError
	if errors.As(err, &ledgerErr) && ledgerErr.Name != "" {
		return ledgerErr.Name
	}
	return "Error"
}

func dispositionOf(compensation domain.Compensation) domain.Disposition {
	switch compensation {
	case domain.CompensationRequeued:
		return domain.DispositionRequeued
	case domain.CompensationShadowRetry:
		return domain.DispositionShadowRetry
	default:
		return domain.DispositionAbandoned
	}
}

func newAttemptID() string {
	idGenerator, err := nanoid.Standard(15)
	if err != nil {
		return ""
	}
	return idGenerator()
}
