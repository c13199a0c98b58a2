package domain

// FailureEvent is built once per failed attempt and consumed exactly once by
// the recovery handler. Never persisted.
type FailureEvent struct {
	ErrorName string
	Wallet    WalletIdentity
	Request   RequestType
	Network   string
	UAL       string
	Receiver  string
}

// Compensation names the state transition recovery applied.
type Compensation string

const (
	CompensationAbandoned   Compensation = "abandoned"
	CompensationRequeued    Compensation = "requeued"
	CompensationShadowRetry Compensation = "shadow_retry"
	CompensationNone        Compensation = "none"
)

// Disposition is the terminal outcome of one processing attempt.
type Disposition string

const (
	DispositionComplete    Disposition = "complete"
	DispositionAbandoned   Disposition = "abandoned"
	DispositionRequeued    Disposition = "requeued"
	DispositionShadowRetry Disposition = "shadow_retry"
)

// ProcessOutcome distinguishes "ledger succeeded, store failed" from "ledger
// failed" without log parsing. Process never raises; it reports here.
type ProcessOutcome struct {
	TxnID       string
	Disposition Disposition
	UAL         string
	State       string
	CreateErr   error
	TransferErr error
	PersistErrs []error
}
