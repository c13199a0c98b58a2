package domain

type TxnRepository interface {
	MarkProcessing(txnID, approver string) error
	MarkCreated(txnID, ual, state string) error
	MarkComplete(txnID string) error

	// Abandon and Requeue are scoped by approver + request + PROCESSING, not
	// by txn id, mirroring how the ledger table is shared between workers.
	Abandon(approver string) error
	Requeue(approver string) error

	InsertShadow(record *TxnRecord) error
	AnnotateShadow(ual, description string) error

	GetByID(txnID string) (*TxnRecord, error)
	FindPending(limit int) ([]*TxnRecord, error)
}
