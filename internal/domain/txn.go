package domain

import "time"

type Progress string

const (
	ProgressPending        Progress = "PENDING"
	ProgressProcessing     Progress = "PROCESSING"
	ProgressCreated        Progress = "CREATED"
	ProgressComplete       Progress = "COMPLETE"
	ProgressAbandoned      Progress = "ABANDONED"
	ProgressTransferFailed Progress = "TRANSFER-FAILED"
)

type RequestType string

const (
	RequestCreateAndTransfer RequestType = "Create-n-Transfer"
	RequestTransfer          RequestType = "Transfer"
)

// AbandonedData replaces txn_data when a transaction is abandoned.
const AbandonedData = `{"data":"bad"}`

type TxnRecord struct {
	TxnID       string
	Progress    Progress
	Approver    string
	APIKey      string
	Request     RequestType
	Network     string
	AppName     string
	Description string
	Data        string
	UAL         string
	Keywords    string
	State       string
	TxnHash     string
	TxnFee      float64
	TracFee     float64
	Epochs      int
	Receiver    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TxnRequest is the inbound unit of work naming a pending txn_header row.
type TxnRequest struct {
	TxnID    string
	Approver string
	Data     string
	Network  string
	Epochs   int
	Keywords string
	Receiver string
	APIKey   string
}
