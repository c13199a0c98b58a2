package kafka

// TxnRequestEvent names a pending txn_header row assigned to a wallet.
type TxnRequestEvent struct {
	TxnID    string `json:"txn_id"`
	Approver string `json:"approver"`
	TxnData  string `json:"txn_data"`
	Network  string `json:"network"`
	Epochs   int    `json:"epochs"`
	Keywords string `json:"keywords"`
	Receiver string `json:"receiver"`
	APIKey   string `json:"api_key"`
}

// TxnOutcomeEvent reports the terminal disposition of one attempt.
type TxnOutcomeEvent struct {
	TxnID     string `json:"txn_id"`
	Approver  string `json:"approver"`
	Progress  string `json:"progress"`
	UAL       string `json:"ual,omitempty"`
	ErrorName string `json:"error_name,omitempty"`
}
