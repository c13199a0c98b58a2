package domain

import "errors"

var (
	ErrWalletNotFound = errors.New("wallet not found in registry")
	ErrTxnNotFound    = errors.New("txn not found")
	ErrEmptyTxnData   = errors.New("txn data is empty")
	ErrUnknownNetwork = errors.New("unknown network tag")
	ErrCreateFailed   = errors.New("asset create failed")
	ErrTransferFailed = errors.New("asset transfer failed")
)
