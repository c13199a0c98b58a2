package domain

import "context"

type Environment string

const (
	EnvTestnet Environment = "testnet"
	EnvMainnet Environment = "mainnet"
)

// BlockchainIdentity parameterizes a ledger call with the chain tag and the
// wallet keypair signing it.
type BlockchainIdentity struct {
	Name       string
	PublicKey  string
	PrivateKey string
}

type LedgerOptions struct {
	Environment Environment
	Epochs      int
	Keywords    string
	Blockchain  BlockchainIdentity
}

type CreateResult struct {
	UAL   string
	State string
}

// LedgerClient is the external node the assets are published on. Both calls
// involve network round trips and internal retries, so they take a context.
type LedgerClient interface {
	Create(ctx context.Context, payload string, opts LedgerOptions) (*CreateResult, error)
	Transfer(ctx context.Context, ual, receiver string, opts LedgerOptions) error
}

// LedgerError carries the node's named error so recovery can classify it.
type LedgerError struct {
	Name    string
	Message string
}

func (e *LedgerError) Error() string {
	if e.Name == "" {
		return e.Message
	}
	return e.Name + ": " + e.Message
}
