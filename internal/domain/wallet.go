package domain

// WalletIdentity is a keypair the processor publishes with. Loaded once at
// startup and never mutated, so it is safe to share across goroutines.
type WalletIdentity struct {
	Name       string
	PublicKey  string
	PrivateKey string
	Index      int
}

type WalletRegistry interface {
	ByPublicKey(publicKey string) (*WalletIdentity, error)
	Wallets() []WalletIdentity
}
