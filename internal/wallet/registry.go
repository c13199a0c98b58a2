package wallet

import (
	"fmt"

	"github.com/CosmiCloud/othub-processor/internal/domain"
)

// Registry is an immutable lookup table of publishing wallets keyed by
// public key. Built once at startup; the index preserves config order.
type Registry struct {
	byPublicKey map[string]*domain.WalletIdentity
	ordered     []domain.WalletIdentity
}

func NewRegistry(identities []domain.WalletIdentity) (*Registry, error) {
	if len(identities) == 0 {
		return nil, fmt.Errorf("wallet registry is empty")
	}

	byPublicKey := make(map[string]*domain.WalletIdentity, len(identities))
	ordered := make([]domain.WalletIdentity, len(identities))
	for i, identity := range identities {
		identity.Index = i
		if _, ok := byPublicKey[identity.PublicKey]; ok {
			return nil, fmt.Errorf("duplicate wallet public key %s", identity.PublicKey)
		}
		ordered[i] = identity
		byPublicKey[identity.PublicKey] = &ordered[i]
	}

	return &Registry{
		byPublicKey: byPublicKey,
		ordered:     ordered,
	}, nil
}

func (r *Registry) ByPublicKey(publicKey string) (*domain.WalletIdentity, error) {
	identity, ok := r.byPublicKey[publicKey]
	if !ok {
		return nil, domain.ErrWalletNotFound
	}
	return identity, nil
}

func (r *Registry) Wallets() []domain.WalletIdentity {
	wallets := make([]domain.WalletIdentity, len(r.ordered))
	copy(wallets, r.ordered)
	return wallets
}
