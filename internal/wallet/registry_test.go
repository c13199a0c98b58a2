package wallet

import (
	"testing"

	"github.com/CosmiCloud/othub-processor/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryLookupByPublicKey(t *testing.T) {
	registry, err := NewRegistry([]domain.WalletIdentity{
		{Name: "alpha", PublicKey: "pk1", PrivateKey: "sk1"},
		{Name: "beta", PublicKey: "pk2", PrivateKey: "sk2"},
	})
	require.NoError(t, err)

	identity, err := registry.ByPublicKey("pk2")
	require.NoError(t, err)
	assert.Equal(t, "beta", identity.Name)
	assert.Equal(t, 1, identity.Index)

	_, err = registry.ByPublicKey("pk3")
	assert.ErrorIs(t, err, domain.ErrWalletNotFound)
}

func TestRegistryRejectsEmptyAndDuplicates(t *testing.T) {
	_, err := NewRegistry(nil)
	assert.Error(t, err)

	_, err = NewRegistry([]domain.WalletIdentity{
		{Name: "alpha", PublicKey: "pk1"},
		{Name: "beta", PublicKey: "pk1"},
	})
	assert.Error(t, err)
}

func TestRegistryWalletsPreservesOrder(t *testing.T) {
	registry, err := NewRegistry([]domain.WalletIdentity{
		{Name: "alpha", PublicKey: "pk1"},
		{Name: "beta", PublicKey: "pk2"},
		{Name: "gamma", PublicKey: "pk3"},
	})
	require.NoError(t, err)

	wallets := registry.Wallets()
	require.Len(t, wallets, 3)
	assert.Equal(t, []string{"pk1", "pk2", "pk3"}, []string{wallets[0].PublicKey, wallets[1].PublicKey, wallets[2].PublicKey})
	assert.Equal(t, 2, wallets[2].Index)
}
