package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/nftops/internal/domain"
	"github.com/trebuchet-org/nftops/internal/domain/config"
)

func TestBuildNetworksMergesOverPresets(t *testing.T) {
	t.Setenv("DEV_KEY", "0x01")

	networks, err := BuildNetworks(map[string]config.NetworkFileConfig{
		"localhost": {URL: "http://127.0.0.1:9545"},
		"fuji":      {Accounts: []string{"${DEV_KEY}", "", "0x02"}},
		"custom":    {URL: "http://node:8545"},
	})
	require.NoError(t, err)

	local := networks["localhost"]
	assert.Equal(t, "http://127.0.0.1:9545", local.RPCURL)
	assert.Equal(t, uint64(31337), local.ChainID)
	assert.Equal(t, uint64(3000000000), local.GasPrice)
	assert.Equal(t, float64(1), local.GasMultiplier)
	assert.Equal(t, []string{hardhatDevKey}, local.Accounts)

	fuji := networks["fuji"]
	assert.Equal(t, "https://api.avax-test.network/ext/bc/C/rpc", fuji.RPCURL)
	assert.Equal(t, []string{"0x01", "0x02"}, fuji.Accounts)
	assert.Equal(t, "avalanche", fuji.Alias)
	assert.Equal(t, "https://api-testnet.snowtrace.io/api", fuji.ExplorerAPIURL)

	custom := networks["custom"]
	assert.Equal(t, "custom", custom.Alias)
	assert.Equal(t, float64(1), custom.GasMultiplier)

	_, err = BuildNetworks(map[string]config.NetworkFileConfig{"broken": {ChainID: 1}})
	assert.Error(t, err)
}

func TestChainAlias(t *testing.T) {
	networks, err := BuildNetworks(map[string]config.NetworkFileConfig{
		"mumbai": {Alias: "polygon-testnet"},
	})
	require.NoError(t, err)
	r := NewNetworkResolver(t.TempDir(), networks)

	tests := map[string]string{
		"goerli":        "ethereum",
		"mainnet":       "ethereum",
		"matic":         "polygon",
		"mumbai":        "polygon-testnet",
		"fuji":          "avalanche",
		"fantomTestnet": "fantom",
		"bnbTestnet":    "bsc",
		"localhost":     "localhost",
		"unlisted":      "unlisted",
	}
	for name, want := range tests {
		assert.Equal(t, want, r.ChainAlias(name), name)
	}
}

func TestNetworkResolverFetchesAndCachesChainID(t *testing.T) {
	dataDir := t.TempDir()
	networks := map[string]*config.Network{
		"devnet": {Name: "devnet", RPCURL: "http://devnet:8545", Alias: "devnet"},
	}

	calls := 0
	r := NewNetworkResolver(dataDir, networks)
	r.fetch = func(ctx context.Context, rpcURL string) (uint64, error) {
		calls++
		assert.Equal(t, "http://devnet:8545", rpcURL)
		return 250, nil
	}

	n, err := r.Resolve(context.Background(), "devnet")
	require.NoError(t, err)
	assert.Equal(t, uint64(250), n.ChainID)
	assert.Equal(t, "https://ftmscan.com", n.ExplorerURL)
	assert.Equal(t, uint64(0), networks["devnet"].ChainID, "resolver must not mutate the definitions")

	_, err = os.Stat(filepath.Join(dataDir, "cache", "chainIds.json"))
	require.NoError(t, err)

	// a fresh resolver reads the persisted cache
	r2 := NewNetworkResolver(dataDir, networks)
	r2.fetch = func(ctx context.Context, rpcURL string) (uint64, error) {
		return 0, errors.New("should not be called")
	}
	n, err = r2.Resolve(context.Background(), "devnet")
	require.NoError(t, err)
	assert.Equal(t, uint64(250), n.ChainID)
	assert.Equal(t, 1, calls)

	_, err = r.Resolve(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrUnknownNetwork)
}

func TestLocalhostSignsWithNodeDevAccount(t *testing.T) {
	networks, err := BuildNetworks(nil)
	require.NoError(t, err)

	key, err := Signer(networks["localhost"])
	require.NoError(t, err)
	assert.Equal(t, "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266", crypto.PubkeyToAddress(key.PublicKey).Hex())

	overridden, err := BuildNetworks(map[string]config.NetworkFileConfig{
		"localhost": {Accounts: []string{"0x02"}},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"0x02"}, overridden["localhost"].Accounts)
}
