package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/nftops/internal/domain"
)

func TestRunTask_MarketplaceWithFee(t *testing.T) {
	session := newFakeSession(31337)
	store := &fakeStore{}
	uc := newTestRunTask(localNetwork, session, store)

	multicall := "0x00000000000000000000000000000000000000mc"
	result, err := uc.Run(context.Background(), RunTaskParams{
		Task: "deploy-marketplace-with-fee",
		Params: map[string]string{
			"name":         "Marketplace",
			"ver":          "4",
			"fee-in-beeps": "10000",
			"multicall":    multicall,
			"whitelist":    "0x01  0x02",
		},
	})
	require.NoError(t, err)

	require.Len(t, session.deploys, 1)
	assert.Equal(t, fakeDeploy{Contract: "MarketplacePresetWithFee", Args: []string{"10000", "Marketplace", "4"}}, session.deploys[0])

	marketplace := result.Contracts[0].Address
	require.Len(t, session.calls, 2)
	assert.Equal(t, fakeCall{
		To:        marketplace,
		Signature: "grantRole(bytes32,address)",
		Args:      []string{domain.RoleID("OWNER_MARKETPLACE_ROLE"), multicall},
	}, session.calls[0])
	assert.Equal(t, fakeCall{
		To:        marketplace,
		Signature: "addTokensToWhitelist(address[])",
		Args:      []string{"0x01,0x02"},
	}, session.calls[1])

	require.Len(t, store.saves, 1)
	save := store.saves[0]
	assert.Equal(t, "develop", save.Env)
	assert.Equal(t, "localhost", save.ChainAlias)
	assert.Equal(t, domain.NetworkInfo{Name: "localhost", ChainID: 31337}, save.Network)
	assert.Equal(t, "MarketplacePresetWithFee_V4", save.Key())
	assert.Equal(t, "Marketplace", save.Entry().Name)
	assert.NotEmpty(t, save.ABI)
	require.NotNil(t, save.Verify)
	assert.Equal(t, []string{"10000", "Marketplace", "4"}, save.Verify.Args)
	assert.True(t, session.closed)
}

func TestRunTask_EmptyWhitelistSkipsCall(t *testing.T) {
	session := newFakeSession(31337)
	uc := newTestRunTask(localNetwork, session, &fakeStore{})

	_, err := uc.Run(context.Background(), RunTaskParams{
		Task:   "marketplace-with-fee",
		Params: map[string]string{"name": "M", "ver": "1", "fee-in-beeps": "1", "multicall": "0x1", "whitelist": ""},
	})
	require.NoError(t, err)
	require.Len(t, session.calls, 1)
	assert.Equal(t, "grantRole(bytes32,address)", session.calls[0].Signature)
}

func TestRunTask_AuctionIsUnnamed(t *testing.T) {
	session := newFakeSession(31337)
	store := &fakeStore{}
	uc := newTestRunTask(localNetwork, session, store)

	_, err := uc.Run(context.Background(), RunTaskParams{
		Task:   "deploy-auction",
		Env:    "stage",
		Params: map[string]string{"ver": "2", "multicall": "0xmc"},
	})
	require.NoError(t, err)

	require.Len(t, session.calls, 2)
	assert.Equal(t, "init()", session.calls[0].Signature)
	assert.Equal(t, []string{domain.RoleID("OWNER_AUCTION_ROLE"), "0xmc"}, session.calls[1].Args)

	require.Len(t, store.saves, 1)
	assert.Equal(t, "stage", store.saves[0].Env)
	assert.Equal(t, domain.UnnamedContract, store.saves[0].Name)
	assert.Empty(t, store.saves[0].Entry().Name)
}

func TestRunTask_UpgradeableUsesProxy(t *testing.T) {
	session := newFakeSession(31337)
	store := &fakeStore{}
	uc := newTestRunTask(localNetwork, session, store)
	uc.getenv = func(k string) string {
		if k == "BASE_URI" {
			return "ipfs://base/"
		}
		return ""
	}

	result, err := uc.Run(context.Background(), RunTaskParams{
		Task: "deploy-erc1155-upgr",
		Params: map[string]string{
			"name": "T", "ver": "1", "symbol": "TT", "fee-in-beeps": "1000", "signer": "0xsigner",
		},
	})
	require.NoError(t, err)

	require.Len(t, session.deploys, 1)
	assert.True(t, session.deploys[0].Proxy)
	assert.Equal(t, []string{"T", "TT", "1", "ipfs://base/", "0xsigner", "1000"}, session.deploys[0].Args)

	c := result.Contracts[0]
	assert.True(t, c.Verify.Proxy)
	assert.Equal(t, session.impls[c.Address], c.Verify.Implementation)
	assert.Equal(t, c.Address, store.saves[0].Address)
}

func TestRunTask_CollectionsSavesBoth(t *testing.T) {
	session := newFakeSession(31337)
	store := &fakeStore{}
	uc := newTestRunTask(localNetwork, session, store)

	_, err := uc.Run(context.Background(), RunTaskParams{
		Task:   "deploy-collections",
		Params: map[string]string{"name": "CollectionsWithSignature", "ver": "1"},
	})
	require.NoError(t, err)

	require.Len(t, store.saves, 2)
	assert.Equal(t, "CollectionsPreset_V1", store.saves[0].Key())
	assert.Empty(t, store.saves[0].Entry().Name)
	assert.Equal(t, "CollectionsPresetWithSignature_V1", store.saves[1].Key())
	assert.Equal(t, "CollectionsWithSignature", store.saves[1].Entry().Name)
	assert.Equal(t, []string{}, store.saves[0].Verify.Args)
}

func TestRunTask_SaveFailureKeepsGoing(t *testing.T) {
	session := newFakeSession(31337)
	store := &fakeStore{failKeys: map[string]bool{"CollectionsPreset_V1": true}}
	uc := newTestRunTask(localNetwork, session, store)

	result, err := uc.Run(context.Background(), RunTaskParams{
		Task:   "deploy-collections",
		Params: map[string]string{"name": "C", "ver": "1"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Len(t, store.saves, 2)
	assert.Len(t, result.Contracts, 2)
}

func TestRunTask_MissingParams(t *testing.T) {
	session := newFakeSession(31337)
	dialer := &fakeDialer{session: session}
	uc := newTestRunTask(localNetwork, session, &fakeStore{})
	uc.dialer = dialer

	_, err := uc.Run(context.Background(), RunTaskParams{
		Task:   "deploy-erc20",
		Params: map[string]string{"ver": "1"},
	})
	require.Error(t, err)

	var missing domain.MissingParamsErr
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, []string{"initial-supply", "name", "symbol"}, missing.Params)
	assert.Zero(t, dialer.dials)
}

func TestRunTask_UnknownTask(t *testing.T) {
	uc := newTestRunTask(localNetwork, newFakeSession(31337), &fakeStore{})

	_, err := uc.Run(context.Background(), RunTaskParams{Task: "deploy-nothing"})
	assert.ErrorIs(t, err, domain.ErrUnknownTask)
}

func TestRunTask_DeployFailure(t *testing.T) {
	session := newFakeSession(31337)
	session.failOn = "TestToken20"
	store := &fakeStore{}
	uc := newTestRunTask(localNetwork, session, store)

	_, err := uc.Run(context.Background(), RunTaskParams{
		Task:   "deploy-erc20",
		Params: map[string]string{"name": "T", "ver": "1", "symbol": "T", "initial-supply": "100"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to deploy TestToken20")
	assert.Empty(t, store.saves)
}

func TestTaskSpecs(t *testing.T) {
	specs := TaskSpecs()
	require.Len(t, specs, 11)

	names := make([]string, len(specs))
	for i, s := range specs {
		names[i] = s.Name
	}
	assert.Contains(t, names, "deploy-erc721-upgr")
	assert.IsIncreasing(t, names)

	spec, err := LookupTaskSpec("erc721")
	require.NoError(t, err)
	assert.Equal(t, []string{"ERC721PresetMintableRoyaltyURI", "ERC721PresetMintableURI"}, spec.Contracts)
}
