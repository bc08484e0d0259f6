package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskSpecResolveParams(t *testing.T) {
	spec := TaskSpec{
		Name: "deploy-erc721",
		Params: []TaskParam{
			{Name: "name", Required: true},
			{Name: "ver", Required: true},
			{Name: "symbol", Required: true},
			{Name: "base-uri", Env: "BASE_URI"},
			{Name: "whitelist", Default: ""},
		},
	}
	env := map[string]string{"BASE_URI": "ipfs://base/"}
	getenv := func(k string) string { return env[k] }

	t.Run("missing params are reported together", func(t *testing.T) {
		_, err := spec.ResolveParams(map[string]string{"ver": "1"}, getenv)
		require.Error(t, err)

		var missing MissingParamsErr
		require.True(t, errors.As(err, &missing))
		assert.Equal(t, []string{"name", "symbol"}, missing.Params)
		assert.ErrorIs(t, err, ErrMissingParam)
	})

	t.Run("env fallback", func(t *testing.T) {
		values, err := spec.ResolveParams(map[string]string{"name": "T", "ver": "1", "symbol": "TT"}, getenv)
		require.NoError(t, err)
		assert.Equal(t, "ipfs://base/", values.Get("base-uri"))
	})

	t.Run("flag beats env", func(t *testing.T) {
		values, err := spec.ResolveParams(map[string]string{"name": "T", "ver": "1", "symbol": "TT", "base-uri": "https://x/"}, getenv)
		require.NoError(t, err)
		assert.Equal(t, "https://x/", values.Get("base-uri"))
	})
}

func TestSaveRequestEntry(t *testing.T) {
	req := SaveRequest{Contract: "Auction", Name: UnnamedContract, Version: "2", Address: "0x1", Block: 7}
	assert.Equal(t, "Auction_V2", req.Key())
	assert.Equal(t, ContractEntry{Address: "0x1", Version: "2", StartingBlock: 7}, req.Entry())

	req.Name = "Marketplace"
	assert.Equal(t, "Marketplace", req.Entry().Name)
}

func TestSplitContractKey(t *testing.T) {
	c, v, ok := SplitContractKey("ERC721PresetMintableURIUpgradeable_V12")
	assert.True(t, ok)
	assert.Equal(t, "ERC721PresetMintableURIUpgradeable", c)
	assert.Equal(t, "12", v)

	_, _, ok = SplitContractKey("NoVersion")
	assert.False(t, ok)
}
