package config

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/nftops/internal/config"
	"github.com/trebuchet-org/nftops/internal/domain"
	domainconfig "github.com/trebuchet-org/nftops/internal/domain/config"
)

func TestNetworkResolverAdapterMemoizes(t *testing.T) {
	networks, err := config.BuildNetworks(map[string]domainconfig.NetworkFileConfig{})
	require.NoError(t, err)
	a := NewNetworkResolverAdapter(config.NewNetworkResolver(t.TempDir(), networks))
	ctx := context.Background()

	first, err := a.ResolveNetwork(ctx, "localhost")
	require.NoError(t, err)
	assert.Equal(t, uint64(31337), first.ChainID)

	first.ChainID = 1
	second, err := a.ResolveNetwork(ctx, "localhost")
	require.NoError(t, err)
	assert.Equal(t, uint64(31337), second.ChainID)

	assert.Equal(t, "localhost", a.ChainAlias("localhost"))
	assert.Contains(t, a.GetNetworks(ctx), "mumbai")

	_, err = a.ResolveNetwork(ctx, "nowhere")
	assert.ErrorIs(t, err, domain.ErrUnknownNetwork)
}
