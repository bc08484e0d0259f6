package config

import (
	"context"
	"sync"

	"github.com/trebuchet-org/nftops/internal/config"
	domainconfig "github.com/trebuchet-org/nftops/internal/domain/config"
	"github.com/trebuchet-org/nftops/internal/usecase"
)

// NetworkResolverAdapter serves usecase.NetworkResolver from the configured
// networks, remembering each successful resolution for the rest of the run
type NetworkResolverAdapter struct {
	resolver *config.NetworkResolver

	mu       sync.Mutex
	resolved map[string]domainconfig.Network
}

func NewNetworkResolverAdapter(resolver *config.NetworkResolver) *NetworkResolverAdapter {
	return &NetworkResolverAdapter{
		resolver: resolver,
		resolved: map[string]domainconfig.Network{},
	}
}

func (a *NetworkResolverAdapter) GetNetworks(ctx context.Context) []string {
	return a.resolver.Networks()
}

// ResolveNetwork returns a copy so callers cannot mutate the memoized entry
func (a *NetworkResolverAdapter) ResolveNetwork(ctx context.Context, name string) (*domainconfig.Network, error) {
	a.mu.Lock()
	n, ok := a.resolved[name]
	a.mu.Unlock()
	if ok {
		return &n, nil
	}

	network, err := a.resolver.Resolve(ctx, name)
	if err != nil {
		return nil, err
	}

	a.mu.Lock()
	a.resolved[name] = *network
	a.mu.Unlock()
	return network, nil
}

func (a *NetworkResolverAdapter) ChainAlias(name string) string {
	return a.resolver.ChainAlias(name)
}

var _ usecase.NetworkResolver = (*NetworkResolverAdapter)(nil)
