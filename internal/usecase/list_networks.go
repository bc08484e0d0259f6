package usecase

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// ListNetworksResult contains the result of listing networks
type ListNetworksResult struct {
	Networks []NetworkStatus
}

// NetworkStatus is one configured network. Error is set when its chain ID
// could not be resolved.
type NetworkStatus struct {
	Name     string
	ChainID  uint64
	Alias    string
	RPCURL   string
	Explorer string
	Accounts int
	Error    error  `json:"-"`
	Problem  string `json:",omitempty"`
}

// resolveConcurrency bounds parallel eth_chainId lookups
const resolveConcurrency = 4

// ListNetworks lists built-in and configured networks
type ListNetworks struct {
	resolver NetworkResolver
}

// NewListNetworks creates a new ListNetworks use case
func NewListNetworks(resolver NetworkResolver) *ListNetworks {
	return &ListNetworks{resolver: resolver}
}

// Run resolves every network, keeping the sorted order of GetNetworks
func (uc *ListNetworks) Run(ctx context.Context) (*ListNetworksResult, error) {
	names := uc.resolver.GetNetworks(ctx)
	networks := make([]NetworkStatus, len(names))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(resolveConcurrency)
	for i, name := range names {
		g.Go(func() error {
			status := NetworkStatus{Name: name, Alias: uc.resolver.ChainAlias(name)}
			info, err := uc.resolver.ResolveNetwork(gctx, name)
			if err != nil {
				status.Error = err
				status.Problem = err.Error()
			} else {
				status.ChainID = info.ChainID
				status.RPCURL = info.RPCURL
				status.Explorer = info.ExplorerURL
				status.Accounts = len(info.Accounts)
			}
			networks[i] = status
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &ListNetworksResult{Networks: networks}, nil
}
