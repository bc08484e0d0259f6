package usecase

import (
	"context"
	"fmt"

	"github.com/trebuchet-org/nftops/internal/domain"
	"github.com/trebuchet-org/nftops/internal/domain/config"
)

// CheckStatusResult lists the on-chain state of each recorded contract
type CheckStatusResult struct {
	Env        string
	ChainAlias string
	Statuses   []domain.ContractStatus
}

// Missing counts entries without code
func (r *CheckStatusResult) Missing() int {
	n := 0
	for _, s := range r.Statuses {
		if !s.Live {
			n++
		}
	}
	return n
}

// CheckStatus checks that every recorded address has code
type CheckStatus struct {
	config   *config.RuntimeConfig
	store    DeploymentStore
	dialer   ChainDialer
	resolver NetworkResolver
}

// NewCheckStatus creates a new CheckStatus use case
func NewCheckStatus(cfg *config.RuntimeConfig, store DeploymentStore, dialer ChainDialer, resolver NetworkResolver) *CheckStatus {
	return &CheckStatus{config: cfg, store: store, dialer: dialer, resolver: resolver}
}

// Run executes the use case
func (uc *CheckStatus) Run(ctx context.Context, env string) (*CheckStatusResult, error) {
	network := uc.config.Network
	if network == nil {
		return nil, fmt.Errorf("no network selected, use --network")
	}
	if env == "" {
		env = uc.config.Env
	}
	alias := uc.resolver.ChainAlias(network.Name)

	d, err := uc.store.Load(ctx, env, alias)
	if err != nil {
		return nil, err
	}

	result := &CheckStatusResult{Env: env, ChainAlias: alias}
	if len(d.Contracts) == 0 {
		return result, nil
	}

	session, err := uc.dialer.Dial(ctx, network)
	if err != nil {
		return nil, err
	}
	defer session.Close()

	for _, key := range d.Contracts.Keys() {
		entry := d.Contracts[key]
		status := domain.ContractStatus{Key: key, Entry: entry}

		code, err := session.CodeAt(ctx, entry.Address)
		switch {
		case err != nil:
			status.Reason = err.Error()
		case len(code) == 0:
			status.Reason = "no code at address"
		default:
			status.Live = true
			status.CodeSize = len(code)
		}
		result.Statuses = append(result.Statuses, status)
	}
	return result, nil
}
