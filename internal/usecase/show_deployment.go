package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/trebuchet-org/nftops/internal/domain"
	"github.com/trebuchet-org/nftops/internal/domain/config"
)

// ShowDeploymentParams selects one record
type ShowDeploymentParams struct {
	Env        string
	ChainAlias string
	Key        string
}

// ShowDeploymentResult is a single record with its context
type ShowDeploymentResult struct {
	Env        string
	ChainAlias string
	Network    *domain.NetworkInfo
	Key        string
	Entry      domain.ContractEntry
	Verify     *domain.VerifyEntry
}

// ShowDeployment shows one contracts.json record
type ShowDeployment struct {
	config   *config.RuntimeConfig
	store    DeploymentStore
	resolver NetworkResolver
	selector InteractiveSelector
}

// NewShowDeployment creates a new ShowDeployment use case
func NewShowDeployment(cfg *config.RuntimeConfig, store DeploymentStore, resolver NetworkResolver, selector InteractiveSelector) *ShowDeployment {
	return &ShowDeployment{config: cfg, store: store, resolver: resolver, selector: selector}
}

// Run executes the use case
func (uc *ShowDeployment) Run(ctx context.Context, params ShowDeploymentParams) (*ShowDeploymentResult, error) {
	env := params.Env
	if env == "" {
		env = uc.config.Env
	}
	alias := params.ChainAlias
	if alias == "" {
		if uc.config.Network == nil {
			return nil, fmt.Errorf("no network selected, use --network")
		}
		alias = uc.resolver.ChainAlias(uc.config.Network.Name)
	}

	d, err := uc.store.Load(ctx, env, alias)
	if err != nil {
		return nil, err
	}
	keys := d.Contracts.Keys()
	if len(keys) == 0 {
		return nil, fmt.Errorf("no contracts recorded in %s/%s: %w", env, alias, domain.ErrNotFound)
	}

	key := params.Key
	if key == "" {
		idx, err := uc.selector.SelectOption(ctx, "Select a contract", keys)
		if err != nil {
			return nil, err
		}
		key = keys[idx]
	}

	entry, ok := d.Contracts[key]
	if !ok {
		// accept a bare contract name when exactly one version exists
		var matches []string
		for _, k := range keys {
			if c, _, ok := domain.SplitContractKey(k); ok && strings.EqualFold(c, key) {
				matches = append(matches, k)
			}
		}
		if len(matches) != 1 {
			return nil, fmt.Errorf("%s not found in %s/%s: %w", key, env, alias, domain.ErrNotFound)
		}
		key = matches[0]
		entry = d.Contracts[key]
	}

	result := &ShowDeploymentResult{
		Env:        env,
		ChainAlias: alias,
		Network:    d.Network,
		Key:        key,
		Entry:      entry,
	}
	if v, ok := d.Verify[key]; ok {
		result.Verify = &v
	}
	return result, nil
}
