package usecase

import (
	"context"

	"github.com/trebuchet-org/nftops/internal/domain"
	"github.com/trebuchet-org/nftops/internal/domain/config"
)

// ListDeploymentsParams filters the listing
type ListDeploymentsParams struct {
	Env     string
	AllEnvs bool
	// ChainAlias limits to one network folder; empty lists all
	ChainAlias string
}

// ListDeploymentsResult holds one entry per env/network folder
type ListDeploymentsResult struct {
	Groups []*domain.Deployments
	Total  int
}

// ListDeployments lists the recorded contracts
type ListDeployments struct {
	config *config.RuntimeConfig
	store  DeploymentStore
}

// NewListDeployments creates a new ListDeployments use case
func NewListDeployments(cfg *config.RuntimeConfig, store DeploymentStore) *ListDeployments {
	return &ListDeployments{config: cfg, store: store}
}

// Run executes the use case
func (uc *ListDeployments) Run(ctx context.Context, params ListDeploymentsParams) (*ListDeploymentsResult, error) {
	envs := []string{params.Env}
	if params.Env == "" {
		envs = []string{uc.config.Env}
	}
	if params.AllEnvs {
		all, err := uc.store.Environments(ctx)
		if err != nil {
			return nil, err
		}
		envs = all
	}

	result := &ListDeploymentsResult{}
	for _, env := range envs {
		aliases, err := uc.store.List(ctx, env)
		if err != nil {
			return nil, err
		}
		for _, alias := range aliases {
			if params.ChainAlias != "" && alias != params.ChainAlias {
				continue
			}
			d, err := uc.store.Load(ctx, env, alias)
			if err != nil {
				return nil, err
			}
			if len(d.Contracts) == 0 {
				continue
			}
			result.Groups = append(result.Groups, d)
			result.Total += len(d.Contracts)
		}
	}
	return result, nil
}
