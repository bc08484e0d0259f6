package usecase

import (
	"context"

	"github.com/trebuchet-org/nftops/internal/domain/config"
)

// ShowConfigResult holds the stored defaults next to what this run resolved
// from flags, environment and nftops.toml
type ShowConfigResult struct {
	Config     *config.LocalConfig
	ConfigPath string
	Exists     bool

	EffectiveEnv     string
	EffectiveNetwork string
	ArtifactsDir     string
	DeploymentsDir   string
	StorageTarget    string
}

// ShowConfig reports local defaults and effective settings
type ShowConfig struct {
	config *config.RuntimeConfig
	store  LocalConfigStore
}

// NewShowConfig creates a new ShowConfig use case
func NewShowConfig(cfg *config.RuntimeConfig, store LocalConfigStore) *ShowConfig {
	return &ShowConfig{config: cfg, store: store}
}

func (uc *ShowConfig) Run(ctx context.Context) (*ShowConfigResult, error) {
	local, err := uc.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	result := &ShowConfigResult{
		Config:         local,
		ConfigPath:     uc.store.GetPath(),
		Exists:         uc.store.Exists(),
		EffectiveEnv:   uc.config.Env,
		ArtifactsDir:   uc.config.ArtifactsDir(),
		DeploymentsDir: uc.config.DeploymentsDir(),
	}
	if uc.config.Network != nil {
		result.EffectiveNetwork = uc.config.Network.Name
	}
	if s := uc.config.Storage; s.Configured() {
		result.StorageTarget = s.Endpoint + "/" + s.Bucket
	}
	return result, nil
}
