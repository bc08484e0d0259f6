package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/trebuchet-org/nftops/internal/domain/config"
)

// SetConfigParams names the key and its new value
type SetConfigParams struct {
	Key   string
	Value string
}

// SetConfigResult contains the saved config
type SetConfigResult struct {
	UpdatedConfig *config.LocalConfig
	ConfigPath    string
	Key           config.ConfigKey
	Value         string
}

// SetConfig stores a default env or network
type SetConfig struct {
	store    LocalConfigStore
	resolver NetworkResolver
}

// NewSetConfig creates a new SetConfig use case
func NewSetConfig(store LocalConfigStore, resolver NetworkResolver) *SetConfig {
	return &SetConfig{store: store, resolver: resolver}
}

// Run validates network names against the known networks before saving
func (uc *SetConfig) Run(ctx context.Context, params SetConfigParams) (*SetConfigResult, error) {
	key, err := config.ParseConfigKey(params.Key)
	if err != nil {
		return nil, err
	}

	if key == config.ConfigKeyNetwork {
		known := uc.resolver.GetNetworks(ctx)
		if !lo.Contains(known, params.Value) {
			return nil, fmt.Errorf("unknown network %q\nAvailable networks: %s", params.Value, strings.Join(known, ", "))
		}
	}

	cfg, err := uc.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.Set(key, params.Value)

	if err := uc.store.Save(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to save config: %w", err)
	}

	return &SetConfigResult{
		UpdatedConfig: cfg,
		ConfigPath:    uc.store.GetPath(),
		Key:           key,
		Value:         params.Value,
	}, nil
}
