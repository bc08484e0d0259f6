//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/nftops/internal/adapters"
	"github.com/trebuchet-org/nftops/internal/config"
	"github.com/trebuchet-org/nftops/internal/logging"
	"github.com/trebuchet-org/nftops/internal/usecase"
)

// InitApp creates a fully wired App instance
func InitApp(v *viper.Viper, sink usecase.ProgressSink) (*App, error) {
	wire.Build(
		// Configuration
		config.Provider,
		config.ProvideNetworkResolver,
		logging.LoggingSet,

		// Adapters
		adapters.AllAdapters,

		// Use cases
		usecase.NewRunTask,
		usecase.NewRunPlan,
		usecase.NewVerifyDeployment,
		usecase.NewSignTypedData,
		usecase.NewListAccounts,
		usecase.NewListNetworks,
		usecase.NewListDeployments,
		usecase.NewShowDeployment,
		usecase.NewCheckStatus,
		usecase.NewPublishDeployments,
		usecase.NewShowConfig,
		usecase.NewSetConfig,
		usecase.NewRemoveConfig,

		// App
		NewApp,
	)
	return nil, nil
}
