package app

import (
	"log/slog"

	"github.com/trebuchet-org/nftops/internal/domain/config"
	"github.com/trebuchet-org/nftops/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig
	Log    *slog.Logger

	// Shared dependencies
	Selector usecase.InteractiveSelector
	Progress usecase.ProgressSink

	// Use cases
	RunTask            *usecase.RunTask
	RunPlan            *usecase.RunPlan
	VerifyDeployment   *usecase.VerifyDeployment
	SignTypedData      *usecase.SignTypedData
	ListAccounts       *usecase.ListAccounts
	ListNetworks       *usecase.ListNetworks
	ListDeployments    *usecase.ListDeployments
	ShowDeployment     *usecase.ShowDeployment
	CheckStatus        *usecase.CheckStatus
	PublishDeployments *usecase.PublishDeployments
	ShowConfig         *usecase.ShowConfig
	SetConfig          *usecase.SetConfig
	RemoveConfig       *usecase.RemoveConfig
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	log *slog.Logger,
	selector usecase.InteractiveSelector,
	progress usecase.ProgressSink,
	runTask *usecase.RunTask,
	runPlan *usecase.RunPlan,
	verifyDeployment *usecase.VerifyDeployment,
	signTypedData *usecase.SignTypedData,
	listAccounts *usecase.ListAccounts,
	listNetworks *usecase.ListNetworks,
	listDeployments *usecase.ListDeployments,
	showDeployment *usecase.ShowDeployment,
	checkStatus *usecase.CheckStatus,
	publishDeployments *usecase.PublishDeployments,
	showConfig *usecase.ShowConfig,
	setConfig *usecase.SetConfig,
	removeConfig *usecase.RemoveConfig,
) (*App, error) {
	return &App{
		Config:             cfg,
		Log:                log,
		Selector:           selector,
		Progress:           progress,
		RunTask:            runTask,
		RunPlan:            runPlan,
		VerifyDeployment:   verifyDeployment,
		SignTypedData:      signTypedData,
		ListAccounts:       listAccounts,
		ListNetworks:       listNetworks,
		ListDeployments:    listDeployments,
		ShowDeployment:     showDeployment,
		CheckStatus:        checkStatus,
		PublishDeployments: publishDeployments,
		ShowConfig:         showConfig,
		SetConfig:          setConfig,
		RemoveConfig:       removeConfig,
	}, nil
}
