package adapters

import (
	"github.com/google/wire"
	"github.com/trebuchet-org/nftops/internal/adapters/artifacts"
	"github.com/trebuchet-org/nftops/internal/adapters/chain"
	internalconfig "github.com/trebuchet-org/nftops/internal/adapters/config"
	"github.com/trebuchet-org/nftops/internal/adapters/fs"
	"github.com/trebuchet-org/nftops/internal/adapters/interactive"
	"github.com/trebuchet-org/nftops/internal/adapters/objectstore"
	"github.com/trebuchet-org/nftops/internal/adapters/plan"
	"github.com/trebuchet-org/nftops/internal/adapters/signing"
	"github.com/trebuchet-org/nftops/internal/adapters/verification"
	"github.com/trebuchet-org/nftops/internal/usecase"
)

// FSSet provides filesystem-based implementations
var FSSet = wire.NewSet(
	fs.NewDeploymentStoreAdapter,
	wire.Bind(new(usecase.DeploymentStore), new(*fs.DeploymentStoreAdapter)),

	fs.NewLocalConfigFile,
	wire.Bind(new(usecase.LocalConfigStore), new(*fs.LocalConfigFile)),

	artifacts.NewIndex,
	wire.Bind(new(usecase.ArtifactStore), new(*artifacts.Index)),

	plan.NewYAMLLoader,
	wire.Bind(new(usecase.PlanLoader), new(*plan.YAMLLoader)),
)

// ChainSet provides go-ethereum based implementations
var ChainSet = wire.NewSet(
	chain.NewDialer,
	wire.Bind(new(usecase.ChainDialer), new(*chain.Dialer)),

	chain.NewEncoder,
	wire.Bind(new(usecase.ABIEncoder), new(*chain.Encoder)),

	signing.NewTypedDataSigner,
	wire.Bind(new(usecase.TypedDataSigner), new(*signing.TypedDataSigner)),
)

// RemoteSet provides implementations backed by external services
var RemoteSet = wire.NewSet(
	verification.NewEtherscanClient,
	wire.Bind(new(usecase.ContractVerifier), new(*verification.EtherscanClient)),

	objectstore.NewMinioStore,
	wire.Bind(new(usecase.ObjectStore), new(*objectstore.MinioStore)),
)

// InteractiveSet provides interactive implementations
var InteractiveSet = wire.NewSet(
	interactive.NewSelectorAdapter,
	wire.Bind(new(usecase.InteractiveSelector), new(*interactive.SelectorAdapter)),
)

// ConfigSet provides configuration-based implementations
var ConfigSet = wire.NewSet(
	internalconfig.NewNetworkResolverAdapter,
	wire.Bind(new(usecase.NetworkResolver), new(*internalconfig.NetworkResolverAdapter)),
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	FSSet,
	ChainSet,
	RemoteSet,
	InteractiveSet,
	ConfigSet,
)
