package usecase

import (
	"context"
	"crypto/ecdsa"

	"github.com/trebuchet-org/nftops/internal/domain"
	"github.com/trebuchet-org/nftops/internal/domain/config"
)

// ArtifactStore looks up compiled contract artifacts
type ArtifactStore interface {
	Get(name string) (*domain.Artifact, error)
	BuildInfo(artifact *domain.Artifact) (*domain.BuildInfo, error)
}

// ChainDialer opens sessions against an EVM node
type ChainDialer interface {
	Dial(ctx context.Context, network *config.Network) (ChainSession, error)
}

// ChainSession deploys and calls contracts with the network's first account
type ChainSession interface {
	ChainID() uint64
	From() string
	Deploy(ctx context.Context, artifact *domain.Artifact, args []string) (*domain.Deployment, error)
	DeployProxy(ctx context.Context, impl, proxy *domain.Artifact, initializer string, args []string) (*domain.ProxyDeployment, error)
	Transact(ctx context.Context, to string, signature string, args ...string) (*domain.TxReceipt, error)
	ImplementationAddress(ctx context.Context, proxy string) (string, error)
	CodeAt(ctx context.Context, address string) ([]byte, error)
	Accounts(ctx context.Context) ([]domain.AccountInfo, error)
	Close()
}

// ABIEncoder packs string arguments against a contract ABI
type ABIEncoder interface {
	EncodeConstructorArgs(artifact *domain.Artifact, args []string) ([]byte, error)
}

// DeploymentStore persists the per env/network bookkeeping files
type DeploymentStore interface {
	Save(ctx context.Context, req domain.SaveRequest) error
	Load(ctx context.Context, env, chainAlias string) (*domain.Deployments, error)
	List(ctx context.Context, env string) ([]string, error)
	Environments(ctx context.Context) ([]string, error)
	Root() string
}

// NetworkResolver resolves network names
type NetworkResolver interface {
	GetNetworks(ctx context.Context) []string
	ResolveNetwork(ctx context.Context, name string) (*config.Network, error)
	ChainAlias(name string) string
}

// ExplorerTarget is a block explorer API endpoint
type ExplorerTarget struct {
	APIURL string
	APIKey string
	WebURL string
}

// ContractVerifier talks to an Etherscan-compatible explorer
type ContractVerifier interface {
	VerifySource(ctx context.Context, target ExplorerTarget, req domain.SourceVerification) error
	VerifyProxy(ctx context.Context, target ExplorerTarget, proxyAddress, expectedImplementation string) error
}

// TypedDataSigner signs EIP-712 messages
type TypedDataSigner interface {
	Sign(key *ecdsa.PrivateKey, d domain.SigningDomain, schema domain.SigningSchema, message map[string]string) (*domain.Signature, error)
	Recover(d domain.SigningDomain, schema domain.SigningSchema, message map[string]string, signature string) (string, error)
}

// PlanLoader reads plan files
type PlanLoader interface {
	Load(path string) (*domain.Plan, error)
}

// ObjectStore uploads files to shared storage
type ObjectStore interface {
	EnsureBucket(ctx context.Context) error
	Upload(ctx context.Context, key, path, contentType string) error
	Location() string
}

// LocalConfigStore handles local config persistence
type LocalConfigStore interface {
	Exists() bool
	Load(ctx context.Context) (*config.LocalConfig, error)
	Save(ctx context.Context, config *config.LocalConfig) error
	GetPath() string
}

// InteractiveSelector asks the user to choose or confirm
type InteractiveSelector interface {
	SelectOption(ctx context.Context, prompt string, options []string) (int, error)
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage    string
	Current  int
	Total    int
	Message  string
	Spinner  bool
	Metadata interface{}
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}

// NopProgress is a no-op implementation of ProgressSink
type NopProgress struct{}

func (NopProgress) OnProgress(context.Context, ProgressEvent) {}
func (NopProgress) Info(string)                               {}
func (NopProgress) Error(string)                              {}
