package config

import (
	"path/filepath"
	"time"
)

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	ProjectRoot string
	DataDir     string

	// Context settings
	Env     string   // deployment environment folder (develop, stage, ...)
	Network *Network // nil if not specified

	// Execution settings
	Debug          bool
	NonInteractive bool
	JSON           bool
	Yes            bool
	Timeout        time.Duration
	DryRun         bool

	// Resolved configurations
	Paths     PathsConfig
	Etherscan EtherscanConfig
	Storage   StorageConfig
	Networks  map[string]*Network
}

// ArtifactsDir returns the absolute hardhat artifacts directory
func (c *RuntimeConfig) ArtifactsDir() string {
	return c.resolve(c.Paths.Artifacts)
}

// DeploymentsDir returns the absolute bookkeeping directory
func (c *RuntimeConfig) DeploymentsDir() string {
	return c.resolve(c.Paths.Deployments)
}

func (c *RuntimeConfig) resolve(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.ProjectRoot, p)
}

// Network represents a resolved network
type Network struct {
	Name           string   `json:"name"`
	ChainID        uint64   `json:"chainId"`
	RPCURL         string   `json:"rpcUrl"`
	Accounts       []string `json:"-"`
	GasPrice       uint64   `json:"gasPrice,omitempty"`
	GasMultiplier  float64  `json:"gasMultiplier,omitempty"`
	ExplorerAPIURL string   `json:"explorerApiUrl,omitempty"`
	ExplorerURL    string   `json:"explorerUrl,omitempty"`
	Alias          string   `json:"alias"`
}

// IsLocal reports whether the network is a development chain
func (n *Network) IsLocal() bool {
	return n.ChainID == 31337 || n.ChainID == 1337
}
