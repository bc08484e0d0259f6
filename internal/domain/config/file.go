package config

// FileConfig is the content of nftops.toml
type FileConfig struct {
	Networks  map[string]NetworkFileConfig `toml:"networks"`
	Etherscan EtherscanConfig              `toml:"etherscan"`
	Paths     PathsConfig                  `toml:"paths"`
	Storage   StorageConfig                `toml:"storage"`
}

// NetworkFileConfig is a [networks.<name>] table. Empty fields are filled
// from the built-in preset of the same name.
type NetworkFileConfig struct {
	URL            string   `toml:"url"`
	ChainID        uint64   `toml:"chain_id"`
	Accounts       []string `toml:"accounts"`
	GasPrice       uint64   `toml:"gas_price"`
	GasMultiplier  float64  `toml:"gas_multiplier" default:"1"`
	ExplorerAPIURL string   `toml:"explorer_api_url"`
	ExplorerURL    string   `toml:"explorer_url"`
	Alias          string   `toml:"alias"`
}

type EtherscanConfig struct {
	APIKey string            `toml:"api_key"`
	Keys   map[string]string `toml:"keys"`
}

// KeyFor returns the explorer API key for a network
func (e EtherscanConfig) KeyFor(network string) string {
	if k := e.Keys[network]; k != "" {
		return k
	}
	return e.APIKey
}

type PathsConfig struct {
	Artifacts   string `toml:"artifacts" default:"artifacts"`
	Deployments string `toml:"deployments" default:"deployments"`
}

// StorageConfig is the S3-compatible bucket used by publish
type StorageConfig struct {
	Endpoint  string `toml:"endpoint"`
	Bucket    string `toml:"bucket"`
	Region    string `toml:"region"`
	AccessKey string `toml:"access_key"`
	SecretKey string `toml:"secret_key"`
	Secure    *bool  `toml:"secure" default:"true"`
	Prefix    string `toml:"prefix" default:"deployments"`
}

// Configured reports whether publish has somewhere to go
func (s StorageConfig) Configured() bool {
	return s.Endpoint != "" && s.Bucket != ""
}
