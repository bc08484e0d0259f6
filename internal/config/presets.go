package config

import (
	"fmt"
	"sort"

	"github.com/creasty/defaults"
	"github.com/imdario/mergo"
	"github.com/samber/lo"
	"github.com/trebuchet-org/nftops/internal/domain/config"
)

// hardhatDevKey is account #0 of the default hardhat/anvil node mnemonic
const hardhatDevKey = "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

// presetNetworks are available without any nftops.toml entry
var presetNetworks = map[string]config.NetworkFileConfig{
	"goerli": {
		URL:      "https://goerli.infura.io/v3/${INFURA_KEY}",
		ChainID:  5,
		Accounts: []string{"${DEV_KEY}"},
	},
	"matic": {
		URL:      "https://rpc-mainnet.matic.quiknode.pro",
		ChainID:  137,
		Accounts: []string{"${DEV_KEY}"},
	},
	"mumbai": {
		URL:      "https://rpc-mumbai.maticvigil.com",
		ChainID:  80001,
		Accounts: []string{"${DEV_KEY}"},
	},
	"bnbTestnet": {
		URL:      "https://data-seed-prebsc-2-s1.binance.org:8545/",
		ChainID:  97,
		Accounts: []string{"${DEV_KEY}"},
	},
	"fuji": {
		URL:      "https://api.avax-test.network/ext/bc/C/rpc",
		ChainID:  43113,
		Accounts: []string{"${DEV_KEY}"},
	},
	"fantomTestnet": {
		URL:      "https://rpc.testnet.fantom.network/",
		ChainID:  4002,
		Accounts: []string{"${DEV_KEY}"},
	},
	"localhost": {
		URL:           "http://127.0.0.1:8545",
		ChainID:       31337,
		Accounts:      []string{hardhatDevKey},
		GasPrice:      3000000000,
		GasMultiplier: 1,
	},
}

// chainAliases maps network names to their deployments folder
var chainAliases = map[string]string{
	"mainnet":       "ethereum",
	"goerli":        "ethereum",
	"matic":         "polygon",
	"mumbai":        "polygon",
	"fuji":          "avalanche",
	"fantomTestnet": "fantom",
	"bnbTestnet":    "bsc",
	"localhost":     "localhost",
}

type explorer struct {
	api string
	web string
}

var explorersByChain = map[uint64]explorer{
	1:        {"https://api.etherscan.io/api", "https://etherscan.io"},
	5:        {"https://api-goerli.etherscan.io/api", "https://goerli.etherscan.io"},
	11155111: {"https://api-sepolia.etherscan.io/api", "https://sepolia.etherscan.io"},
	137:      {"https://api.polygonscan.com/api", "https://polygonscan.com"},
	80001:    {"https://api-testnet.polygonscan.com/api", "https://mumbai.polygonscan.com"},
	56:       {"https://api.bscscan.com/api", "https://bscscan.com"},
	97:       {"https://api-testnet.bscscan.com/api", "https://testnet.bscscan.com"},
	43114:    {"https://api.snowtrace.io/api", "https://snowtrace.io"},
	43113:    {"https://api-testnet.snowtrace.io/api", "https://testnet.snowtrace.io"},
	250:      {"https://api.ftmscan.com/api", "https://ftmscan.com"},
	4002:     {"https://api-testnet.ftmscan.com/api", "https://testnet.ftmscan.com"},
}

// ChainAlias returns the deployments folder name for a network name
func ChainAlias(network string) string {
	if alias, ok := chainAliases[network]; ok {
		return alias
	}
	return network
}

// ExplorerFor returns the default explorer API and web URLs for a chain
func ExplorerFor(chainID uint64) (api string, web string) {
	e := explorersByChain[chainID]
	return e.api, e.web
}

// PresetNames returns the names of the built-in networks
func PresetNames() []string {
	names := lo.Keys(presetNetworks)
	sort.Strings(names)
	return names
}

// BuildNetworks merges nftops.toml network tables over the presets, applies
// defaults and expands environment references.
func BuildNetworks(fileNetworks map[string]config.NetworkFileConfig) (map[string]*config.Network, error) {
	merged := make(map[string]config.NetworkFileConfig, len(presetNetworks)+len(fileNetworks))
	for name, preset := range presetNetworks {
		merged[name] = preset
	}

	for name, entry := range fileNetworks {
		base := merged[name]
		if err := mergo.Merge(&base, entry, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("failed to merge network %s: %w", name, err)
		}
		merged[name] = base
	}

	networks := make(map[string]*config.Network, len(merged))
	for name, nc := range merged {
		if err := defaults.Set(&nc); err != nil {
			return nil, fmt.Errorf("failed to apply defaults for network %s: %w", name, err)
		}
		if nc.URL == "" {
			return nil, fmt.Errorf("network %s: url is required", name)
		}
		networks[name] = toNetwork(name, nc)
	}
	return networks, nil
}

func toNetwork(name string, nc config.NetworkFileConfig) *config.Network {
	n := &config.Network{
		Name:           name,
		ChainID:        nc.ChainID,
		RPCURL:         expand(nc.URL),
		Accounts:       expandAll(nc.Accounts),
		GasPrice:       nc.GasPrice,
		GasMultiplier:  nc.GasMultiplier,
		ExplorerAPIURL: expand(nc.ExplorerAPIURL),
		ExplorerURL:    expand(nc.ExplorerURL),
		Alias:          nc.Alias,
	}
	if n.Alias == "" {
		n.Alias = ChainAlias(name)
	}
	fillExplorer(n)
	return n
}

func fillExplorer(n *config.Network) {
	api, web := ExplorerFor(n.ChainID)
	if n.ExplorerAPIURL == "" {
		n.ExplorerAPIURL = api
	}
	if n.ExplorerURL == "" {
		n.ExplorerURL = web
	}
}
