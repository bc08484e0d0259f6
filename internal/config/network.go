package config

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/samber/lo"
	"github.com/trebuchet-org/nftops/internal/domain"
	"github.com/trebuchet-org/nftops/internal/domain/config"
)

// NetworkResolver resolves network names to configurations with caching
type NetworkResolver struct {
	dataDir  string
	networks map[string]*config.Network
	cache    *NetworkCache
	fetch    func(ctx context.Context, rpcURL string) (uint64, error)
	mu       sync.RWMutex
}

// NetworkCache caches chain ID lookups for networks configured without chain_id
type NetworkCache struct {
	Networks  map[string]uint64 `json:"networks"` // name -> chainID
	RPCs      map[string]uint64 `json:"rpcs"`     // rpcURL -> chainID
	UpdatedAt time.Time         `json:"updatedAt"`
}

// NewNetworkResolver creates a new network resolver
func NewNetworkResolver(dataDir string, networks map[string]*config.Network) *NetworkResolver {
	r := &NetworkResolver{
		dataDir:  dataDir,
		networks: networks,
		fetch:    fetchChainID,
	}

	r.loadCache()

	return r
}

// Networks returns all known network names, sorted
func (r *NetworkResolver) Networks() []string {
	names := lo.Keys(r.networks)
	sort.Strings(names)
	return names
}

// ChainAlias returns the deployments folder for a network. An explicit alias
// wins; unknown networks fall back to their own name.
func (r *NetworkResolver) ChainAlias(name string) string {
	if n, ok := r.networks[name]; ok && n.Alias != "" {
		return n.Alias
	}
	return ChainAlias(name)
}

// Resolve resolves a network name to its configuration, fetching the chain
// ID over RPC when it was not configured.
func (r *NetworkResolver) Resolve(ctx context.Context, name string) (*config.Network, error) {
	n, ok := r.networks[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s (known: %v)", domain.ErrUnknownNetwork, name, r.Networks())
	}

	resolved := *n
	if resolved.ChainID != 0 {
		return &resolved, nil
	}

	r.mu.RLock()
	chainID, cached := r.cache.Networks[name]
	if !cached {
		chainID, cached = r.cache.RPCs[resolved.RPCURL]
	}
	r.mu.RUnlock()

	if !cached {
		fetched, err := r.fetch(ctx, resolved.RPCURL)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch chain ID for network %s: %w", name, err)
		}
		chainID = fetched
		r.updateCache(name, resolved.RPCURL, chainID)
	}

	resolved.ChainID = chainID
	fillExplorer(&resolved)
	return &resolved, nil
}

// fetchChainID asks the node for eth_chainId
func fetchChainID(ctx context.Context, rpcURL string) (uint64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return 0, fmt.Errorf("failed to connect to %s: %w", rpcURL, err)
	}
	defer client.Close()

	id, err := client.ChainID(ctx)
	if err != nil {
		return 0, fmt.Errorf("eth_chainId failed: %w", err)
	}
	return id.Uint64(), nil
}

func (r *NetworkResolver) cachePath() string {
	return filepath.Join(r.dataDir, "cache", "chainIds.json")
}

// loadCache loads the chain ID cache from disk
func (r *NetworkResolver) loadCache() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cache = newNetworkCache()

	data, err := os.ReadFile(r.cachePath())
	if err != nil {
		return
	}

	if err := json.Unmarshal(data, r.cache); err != nil || r.cache.Networks == nil || r.cache.RPCs == nil {
		r.cache = newNetworkCache()
	}
}

func newNetworkCache() *NetworkCache {
	return &NetworkCache{
		Networks:  make(map[string]uint64),
		RPCs:      make(map[string]uint64),
		UpdatedAt: time.Now(),
	}
}

// updateCache records a fetched chain ID and persists the cache
func (r *NetworkResolver) updateCache(networkName, rpcURL string, chainID uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cache.Networks[networkName] = chainID
	r.cache.RPCs[rpcURL] = chainID
	r.cache.UpdatedAt = time.Now()

	// cache is best effort
	_ = r.saveCache()
}

// saveCache saves the cache to disk
func (r *NetworkResolver) saveCache() error {
	if err := os.MkdirAll(filepath.Dir(r.cachePath()), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(r.cache, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(r.cachePath(), data, 0644)
}
