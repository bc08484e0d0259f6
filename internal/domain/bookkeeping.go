package domain

import (
	"encoding/json"
	"sort"
	"strings"
)

// UnnamedContract marks a contract saved without a name field.
const UnnamedContract = "zero"

// NetworkInfo is the content of network.json
type NetworkInfo struct {
	Name    string `json:"name"`
	ChainID uint64 `json:"chainId"`
}

// ContractEntry is a single record in contracts.json
type ContractEntry struct {
	Address       string `json:"address"`
	Name          string `json:"name,omitempty"`
	Version       string `json:"version"`
	StartingBlock uint64 `json:"startingBlock"`
}

// ContractBook maps "<Contract>_V<version>" keys to their entries.
type ContractBook map[string]ContractEntry

// Keys returns the record keys in sorted order
func (b ContractBook) Keys() []string {
	keys := make([]string, 0, len(b))
	for k := range b {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ContractKey builds the contracts.json key for a contract and version
func ContractKey(contract, version string) string {
	return contract + "_V" + version
}

// SplitContractKey is the inverse of ContractKey. The version is the part
// after the last "_V".
func SplitContractKey(key string) (contract, version string, ok bool) {
	idx := strings.LastIndex(key, "_V")
	if idx <= 0 || idx+2 >= len(key) {
		return key, "", false
	}
	return key[:idx], key[idx+2:], true
}

// VerifyEntry holds what is needed to verify a deployed contract later
type VerifyEntry struct {
	Task     string   `json:"task"`
	Artifact string   `json:"artifact"`
	Address  string   `json:"address"`
	Args     []string `json:"args"`

	// Set for proxy deploys. Address is the proxy, Implementation the logic contract.
	Proxy          bool   `json:"proxy,omitempty"`
	Implementation string `json:"implementation,omitempty"`
}

// VerifyBook maps contract keys to verify entries (verify.json)
type VerifyBook map[string]VerifyEntry

// SaveRequest is everything the bookkeeping store writes for one deployed contract
type SaveRequest struct {
	Env        string
	ChainAlias string
	Network    NetworkInfo
	Contract   string
	Name       string
	Version    string
	Address    string
	Block      uint64
	ABI        json.RawMessage
	Verify     *VerifyEntry
}

// Key returns the contracts.json key for the request
func (r SaveRequest) Key() string {
	return ContractKey(r.Contract, r.Version)
}

// Entry builds the contracts.json entry. The "zero" name leaves the field out.
func (r SaveRequest) Entry() ContractEntry {
	entry := ContractEntry{
		Address:       r.Address,
		Version:       r.Version,
		StartingBlock: r.Block,
	}
	if r.Name != UnnamedContract {
		entry.Name = r.Name
	}
	return entry
}

// Deployments is a loaded env/network folder
type Deployments struct {
	Env        string
	ChainAlias string
	Network    *NetworkInfo
	Contracts  ContractBook
	Verify     VerifyBook
}
