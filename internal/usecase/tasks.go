package usecase

import (
	"fmt"
	"sort"
	"strings"

	"github.com/trebuchet-org/nftops/internal/domain"
)

// ProxyArtifact is deployed in front of upgradeable implementations
const ProxyArtifact = "ERC1967Proxy"

// contractStep deploys one contract of a task
type contractStep struct {
	Contract string
	// Named steps are saved with the task's name param, the rest as "zero"
	Named bool
	Proxy bool
	Args  func(v domain.TaskValues) []string
	// After runs post-deploy calls against the new address
	After func(r *taskRun, address string) error
}

type taskRecipe struct {
	spec  domain.TaskSpec
	steps []contractStep
}

// Common task parameters
var (
	paramName      = domain.TaskParam{Name: "name", Usage: "EIP-712 signature name", Required: true}
	paramVer       = domain.TaskParam{Name: "ver", Usage: "contract / signature version", Required: true}
	paramSymbol    = domain.TaskParam{Name: "symbol", Usage: "token symbol", Required: true}
	paramFee       = domain.TaskParam{Name: "fee-in-beeps", Usage: "fee in beeps", Required: true}
	paramMulticall = domain.TaskParam{Name: "multicall", Usage: "multicall contract address", Required: true}
	paramSigner    = domain.TaskParam{Name: "signer", Usage: "mint signer address", Required: true}
	paramBaseURI   = domain.TaskParam{Name: "base-uri", Usage: "token base URI", Env: "BASE_URI"}
	paramWhitelist = domain.TaskParam{Name: "whitelist", Usage: "space separated ERC20 addresses to whitelist"}
	paramSupply    = domain.TaskParam{Name: "initial-supply", Usage: "initial token supply", Required: true}
)

func args(names ...string) func(v domain.TaskValues) []string {
	return func(v domain.TaskValues) []string {
		out := make([]string, len(names))
		for i, n := range names {
			out[i] = v.Get(n)
		}
		return out
	}
}

func grantRole(role string) func(r *taskRun, address string) error {
	return func(r *taskRun, address string) error {
		return r.call(address, "grantRole(bytes32,address)", domain.RoleID(role), r.values.Get("multicall"))
	}
}

var taskRecipes = map[string]taskRecipe{
	"deploy-multicall": {
		spec: domain.TaskSpec{
			Description: "Deploy the Multicall batcher",
			Example:     "nftops deploy deploy-multicall --ver 1 --env develop -n localhost",
			Params:      []domain.TaskParam{paramVer},
		},
		steps: []contractStep{{Contract: "Multicall"}},
	},
	"deploy-auction": {
		spec: domain.TaskSpec{
			Description: "Deploy the Auction house and grant the multicall its owner role",
			Example:     "nftops deploy deploy-auction --ver 1 --multicall 0x... -n localhost",
			Params:      []domain.TaskParam{paramVer, paramMulticall},
		},
		steps: []contractStep{{
			Contract: "Auction",
			After: func(r *taskRun, address string) error {
				if err := r.call(address, "init()"); err != nil {
					return err
				}
				return grantRole(domain.RoleOwnerAuction)(r, address)
			},
		}},
	},
	"deploy-marketplace-with-fee": {
		spec: domain.TaskSpec{
			Description: "Deploy MarketplacePresetWithFee, grant roles and whitelist payment tokens",
			Example:     `nftops deploy deploy-marketplace-with-fee --name Marketplace --ver 1 --fee-in-beeps 10000 --multicall 0x... --whitelist "0x... 0x..."`,
			Params:      []domain.TaskParam{paramName, paramVer, paramFee, paramMulticall, paramWhitelist},
		},
		steps: []contractStep{{
			Contract: "MarketplacePresetWithFee",
			Named:    true,
			Args:     args("fee-in-beeps", "name", "ver"),
			After: func(r *taskRun, address string) error {
				if err := grantRole(domain.RoleOwnerMarketplace)(r, address); err != nil {
					return err
				}
				tokens := r.values.Fields("whitelist")
				if len(tokens) == 0 {
					return nil
				}
				return r.call(address, "addTokensToWhitelist(address[])", strings.Join(tokens, ","))
			},
		}},
	},
	"deploy-marketplace-without-fee": {
		spec: domain.TaskSpec{
			Description: "Deploy MarketplacePresetWithoutFee and grant the multicall its owner role",
			Example:     "nftops deploy deploy-marketplace-without-fee --name Marketplace --ver 1 --multicall 0x...",
			Params:      []domain.TaskParam{paramName, paramVer, paramMulticall},
		},
		steps: []contractStep{{
			Contract: "MarketplacePresetWithoutFee",
			Named:    true,
			Args:     args("name", "ver"),
			After:    grantRole(domain.RoleOwnerMarketplace),
		}},
	},
	"deploy-collections": {
		spec: domain.TaskSpec{
			Description: "Deploy CollectionsPreset and CollectionsPresetWithSignature",
			Example:     "nftops deploy deploy-collections --name CollectionsWithSignature --ver 1",
			Params:      []domain.TaskParam{paramName, paramVer},
		},
		steps: []contractStep{
			{Contract: "CollectionsPreset"},
			{Contract: "CollectionsPresetWithSignature", Named: true, Args: args("name", "ver")},
		},
	},
	"deploy-collections-upgr": {
		spec: domain.TaskSpec{
			Description: "Deploy upgradeable collections behind ERC1967 proxies",
			Example:     "nftops deploy deploy-collections-upgr --name CollectionsWithSignature --ver 1",
			Params:      []domain.TaskParam{paramName, paramVer},
			Upgradeable: true,
		},
		steps: []contractStep{
			{Contract: "CollectionsPresetUpgradeable", Proxy: true},
			{Contract: "CollectionsPresetWithSignatureUpgradeable", Named: true, Proxy: true, Args: args("name", "ver")},
		},
	},
	"deploy-erc721": {
		spec: domain.TaskSpec{
			Description: "Deploy the ERC721 royalty and URI presets",
			Example:     "nftops deploy deploy-erc721 --name testTokenName --ver 1 --symbol TEST --fee-in-beeps 1000",
			Params:      []domain.TaskParam{paramName, paramVer, paramSymbol, paramFee, paramBaseURI},
		},
		steps: []contractStep{
			{Contract: "ERC721PresetMintableRoyaltyURI", Named: true, Args: args("name", "symbol", "ver", "fee-in-beeps", "base-uri")},
			{Contract: "ERC721PresetMintableURI", Named: true, Args: args("name", "symbol", "ver", "base-uri")},
		},
	},
	"deploy-erc721-upgr": {
		spec: domain.TaskSpec{
			Description: "Deploy the upgradeable ERC721 presets behind ERC1967 proxies",
			Example:     "nftops deploy deploy-erc721-upgr --name testTokenName --ver 1 --symbol TEST --fee-in-beeps 1000",
			Params:      []domain.TaskParam{paramName, paramVer, paramSymbol, paramFee, paramBaseURI},
			Upgradeable: true,
		},
		steps: []contractStep{
			{Contract: "ERC721PresetMintableRoyaltyURIUpgradeable", Named: true, Proxy: true, Args: args("name", "symbol", "ver", "fee-in-beeps", "base-uri")},
			{Contract: "ERC721PresetMintableURIUpgradeable", Named: true, Proxy: true, Args: args("name", "symbol", "ver", "base-uri")},
		},
	},
	"deploy-erc1155": {
		spec: domain.TaskSpec{
			Description: "Deploy the ERC1155 royalty preset",
			Example:     "nftops deploy deploy-erc1155 --name testTokenName --ver 1 --symbol TEST --fee-in-beeps 1000 --signer 0x...",
			Params:      []domain.TaskParam{paramName, paramVer, paramSymbol, paramFee, paramSigner, paramBaseURI},
		},
		steps: []contractStep{
			{Contract: "ERC1155PresetMintableRoyalty", Named: true, Args: args("name", "symbol", "ver", "base-uri", "signer", "fee-in-beeps")},
		},
	},
	"deploy-erc1155-upgr": {
		spec: domain.TaskSpec{
			Description: "Deploy the upgradeable ERC1155 royalty preset behind an ERC1967 proxy",
			Example:     "nftops deploy deploy-erc1155-upgr --name testTokenName --ver 1 --symbol TEST --fee-in-beeps 1000 --signer 0x...",
			Params:      []domain.TaskParam{paramName, paramVer, paramSymbol, paramFee, paramSigner, paramBaseURI},
			Upgradeable: true,
		},
		steps: []contractStep{
			{Contract: "ERC1155PresetMintableRoyaltyUpgradeable", Named: true, Proxy: true, Args: args("name", "symbol", "ver", "base-uri", "signer", "fee-in-beeps")},
		},
	},
	"deploy-erc20": {
		spec: domain.TaskSpec{
			Description: "Deploy the TestToken20 ERC20",
			Example:     "nftops deploy deploy-erc20 --name testTokenName --ver 1 --symbol TEST --initial-supply 10000000000000000000",
			Params:      []domain.TaskParam{paramName, paramVer, paramSymbol, paramSupply},
		},
		steps: []contractStep{
			{Contract: "TestToken20", Named: true, Args: args("initial-supply", "name", "symbol")},
		},
	},
}

func init() {
	for name, recipe := range taskRecipes {
		recipe.spec.Name = name
		for _, step := range recipe.steps {
			recipe.spec.Contracts = append(recipe.spec.Contracts, step.Contract)
		}
		taskRecipes[name] = recipe
	}
}

func lookupRecipe(name string) (taskRecipe, error) {
	recipe, ok := taskRecipes[name]
	if !ok {
		// accept the short form ("auction" for "deploy-auction")
		recipe, ok = taskRecipes["deploy-"+name]
	}
	if !ok {
		return taskRecipe{}, fmt.Errorf("%w: %s", domain.ErrUnknownTask, name)
	}
	return recipe, nil
}

// TaskSpecs returns every registered task, sorted by name
func TaskSpecs() []domain.TaskSpec {
	specs := make([]domain.TaskSpec, 0, len(taskRecipes))
	for _, r := range taskRecipes {
		specs = append(specs, r.spec)
	}
	sort.Slice(specs, func(i, j int) bool { return specs[i].Name < specs[j].Name })
	return specs
}

// LookupTaskSpec returns the spec of a registered task
func LookupTaskSpec(name string) (domain.TaskSpec, error) {
	recipe, err := lookupRecipe(name)
	if err != nil {
		return domain.TaskSpec{}, err
	}
	return recipe.spec, nil
}

// stepName is the name saved for a step
func (s contractStep) stepName(v domain.TaskValues) string {
	if s.Named {
		return v.Get("name")
	}
	return domain.UnnamedContract
}

func (s contractStep) args(v domain.TaskValues) []string {
	if s.Args == nil {
		return nil
	}
	return s.Args(v)
}
