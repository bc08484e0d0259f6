package usecase

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"
	"github.com/trebuchet-org/nftops/internal/config"
	"github.com/trebuchet-org/nftops/internal/domain"
	domainconfig "github.com/trebuchet-org/nftops/internal/domain/config"
)

// SignTypedDataParams describes one EIP-712 signature request
type SignTypedDataParams struct {
	Schema   string
	Contract string
	Name     string
	Version  string
	ChainID  uint64
	Fields   map[string]string
	Key      string
}

// SignTypedData signs a message for one of the contracts' signature schemas
type SignTypedData struct {
	config *domainconfig.RuntimeConfig
	signer TypedDataSigner
}

// NewSignTypedData creates a new SignTypedData use case
func NewSignTypedData(cfg *domainconfig.RuntimeConfig, signer TypedDataSigner) *SignTypedData {
	return &SignTypedData{config: cfg, signer: signer}
}

// Run executes the use case
func (uc *SignTypedData) Run(ctx context.Context, params SignTypedDataParams) (*domain.Signature, error) {
	schema, err := domain.LookupSigningSchema(params.Schema)
	if err != nil {
		return nil, err
	}

	fieldNames := schema.FieldNames()
	var unknown []string
	for f := range params.Fields {
		if !lo.Contains(fieldNames, f) {
			unknown = append(unknown, f)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, fmt.Errorf("schema %s has no field %s (fields: %s)",
			schema.Name, strings.Join(unknown, ", "), strings.Join(fieldNames, ", "))
	}

	var missing []string
	for _, f := range fieldNames {
		if _, ok := params.Fields[f]; !ok {
			missing = append(missing, f)
		}
	}
	if params.Contract == "" {
		missing = append(missing, "contract")
	}
	// the contracts check name and version in their domain separator
	if params.Name == "" {
		missing = append(missing, "name")
	}
	if params.Version == "" {
		missing = append(missing, "ver")
	}
	if len(missing) > 0 {
		return nil, domain.MissingParamsErr{Task: "sign " + schema.Name, Params: missing}
	}

	chainID := params.ChainID
	if chainID == 0 && uc.config.Network != nil {
		chainID = uc.config.Network.ChainID
	}
	if chainID == 0 {
		return nil, fmt.Errorf("chain ID unknown, use --network or --chain-id")
	}

	key, err := uc.key(params.Key)
	if err != nil {
		return nil, err
	}

	d := domain.SigningDomain{
		Name:              params.Name,
		Version:           params.Version,
		ChainID:           chainID,
		VerifyingContract: params.Contract,
	}

	sig, err := uc.signer.Sign(key, d, schema, params.Fields)
	if err != nil {
		return nil, err
	}

	recovered, err := uc.signer.Recover(d, schema, params.Fields, sig.Bytes)
	if err != nil {
		return nil, err
	}
	if recovered != sig.Signer {
		return nil, fmt.Errorf("signature recovers to %s, expected %s", recovered, sig.Signer)
	}
	return sig, nil
}

func (uc *SignTypedData) key(raw string) (*ecdsa.PrivateKey, error) {
	if raw != "" {
		return config.ParsePrivateKey(raw)
	}
	if uc.config.Network == nil {
		return nil, fmt.Errorf("no key given and no network selected: %w", domain.ErrNoSigner)
	}
	return config.Signer(uc.config.Network)
}
