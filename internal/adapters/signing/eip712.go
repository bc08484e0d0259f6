package signing

import (
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
	"github.com/trebuchet-org/nftops/internal/domain"
	"github.com/trebuchet-org/nftops/internal/usecase"
)

var domainType = []apitypes.Type{
	{Name: "name", Type: "string"},
	{Name: "version", Type: "string"},
	{Name: "chainId", Type: "uint256"},
	{Name: "verifyingContract", Type: "address"},
}

// TypedDataSigner signs and recovers EIP-712 messages
type TypedDataSigner struct{}

// NewTypedDataSigner creates a new signer
func NewTypedDataSigner() *TypedDataSigner {
	return &TypedDataSigner{}
}

// TypedData assembles the apitypes representation of a message
func TypedData(d domain.SigningDomain, schema domain.SigningSchema, message map[string]string) (apitypes.TypedData, error) {
	if !common.IsHexAddress(d.VerifyingContract) {
		return apitypes.TypedData{}, fmt.Errorf("%w: verifying contract %q", domain.ErrInvalidAddress, d.VerifyingContract)
	}

	fields := make([]apitypes.Type, len(schema.Fields))
	msg := apitypes.TypedDataMessage{}
	for i, f := range schema.Fields {
		fields[i] = apitypes.Type{Name: f.Name, Type: f.Type}

		raw, ok := message[f.Name]
		if !ok {
			return apitypes.TypedData{}, fmt.Errorf("%w: %s", domain.ErrMissingParam, f.Name)
		}
		v, err := messageValue(f.Type, raw)
		if err != nil {
			return apitypes.TypedData{}, fmt.Errorf("field %s (%s): %w", f.Name, f.Type, err)
		}
		msg[f.Name] = v
	}

	return apitypes.TypedData{
		Types: apitypes.Types{
			"EIP712Domain":     domainType,
			schema.PrimaryType: fields,
		},
		PrimaryType: schema.PrimaryType,
		Domain: apitypes.TypedDataDomain{
			Name:              d.Name,
			Version:           d.Version,
			ChainId:           (*math.HexOrDecimal256)(new(big.Int).SetUint64(d.ChainID)),
			VerifyingContract: common.HexToAddress(d.VerifyingContract).Hex(),
		},
		Message: msg,
	}, nil
}

// messageValue converts a flag value into what the apitypes encoder accepts
func messageValue(typ, raw string) (interface{}, error) {
	if typ == "string" {
		return raw, nil
	}
	raw = strings.TrimSpace(raw)

	if strings.HasSuffix(typ, "[]") {
		elemType := strings.TrimSuffix(typ, "[]")
		trimmed := strings.TrimSuffix(strings.TrimPrefix(raw, "["), "]")
		items := []interface{}{}
		if strings.TrimSpace(trimmed) == "" {
			return items, nil
		}
		for _, item := range strings.Split(trimmed, ",") {
			v, err := messageValue(elemType, strings.TrimSpace(item))
			if err != nil {
				return nil, err
			}
			items = append(items, v)
		}
		return items, nil
	}

	switch {
	case typ == "bool":
		return strconv.ParseBool(raw)
	case typ == "address":
		if !common.IsHexAddress(raw) {
			return nil, fmt.Errorf("%w: %q", domain.ErrInvalidAddress, raw)
		}
		return raw, nil
	case strings.HasPrefix(typ, "uint"), strings.HasPrefix(typ, "int"):
		if _, ok := math.ParseBig256(raw); !ok {
			return nil, fmt.Errorf("invalid integer %q", raw)
		}
		return raw, nil
	}
	return raw, nil
}

func digest(d domain.SigningDomain, schema domain.SigningSchema, message map[string]string) ([]byte, error) {
	typed, err := TypedData(d, schema, message)
	if err != nil {
		return nil, err
	}
	hash, _, err := apitypes.TypedDataAndHash(typed)
	if err != nil {
		return nil, fmt.Errorf("failed to hash typed data: %w", err)
	}
	return hash, nil
}

// Sign returns the signature with V in {27, 28}
func (s *TypedDataSigner) Sign(key *ecdsa.PrivateKey, d domain.SigningDomain, schema domain.SigningSchema, message map[string]string) (*domain.Signature, error) {
	hash, err := digest(d, schema, message)
	if err != nil {
		return nil, err
	}

	sig, err := crypto.Sign(hash, key)
	if err != nil {
		return nil, fmt.Errorf("failed to sign: %w", err)
	}
	sig[64] += 27

	return &domain.Signature{
		Signer: crypto.PubkeyToAddress(key.PublicKey).Hex(),
		Digest: hexutil.Encode(hash),
		V:      sig[64],
		R:      hexutil.Encode(sig[:32]),
		S:      hexutil.Encode(sig[32:64]),
		Bytes:  hexutil.Encode(sig),
	}, nil
}

// Recover returns the address that produced signature
func (s *TypedDataSigner) Recover(d domain.SigningDomain, schema domain.SigningSchema, message map[string]string, signature string) (string, error) {
	hash, err := digest(d, schema, message)
	if err != nil {
		return "", err
	}

	sig, err := hexutil.Decode(signature)
	if err != nil {
		return "", fmt.Errorf("invalid signature: %w", err)
	}
	if len(sig) != crypto.SignatureLength {
		return "", fmt.Errorf("invalid signature length %d", len(sig))
	}
	if sig[64] >= 27 {
		sig[64] -= 27
	}

	pub, err := crypto.SigToPub(hash, sig)
	if err != nil {
		return "", fmt.Errorf("failed to recover signer: %w", err)
	}
	return crypto.PubkeyToAddress(*pub).Hex(), nil
}

// Ensure the adapter implements the interface
var _ usecase.TypedDataSigner = (*TypedDataSigner)(nil)
