package domain

import (
	"fmt"
	"sort"
)

// TypedField is one member of an EIP-712 struct type
type TypedField struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// SigningSchema is a named EIP-712 message layout used by the contracts
type SigningSchema struct {
	Name        string
	Description string
	PrimaryType string
	Fields      []TypedField
}

// FieldNames returns the field names in declaration order
func (s SigningSchema) FieldNames() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}

var signingSchemas = map[string]SigningSchema{
	"collections": {
		Name:        "collections",
		Description: "Collection membership signature (CollectionsPresetWithSignature)",
		PrimaryType: "SignData",
		Fields: []TypedField{
			{Name: "tokens", Type: "uint256[]"},
			{Name: "implementation", Type: "address"},
			{Name: "creator", Type: "address"},
		},
	},
	"marketplace": {
		Name:        "marketplace",
		Description: "Marketplace sale authorization",
		PrimaryType: "SignData",
		Fields: []TypedField{
			{Name: "tokenId", Type: "uint256"},
			{Name: "quantity", Type: "uint256"},
			{Name: "price", Type: "uint256"},
			{Name: "nonce", Type: "uint256"},
			{Name: "token", Type: "address"},
			{Name: "saleToken", Type: "address"},
			{Name: "buyer", Type: "address"},
			{Name: "tokenType", Type: "bool"},
		},
	},
	"erc721": {
		Name:        "erc721",
		Description: "ERC721 lazy mint",
		PrimaryType: "SignData",
		Fields: []TypedField{
			{Name: "nonce", Type: "uint256"},
			{Name: "creator", Type: "address"},
			{Name: "uri", Type: "string"},
		},
	},
	"erc721-fee": {
		Name:        "erc721-fee",
		Description: "ERC721 lazy mint with royalty fee",
		PrimaryType: "SignData",
		Fields: []TypedField{
			{Name: "nonce", Type: "uint256"},
			{Name: "fee", Type: "uint96"},
			{Name: "creator", Type: "address"},
			{Name: "uri", Type: "string"},
		},
	},
	"erc1155": {
		Name:        "erc1155",
		Description: "ERC1155 lazy mint with royalty fee",
		PrimaryType: "SignDataWithFee",
		Fields: []TypedField{
			{Name: "supply", Type: "uint256"},
			{Name: "nonce", Type: "uint256"},
			{Name: "fee", Type: "uint96"},
			{Name: "uri", Type: "string"},
			{Name: "creator", Type: "address"},
		},
	},
}

// LookupSigningSchema returns the schema registered under name
func LookupSigningSchema(name string) (SigningSchema, error) {
	s, ok := signingSchemas[name]
	if !ok {
		return SigningSchema{}, fmt.Errorf("unknown signing schema %q: %w", name, ErrNotFound)
	}
	return s, nil
}

// SigningSchemas lists all schemas sorted by name
func SigningSchemas() []SigningSchema {
	out := make([]SigningSchema, 0, len(signingSchemas))
	for _, s := range signingSchemas {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// SigningDomain is the EIP-712 domain of a verifying contract
type SigningDomain struct {
	Name              string `json:"name"`
	Version           string `json:"version"`
	ChainID           uint64 `json:"chainId"`
	VerifyingContract string `json:"verifyingContract"`
}

// Signature is a split secp256k1 signature. V is 27 or 28.
type Signature struct {
	Signer string `json:"signer"`
	Digest string `json:"digest"`
	V      uint8  `json:"v"`
	R      string `json:"r"`
	S      string `json:"s"`
	Bytes  string `json:"signature"`
}
