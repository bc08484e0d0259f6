package chain

import (
	"fmt"

	"github.com/trebuchet-org/nftops/internal/domain"
	"github.com/trebuchet-org/nftops/internal/usecase"
)

// Encoder packs constructor arguments for explorer verification
type Encoder struct{}

// NewEncoder creates a new encoder
func NewEncoder() *Encoder {
	return &Encoder{}
}

// EncodeConstructorArgs returns the ABI encoded constructor arguments without bytecode
func (e *Encoder) EncodeConstructorArgs(artifact *domain.Artifact, args []string) ([]byte, error) {
	parsed, err := parseABI(artifact)
	if err != nil {
		return nil, err
	}
	values, err := CoerceArgs(parsed.Constructor.Inputs, args)
	if err != nil {
		return nil, fmt.Errorf("%s constructor: %w", artifact.ContractName, err)
	}
	return parsed.Pack("", values...)
}

// Ensure the adapter implements the interface
var _ usecase.ABIEncoder = (*Encoder)(nil)
