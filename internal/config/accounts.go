package config

import (
	"crypto/ecdsa"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/trebuchet-org/nftops/internal/domain"
	"github.com/trebuchet-org/nftops/internal/domain/config"
)

// ParsePrivateKey decodes a hex private key with or without 0x prefix
func ParsePrivateKey(hexKey string) (*ecdsa.PrivateKey, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(hexKey), "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}
	return key, nil
}

// Accounts turns the network's account entries into signing keys
func Accounts(n *config.Network) ([]*ecdsa.PrivateKey, error) {
	keys := make([]*ecdsa.PrivateKey, 0, len(n.Accounts))
	for i, raw := range n.Accounts {
		key, err := ParsePrivateKey(raw)
		if err != nil {
			return nil, fmt.Errorf("network %s account %d: %w", n.Name, i, err)
		}
		keys = append(keys, key)
	}
	return keys, nil
}

// Signer returns the first configured account of the network
func Signer(n *config.Network) (*ecdsa.PrivateKey, error) {
	keys, err := Accounts(n)
	if err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return nil, fmt.Errorf("network %s: %w", n.Name, domain.ErrNoSigner)
	}
	return keys[0], nil
}
