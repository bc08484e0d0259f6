package usecase

import (
	"context"
	"fmt"

	"github.com/trebuchet-org/nftops/internal/domain"
	"github.com/trebuchet-org/nftops/internal/domain/config"
)

// ListAccountsResult contains the configured signers of a network
type ListAccountsResult struct {
	Network  string
	ChainID  uint64
	Accounts []domain.AccountInfo
}

// ListAccounts prints the network's accounts with balance and nonce
type ListAccounts struct {
	config *config.RuntimeConfig
	dialer ChainDialer
}

// NewListAccounts creates a new ListAccounts use case
func NewListAccounts(cfg *config.RuntimeConfig, dialer ChainDialer) *ListAccounts {
	return &ListAccounts{config: cfg, dialer: dialer}
}

// Run executes the use case
func (uc *ListAccounts) Run(ctx context.Context) (*ListAccountsResult, error) {
	if uc.config.Network == nil {
		return nil, fmt.Errorf("no network selected, use --network")
	}

	session, err := uc.dialer.Dial(ctx, uc.config.Network)
	if err != nil {
		return nil, err
	}
	defer session.Close()

	accounts, err := session.Accounts(ctx)
	if err != nil {
		return nil, err
	}

	return &ListAccountsResult{
		Network:  uc.config.Network.Name,
		ChainID:  session.ChainID(),
		Accounts: accounts,
	}, nil
}
