package chain

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ethereum/go-ethereum/ethclient"
	internalconfig "github.com/trebuchet-org/nftops/internal/config"
	"github.com/trebuchet-org/nftops/internal/domain"
	"github.com/trebuchet-org/nftops/internal/domain/config"
	"github.com/trebuchet-org/nftops/internal/usecase"
)

// Dialer connects to a network's RPC endpoint
type Dialer struct {
	log *slog.Logger
}

// NewDialer creates a new dialer
func NewDialer(log *slog.Logger) *Dialer {
	return &Dialer{log: log.With("component", "chain")}
}

// Dial connects and checks the node reports the configured chain ID
func (d *Dialer) Dial(ctx context.Context, network *config.Network) (usecase.ChainSession, error) {
	if network == nil {
		return nil, fmt.Errorf("no network selected")
	}

	keys, err := internalconfig.Accounts(network)
	if err != nil {
		return nil, err
	}

	client, err := ethclient.DialContext(ctx, network.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", network.Name, err)
	}

	chainID, err := client.ChainID(ctx)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to get chain ID of %s: %w", network.Name, err)
	}
	if network.ChainID != 0 && chainID.Uint64() != network.ChainID {
		client.Close()
		return nil, fmt.Errorf("%w: network %s expects %d, node reports %d", domain.ErrChainIDMismatch, network.Name, network.ChainID, chainID.Uint64())
	}

	d.log.Debug("connected", "network", network.Name, "chainId", chainID.Uint64(), "accounts", len(keys))

	return NewSession(client, chainID.Uint64(), keys,
		WithGas(GasSettings{Price: network.GasPrice, Multiplier: network.GasMultiplier}),
		WithLogger(d.log),
		WithCloser(client.Close),
	), nil
}

// Ensure the adapter implements the interface
var _ usecase.ChainDialer = (*Dialer)(nil)
