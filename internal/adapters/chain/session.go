package chain

import (
	"bytes"
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/lmittmann/w3"
	"github.com/trebuchet-org/nftops/internal/domain"
	"github.com/trebuchet-org/nftops/internal/usecase"
)

// implementationSlot is bytes32(uint256(keccak256("eip1967.proxy.implementation")) - 1)
var implementationSlot = common.HexToHash("0x360894a13ba1a3210667c828492db98dca3e2076cc3735a920a3ca505d382bbc")

// Backend is the node API a session needs. *ethclient.Client and the
// simulated backend client both satisfy it.
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
	ChainID(ctx context.Context) (*big.Int, error)
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
	NonceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (uint64, error)
	StorageAt(ctx context.Context, account common.Address, key common.Hash, blockNumber *big.Int) ([]byte, error)
}

// GasSettings mirror the network's gas configuration
type GasSettings struct {
	Price      uint64  // wei, zero lets the node suggest
	Multiplier float64 // applied to estimated gas limits
}

// Session signs with the first configured key
type Session struct {
	backend Backend
	chainID *big.Int
	keys    []*ecdsa.PrivateKey
	gas     GasSettings
	log     *slog.Logger

	afterSend func()
	closer    func()
}

// SessionOption configures a Session
type SessionOption func(*Session)

// WithGas sets gas price and limit multiplier
func WithGas(gas GasSettings) SessionOption {
	return func(s *Session) { s.gas = gas }
}

// WithLogger sets the session logger
func WithLogger(log *slog.Logger) SessionOption {
	return func(s *Session) { s.log = log }
}

// WithAfterSend runs fn after every broadcast, before waiting for the receipt.
// Simulated backends use it to mine the pending block.
func WithAfterSend(fn func()) SessionOption {
	return func(s *Session) { s.afterSend = fn }
}

// WithCloser runs fn on Close
func WithCloser(fn func()) SessionOption {
	return func(s *Session) { s.closer = fn }
}

// NewSession creates a session on an already connected backend
func NewSession(backend Backend, chainID uint64, keys []*ecdsa.PrivateKey, opts ...SessionOption) *Session {
	s := &Session{
		backend: backend,
		chainID: new(big.Int).SetUint64(chainID),
		keys:    keys,
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) ChainID() uint64 {
	return s.chainID.Uint64()
}

func (s *Session) From() string {
	if len(s.keys) == 0 {
		return ""
	}
	return crypto.PubkeyToAddress(s.keys[0].PublicKey).Hex()
}

func (s *Session) Close() {
	if s.closer != nil {
		s.closer()
	}
}

func (s *Session) transactOpts(ctx context.Context) (*bind.TransactOpts, error) {
	if len(s.keys) == 0 {
		return nil, domain.ErrNoSigner
	}
	opts, err := bind.NewKeyedTransactorWithChainID(s.keys[0], s.chainID)
	if err != nil {
		return nil, fmt.Errorf("failed to create transactor: %w", err)
	}
	opts.Context = ctx
	if s.gas.Price > 0 {
		opts.GasPrice = new(big.Int).SetUint64(s.gas.Price)
	}
	return opts, nil
}

// applyGasLimit estimates the call and scales the limit when a multiplier is configured
func (s *Session) applyGasLimit(ctx context.Context, opts *bind.TransactOpts, to *common.Address, data []byte) error {
	if s.gas.Multiplier <= 0 || s.gas.Multiplier == 1 {
		return nil
	}
	estimate, err := s.backend.EstimateGas(ctx, ethereum.CallMsg{
		From: opts.From,
		To:   to,
		Data: data,
	})
	if err != nil {
		return fmt.Errorf("failed to estimate gas: %w", err)
	}
	opts.GasLimit = uint64(float64(estimate) * s.gas.Multiplier)
	return nil
}

func (s *Session) wait(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	if s.afterSend != nil {
		s.afterSend()
	}
	s.log.Debug("waiting for transaction", "tx", tx.Hash().Hex())

	receipt, err := bind.WaitMined(ctx, s.backend, tx)
	if err != nil {
		return nil, fmt.Errorf("failed waiting for %s: %w", tx.Hash().Hex(), err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, fmt.Errorf("transaction %s reverted", tx.Hash().Hex())
	}
	return receipt, nil
}

// unlinked reports whether bytecode still contains library placeholders
func unlinked(bytecode string) bool {
	return strings.Contains(bytecode, "__$")
}

func parseABI(artifact *domain.Artifact) (abi.ABI, error) {
	parsed, err := abi.JSON(bytes.NewReader(artifact.ABI))
	if err != nil {
		return abi.ABI{}, fmt.Errorf("failed to parse ABI of %s: %w", artifact.ContractName, err)
	}
	return parsed, nil
}

// Deploy deploys an artifact with string constructor arguments
func (s *Session) Deploy(ctx context.Context, artifact *domain.Artifact, args []string) (*domain.Deployment, error) {
	parsed, err := parseABI(artifact)
	if err != nil {
		return nil, err
	}
	values, err := CoerceArgs(parsed.Constructor.Inputs, args)
	if err != nil {
		return nil, fmt.Errorf("%s constructor: %w", artifact.ContractName, err)
	}
	return s.deploy(ctx, artifact, parsed, values)
}

func (s *Session) deploy(ctx context.Context, artifact *domain.Artifact, parsed abi.ABI, values []interface{}) (*domain.Deployment, error) {
	if !artifact.IsDeployable() || unlinked(artifact.Bytecode) {
		return nil, fmt.Errorf("%s has no deployable bytecode (abstract, interface or unlinked libraries)", artifact.ContractName)
	}
	bytecode := common.FromHex(artifact.Bytecode)

	opts, err := s.transactOpts(ctx)
	if err != nil {
		return nil, err
	}

	packed, err := parsed.Pack("", values...)
	if err != nil {
		return nil, fmt.Errorf("failed to pack constructor args: %w", err)
	}
	if err := s.applyGasLimit(ctx, opts, nil, append(append([]byte{}, bytecode...), packed...)); err != nil {
		return nil, err
	}

	address, tx, _, err := bind.DeployContract(opts, parsed, bytecode, s.backend, values...)
	if err != nil {
		return nil, fmt.Errorf("failed to deploy %s: %w", artifact.ContractName, err)
	}
	s.log.Debug("deploying contract", "contract", artifact.ContractName, "address", address.Hex(), "tx", tx.Hash().Hex())

	receipt, err := s.wait(ctx, tx)
	if err != nil {
		return nil, err
	}

	return &domain.Deployment{
		Address: address.Hex(),
		TxHash:  tx.Hash().Hex(),
		Block:   receipt.BlockNumber.Uint64(),
		GasUsed: receipt.GasUsed,
	}, nil
}

// DeployProxy deploys the implementation, then an ERC1967 proxy pointing at
// it whose constructor calls initializer with args
func (s *Session) DeployProxy(ctx context.Context, impl, proxy *domain.Artifact, initializer string, args []string) (*domain.ProxyDeployment, error) {
	implABI, err := parseABI(impl)
	if err != nil {
		return nil, err
	}
	method, ok := implABI.Methods[initializer]
	if !ok {
		return nil, fmt.Errorf("%s has no %s method", impl.ContractName, initializer)
	}
	values, err := CoerceArgs(method.Inputs, args)
	if err != nil {
		return nil, fmt.Errorf("%s.%s: %w", impl.ContractName, initializer, err)
	}
	initData, err := implABI.Pack(initializer, values...)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s call: %w", initializer, err)
	}

	implementation, err := s.deploy(ctx, impl, implABI, nil)
	if err != nil {
		return nil, fmt.Errorf("implementation: %w", err)
	}

	proxyABI, err := parseABI(proxy)
	if err != nil {
		return nil, err
	}
	proxied, err := s.deploy(ctx, proxy, proxyABI, []interface{}{common.HexToAddress(implementation.Address), initData})
	if err != nil {
		return nil, fmt.Errorf("proxy: %w", err)
	}

	return &domain.ProxyDeployment{
		Proxy:          *proxied,
		Implementation: *implementation,
		InitData:       hexutil.Encode(initData),
	}, nil
}

// Transact calls a function given by its human readable signature, e.g.
// "grantRole(bytes32,address)"
func (s *Session) Transact(ctx context.Context, to string, signature string, args ...string) (*domain.TxReceipt, error) {
	if !common.IsHexAddress(to) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidAddress, to)
	}
	fn, err := w3.NewFunc(signature, "")
	if err != nil {
		return nil, fmt.Errorf("invalid function signature %q: %w", signature, err)
	}
	values, err := CoerceArgs(fn.Args, args)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", signature, err)
	}
	input, err := fn.EncodeArgs(values...)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", signature, err)
	}

	opts, err := s.transactOpts(ctx)
	if err != nil {
		return nil, err
	}
	address := common.HexToAddress(to)
	if err := s.applyGasLimit(ctx, opts, &address, input); err != nil {
		return nil, err
	}

	contract := bind.NewBoundContract(address, abi.ABI{}, s.backend, s.backend, s.backend)
	tx, err := contract.RawTransact(opts, input)
	if err != nil {
		return nil, fmt.Errorf("failed to send %s: %w", signature, err)
	}
	s.log.Debug("sent transaction", "to", to, "call", signature, "tx", tx.Hash().Hex())

	receipt, err := s.wait(ctx, tx)
	if err != nil {
		return nil, err
	}
	return &domain.TxReceipt{
		TxHash:  tx.Hash().Hex(),
		Block:   receipt.BlockNumber.Uint64(),
		GasUsed: receipt.GasUsed,
	}, nil
}

// ImplementationAddress reads the EIP-1967 implementation slot of a proxy
func (s *Session) ImplementationAddress(ctx context.Context, proxy string) (string, error) {
	if !common.IsHexAddress(proxy) {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidAddress, proxy)
	}
	value, err := s.backend.StorageAt(ctx, common.HexToAddress(proxy), implementationSlot, nil)
	if err != nil {
		return "", fmt.Errorf("failed to read implementation slot: %w", err)
	}
	impl := common.BytesToAddress(value)
	if impl == (common.Address{}) {
		return "", fmt.Errorf("%s is not an EIP-1967 proxy", proxy)
	}
	return impl.Hex(), nil
}

func (s *Session) CodeAt(ctx context.Context, address string) ([]byte, error) {
	if !common.IsHexAddress(address) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidAddress, address)
	}
	return s.backend.CodeAt(ctx, common.HexToAddress(address), nil)
}

// Accounts returns balance and nonce of every configured key
func (s *Session) Accounts(ctx context.Context) ([]domain.AccountInfo, error) {
	infos := make([]domain.AccountInfo, 0, len(s.keys))
	var errs []error
	for _, key := range s.keys {
		address := crypto.PubkeyToAddress(key.PublicKey)
		info := domain.AccountInfo{Address: address.Hex()}

		balance, err := s.backend.BalanceAt(ctx, address, nil)
		if err != nil {
			errs = append(errs, fmt.Errorf("balance of %s: %w", address.Hex(), err))
		} else {
			info.Balance = balance.String()
		}
		if info.Nonce, err = s.backend.NonceAt(ctx, address, nil); err != nil {
			errs = append(errs, fmt.Errorf("nonce of %s: %w", address.Hex(), err))
		}
		infos = append(infos, info)
	}
	return infos, errors.Join(errs...)
}

// Ensure the adapter implements the interface
var _ usecase.ChainSession = (*Session)(nil)
