package usecase

import (
	"context"
	"crypto/ecdsa"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/trebuchet-org/nftops/internal/domain"
	"github.com/trebuchet-org/nftops/internal/domain/config"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeDeploy struct {
	Contract string
	Args     []string
	Proxy    bool
}

type fakeCall struct {
	To        string
	Signature string
	Args      []string
}

type fakeSession struct {
	chainID uint64
	mu      sync.Mutex
	next    int
	block   uint64
	deploys []fakeDeploy
	calls   []fakeCall
	code    map[string][]byte
	impls   map[string]string
	failOn  string
	closed  bool
}

func newFakeSession(chainID uint64) *fakeSession {
	return &fakeSession{chainID: chainID, code: map[string][]byte{}, impls: map[string]string{}}
}

func (s *fakeSession) addr() string {
	s.next++
	s.block++
	return fmt.Sprintf("0x%040x", s.next)
}

func (s *fakeSession) ChainID() uint64 { return s.chainID }
func (s *fakeSession) From() string    { return "0x00000000000000000000000000000000000000aa" }

func (s *fakeSession) Deploy(ctx context.Context, a *domain.Artifact, args []string) (*domain.Deployment, error) {
	if a.ContractName == s.failOn {
		return nil, fmt.Errorf("boom")
	}
	s.deploys = append(s.deploys, fakeDeploy{Contract: a.ContractName, Args: args})
	address := s.addr()
	s.code[address] = []byte{0x60}
	return &domain.Deployment{Address: address, TxHash: "0xtx", Block: s.block}, nil
}

func (s *fakeSession) DeployProxy(ctx context.Context, impl, proxy *domain.Artifact, initializer string, args []string) (*domain.ProxyDeployment, error) {
	s.deploys = append(s.deploys, fakeDeploy{Contract: impl.ContractName, Args: args, Proxy: true})
	implAddr := s.addr()
	proxyAddr := s.addr()
	s.impls[proxyAddr] = implAddr
	return &domain.ProxyDeployment{
		Implementation: domain.Deployment{Address: implAddr, Block: s.block - 1},
		Proxy:          domain.Deployment{Address: proxyAddr, Block: s.block},
	}, nil
}

func (s *fakeSession) Transact(ctx context.Context, to, signature string, args ...string) (*domain.TxReceipt, error) {
	s.calls = append(s.calls, fakeCall{To: to, Signature: signature, Args: args})
	s.block++
	return &domain.TxReceipt{TxHash: "0xcall", Block: s.block}, nil
}

func (s *fakeSession) ImplementationAddress(ctx context.Context, proxy string) (string, error) {
	impl, ok := s.impls[proxy]
	if !ok {
		return "", domain.ErrNotFound
	}
	return impl, nil
}

func (s *fakeSession) CodeAt(ctx context.Context, address string) ([]byte, error) {
	return s.code[address], nil
}

func (s *fakeSession) Accounts(ctx context.Context) ([]domain.AccountInfo, error) {
	return []domain.AccountInfo{{Address: s.From(), Balance: "1000", Nonce: uint64(len(s.calls))}}, nil
}

func (s *fakeSession) Close() { s.closed = true }

type fakeDialer struct {
	session *fakeSession
	dials   int
}

func (d *fakeDialer) Dial(ctx context.Context, n *config.Network) (ChainSession, error) {
	d.dials++
	return d.session, nil
}

type fakeArtifacts struct {
	missing map[string]bool
}

func (f *fakeArtifacts) Get(name string) (*domain.Artifact, error) {
	if f.missing[name] {
		return nil, fmt.Errorf("%w: %s", domain.ErrArtifactNotFound, name)
	}
	return &domain.Artifact{
		ContractName: name,
		SourceName:   "contracts/" + name + ".sol",
		ABI:          json.RawMessage(`[{"type":"constructor","inputs":[]}]`),
		Bytecode:     "0x6000",
	}, nil
}

func (f *fakeArtifacts) BuildInfo(a *domain.Artifact) (*domain.BuildInfo, error) {
	return &domain.BuildInfo{SolcLongVersion: "0.8.19+commit.7dd6d404", Input: json.RawMessage(`{"language":"Solidity"}`)}, nil
}

type fakeStore struct {
	mu       sync.Mutex
	saves    []domain.SaveRequest
	failKeys map[string]bool
	loaded   map[string]*domain.Deployments
	root     string
}

func (s *fakeStore) Save(ctx context.Context, req domain.SaveRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves = append(s.saves, req)
	if s.failKeys[req.Key()] {
		return fmt.Errorf("disk full")
	}
	return nil
}

func (s *fakeStore) Load(ctx context.Context, env, alias string) (*domain.Deployments, error) {
	if d, ok := s.loaded[env+"/"+alias]; ok {
		return d, nil
	}
	return &domain.Deployments{Env: env, ChainAlias: alias, Contracts: domain.ContractBook{}, Verify: domain.VerifyBook{}}, nil
}

func (s *fakeStore) List(ctx context.Context, env string) ([]string, error) {
	var out []string
	for k, d := range s.loaded {
		if d.Env == env {
			out = append(out, k[len(env)+1:])
		}
	}
	return out, nil
}

func (s *fakeStore) Environments(ctx context.Context) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	for _, d := range s.loaded {
		if !seen[d.Env] {
			seen[d.Env] = true
			out = append(out, d.Env)
		}
	}
	return out, nil
}

func (s *fakeStore) Root() string { return s.root }

type fakeResolver struct {
	networks map[string]*config.Network
}

func (r *fakeResolver) GetNetworks(ctx context.Context) []string {
	var names []string
	for n := range r.networks {
		names = append(names, n)
	}
	return names
}

func (r *fakeResolver) ResolveNetwork(ctx context.Context, name string) (*config.Network, error) {
	n, ok := r.networks[name]
	if !ok {
		return nil, domain.ErrUnknownNetwork
	}
	return n, nil
}

func (r *fakeResolver) ChainAlias(name string) string {
	if n, ok := r.networks[name]; ok && n.Alias != "" {
		return n.Alias
	}
	return name
}

type fakeVerifier struct {
	mu       sync.Mutex
	sources  []domain.SourceVerification
	proxies  [][2]string
	sourceFn func(req domain.SourceVerification) error
}

func (v *fakeVerifier) VerifySource(ctx context.Context, target ExplorerTarget, req domain.SourceVerification) error {
	v.mu.Lock()
	v.sources = append(v.sources, req)
	v.mu.Unlock()
	if v.sourceFn != nil {
		return v.sourceFn(req)
	}
	return nil
}

func (v *fakeVerifier) VerifyProxy(ctx context.Context, target ExplorerTarget, proxy, impl string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.proxies = append(v.proxies, [2]string{proxy, impl})
	return nil
}

type fakeEncoder struct{}

func (fakeEncoder) EncodeConstructorArgs(a *domain.Artifact, args []string) ([]byte, error) {
	out := []byte{}
	for _, arg := range args {
		out = append(out, byte(len(arg)))
	}
	return out, nil
}

type fakeSigner struct {
	recoverTo string
}

func (f *fakeSigner) Sign(key *ecdsa.PrivateKey, d domain.SigningDomain, schema domain.SigningSchema, message map[string]string) (*domain.Signature, error) {
	return &domain.Signature{Signer: "0xsigner", V: 27, Bytes: "0xsig"}, nil
}

func (f *fakeSigner) Recover(d domain.SigningDomain, schema domain.SigningSchema, message map[string]string, signature string) (string, error) {
	if f.recoverTo != "" {
		return f.recoverTo, nil
	}
	return "0xsigner", nil
}

type fakeSelector struct {
	choice int
	asked  []string
}

func (s *fakeSelector) SelectOption(ctx context.Context, prompt string, options []string) (int, error) {
	s.asked = options
	return s.choice, nil
}

func (s *fakeSelector) Confirm(ctx context.Context, prompt string) (bool, error) {
	return true, nil
}

var localNetwork = &config.Network{Name: "localhost", ChainID: 31337, Alias: "localhost"}
var fujiNetwork = &config.Network{Name: "fuji", ChainID: 43113, Alias: "avalanche", ExplorerAPIURL: "https://api-testnet.snowtrace.io/api", ExplorerURL: "https://testnet.snowtrace.io"}

func newTestRunTask(network *config.Network, session *fakeSession, store *fakeStore) *RunTask {
	cfg := &config.RuntimeConfig{Env: "develop", Network: network}
	resolver := &fakeResolver{networks: map[string]*config.Network{network.Name: network}}
	uc := NewRunTask(cfg, &fakeDialer{session: session}, &fakeArtifacts{}, store, resolver, NopProgress{}, discardLogger())
	uc.getenv = func(string) string { return "" }
	return uc
}
