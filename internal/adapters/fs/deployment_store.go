package fs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/trebuchet-org/nftops/internal/domain"
	"github.com/trebuchet-org/nftops/internal/domain/config"
	"github.com/trebuchet-org/nftops/internal/usecase"
)

const (
	networkFile   = "network.json"
	contractsFile = "contracts.json"
	verifyFile    = "verify.json"
	abisDir       = "abis"
)

// DeploymentStoreAdapter keeps deployments/<env>/<chainAlias>/ up to date
type DeploymentStoreAdapter struct {
	root string
	log  *slog.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewDeploymentStoreAdapter creates a store rooted at the configured deployments directory
func NewDeploymentStoreAdapter(cfg *config.RuntimeConfig, log *slog.Logger) *DeploymentStoreAdapter {
	return NewDeploymentStoreAt(cfg.DeploymentsDir(), log)
}

// NewDeploymentStoreAt creates a store rooted at root
func NewDeploymentStoreAt(root string, log *slog.Logger) *DeploymentStoreAdapter {
	return &DeploymentStoreAdapter{
		root:  root,
		log:   log.With("component", "bookkeeping"),
		locks: make(map[string]*sync.Mutex),
	}
}

func (s *DeploymentStoreAdapter) Root() string {
	return s.root
}

func (s *DeploymentStoreAdapter) dir(env, alias string) string {
	return filepath.Join(s.root, env, alias)
}

func (s *DeploymentStoreAdapter) lock(path string) func() {
	s.mu.Lock()
	l, ok := s.locks[path]
	if !ok {
		l = &sync.Mutex{}
		s.locks[path] = l
	}
	s.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// Save writes network.json, the ABI, the contracts.json entry and the
// verify.json entry. A failing file does not stop the others.
func (s *DeploymentStoreAdapter) Save(ctx context.Context, req domain.SaveRequest) error {
	if req.Env == "" || req.ChainAlias == "" {
		return fmt.Errorf("env and chain alias are required to save %s", req.Key())
	}

	dir := s.dir(req.Env, req.ChainAlias)
	if err := os.MkdirAll(filepath.Join(dir, abisDir), 0755); err != nil {
		return fmt.Errorf("failed to create deployments directory: %w", err)
	}

	var errs []error
	record := func(file string, err error) {
		if err != nil {
			s.log.Warn("failed to write bookkeeping file", "file", file, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", file, err))
		}
	}

	record(networkFile, s.writeJSON(filepath.Join(dir, networkFile), req.Network))

	abiPath := filepath.Join(dir, abisDir, req.Key()+".json")
	record(abiPath, s.writeJSON(abiPath, req.ABI))

	record(contractsFile, s.update(filepath.Join(dir, contractsFile), func(data []byte) (interface{}, error) {
		book := domain.ContractBook{}
		ok := s.decodeOrEmpty(filepath.Join(dir, contractsFile), data, &book)
		if !ok {
			book = domain.ContractBook{}
		}
		book[req.Key()] = req.Entry()
		return book, nil
	}))

	if req.Verify != nil {
		record(verifyFile, s.update(filepath.Join(dir, verifyFile), func(data []byte) (interface{}, error) {
			book := domain.VerifyBook{}
			ok := s.decodeOrEmpty(filepath.Join(dir, verifyFile), data, &book)
			if !ok {
				book = domain.VerifyBook{}
			}
			book[req.Key()] = *req.Verify
			return book, nil
		}))
	}

	s.log.Debug("saved deployment", "env", req.Env, "network", req.ChainAlias, "key", req.Key(), "address", req.Address)
	return errors.Join(errs...)
}

// decodeOrEmpty reports false for a corrupt file. v may hold partially
// decoded entries then; callers start over from an empty book and the next
// write replaces the file.
func (s *DeploymentStoreAdapter) decodeOrEmpty(path string, data []byte, v interface{}) bool {
	if len(data) == 0 {
		return true
	}
	if err := json.Unmarshal(data, v); err != nil {
		s.log.Warn("ignoring corrupt bookkeeping file", "file", path, "error", err)
		return false
	}
	return true
}

// update runs a read-modify-write cycle under the file's lock
func (s *DeploymentStoreAdapter) update(path string, fn func(data []byte) (interface{}, error)) error {
	unlock := s.lock(path)
	defer unlock()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	v, err := fn(data)
	if err != nil {
		return err
	}
	return writeFileAtomic(path, v)
}

func (s *DeploymentStoreAdapter) writeJSON(path string, v interface{}) error {
	unlock := s.lock(path)
	defer unlock()
	return writeFileAtomic(path, v)
}

func writeFileAtomic(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return fmt.Errorf("failed to chmod temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

// Load reads an env/network folder. Missing files load as empty.
func (s *DeploymentStoreAdapter) Load(ctx context.Context, env, alias string) (*domain.Deployments, error) {
	dir := s.dir(env, alias)
	d := &domain.Deployments{
		Env:        env,
		ChainAlias: alias,
		Contracts:  domain.ContractBook{},
		Verify:     domain.VerifyBook{},
	}

	if data, err := os.ReadFile(filepath.Join(dir, networkFile)); err == nil {
		var info domain.NetworkInfo
		if err := json.Unmarshal(data, &info); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filepath.Join(dir, networkFile), err)
		}
		d.Network = &info
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read network file: %w", err)
	}

	books := []struct {
		file  string
		v     interface{}
		reset func()
	}{
		{contractsFile, &d.Contracts, func() { d.Contracts = domain.ContractBook{} }},
		{verifyFile, &d.Verify, func() { d.Verify = domain.VerifyBook{} }},
	}
	for _, b := range books {
		path := filepath.Join(dir, b.file)
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		if !s.decodeOrEmpty(path, data, b.v) {
			b.reset()
		}
	}

	return d, nil
}

// List returns the chain aliases that have bookkeeping in env
func (s *DeploymentStoreAdapter) List(ctx context.Context, env string) ([]string, error) {
	dirs, err := subdirs(filepath.Join(s.root, env))
	if err != nil {
		return nil, err
	}
	var aliases []string
	for _, alias := range dirs {
		if _, err := os.Stat(filepath.Join(s.root, env, alias, contractsFile)); err == nil {
			aliases = append(aliases, alias)
		}
	}
	return aliases, nil
}

// Environments returns the env folders under the deployments root
func (s *DeploymentStoreAdapter) Environments(ctx context.Context) ([]string, error) {
	return subdirs(s.root)
}

func subdirs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", dir, err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// Ensure the adapter implements the interface
var _ usecase.DeploymentStore = (*DeploymentStoreAdapter)(nil)
