package usecase

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/samber/lo"
	"github.com/trebuchet-org/nftops/internal/domain"
	"github.com/trebuchet-org/nftops/internal/domain/config"
	"golang.org/x/sync/errgroup"
)

// verifyConcurrency bounds parallel explorer submissions
const verifyConcurrency = 4

// VerifyParams selects what to verify. With Task set, constructor arguments
// are re-derived from the task params; otherwise the recorded verify.json
// entries are used (all of them, or only Keys).
type VerifyParams struct {
	Env        string
	Keys       []string
	Task       string
	TaskParams map[string]string
}

// VerifyResult collects per-contract outcomes
type VerifyResult struct {
	Env        string
	ChainAlias string
	Results    []domain.VerificationResult
}

// Failed counts failed verifications
func (r *VerifyResult) Failed() int {
	n := 0
	for _, res := range r.Results {
		if res.Status == domain.VerificationFailed {
			n++
		}
	}
	return n
}

// VerifyDeployment verifies recorded contracts on the network's block explorer
type VerifyDeployment struct {
	config    *config.RuntimeConfig
	store     DeploymentStore
	artifacts ArtifactStore
	encoder   ABIEncoder
	verifier  ContractVerifier
	dialer    ChainDialer
	resolver  NetworkResolver
	tasks     *RunTask
	progress  ProgressSink
	log       *slog.Logger
}

// NewVerifyDeployment creates a new VerifyDeployment use case
func NewVerifyDeployment(
	cfg *config.RuntimeConfig,
	store DeploymentStore,
	artifacts ArtifactStore,
	encoder ABIEncoder,
	verifier ContractVerifier,
	dialer ChainDialer,
	resolver NetworkResolver,
	tasks *RunTask,
	progress ProgressSink,
	log *slog.Logger,
) *VerifyDeployment {
	return &VerifyDeployment{
		config:    cfg,
		store:     store,
		artifacts: artifacts,
		encoder:   encoder,
		verifier:  verifier,
		dialer:    dialer,
		resolver:  resolver,
		tasks:     tasks,
		progress:  progress,
		log:       log,
	}
}

// Run executes the use case
func (uc *VerifyDeployment) Run(ctx context.Context, params VerifyParams) (*VerifyResult, error) {
	network := uc.config.Network
	if network == nil {
		return nil, fmt.Errorf("no network selected, use --network")
	}

	env := params.Env
	if env == "" {
		env = uc.config.Env
	}
	alias := uc.resolver.ChainAlias(network.Name)

	deployments, err := uc.store.Load(ctx, env, alias)
	if err != nil {
		return nil, err
	}

	entries, err := uc.selectEntries(ctx, deployments, params)
	if err != nil {
		return nil, err
	}

	result := &VerifyResult{Env: env, ChainAlias: alias}
	if len(entries) == 0 {
		return result, nil
	}

	if network.IsLocal() {
		for _, key := range sortedKeys(entries) {
			result.Results = append(result.Results, domain.VerificationResult{
				Key:     key,
				Address: entries[key].Address,
				Status:  domain.VerificationSkipped,
				Message: "local network",
				Proxy:   entries[key].Proxy,
			})
		}
		return result, nil
	}

	target := ExplorerTarget{
		APIURL: network.ExplorerAPIURL,
		APIKey: uc.config.Etherscan.KeyFor(network.Name),
		WebURL: network.ExplorerURL,
	}
	if target.APIURL == "" {
		return nil, fmt.Errorf("no explorer API configured for network %s (chain %d)", network.Name, network.ChainID)
	}

	var (
		mu      sync.Mutex
		results = make(map[string]domain.VerificationResult, len(entries))
		done    int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(verifyConcurrency)
	for _, key := range sortedKeys(entries) {
		key, entry := key, entries[key]
		g.Go(func() error {
			res := uc.verifyEntry(gctx, target, key, entry)

			mu.Lock()
			results[key] = res
			done++
			uc.progress.OnProgress(gctx, ProgressEvent{
				Stage:   "verify",
				Current: done,
				Total:   len(entries),
				Message: fmt.Sprintf("%s %s", key, res.Status),
			})
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, key := range sortedKeys(entries) {
		result.Results = append(result.Results, results[key])
	}
	return result, nil
}

// selectEntries picks the verify entries for the run
func (uc *VerifyDeployment) selectEntries(ctx context.Context, d *domain.Deployments, params VerifyParams) (map[string]domain.VerifyEntry, error) {
	if params.Task != "" {
		return uc.entriesFromTask(ctx, d, params)
	}

	if len(params.Keys) == 0 {
		return d.Verify, nil
	}

	entries := make(map[string]domain.VerifyEntry, len(params.Keys))
	for _, key := range params.Keys {
		entry, ok := d.Verify[key]
		if !ok {
			return nil, fmt.Errorf("no verify record for %s in %s/%s: %w", key, d.Env, d.ChainAlias, domain.ErrNotFound)
		}
		entries[key] = entry
	}
	return entries, nil
}

// entriesFromTask rebuilds verify entries from a task definition and the
// addresses recorded in contracts.json
func (uc *VerifyDeployment) entriesFromTask(ctx context.Context, d *domain.Deployments, params VerifyParams) (map[string]domain.VerifyEntry, error) {
	recipe, err := lookupRecipe(params.Task)
	if err != nil {
		return nil, err
	}
	values, err := recipe.spec.ResolveParams(params.TaskParams, uc.tasks.getenv)
	if err != nil {
		return nil, err
	}

	var session ChainSession
	defer func() {
		if session != nil {
			session.Close()
		}
	}()

	entries := make(map[string]domain.VerifyEntry, len(recipe.steps))
	for _, step := range recipe.steps {
		key := domain.ContractKey(step.Contract, values.Get("ver"))
		recorded, ok := d.Contracts[key]
		if !ok {
			return nil, fmt.Errorf("%s not found in %s/%s contracts.json: %w", key, d.Env, d.ChainAlias, domain.ErrNotFound)
		}

		entry := domain.VerifyEntry{
			Task:     recipe.spec.Name,
			Artifact: step.Contract,
			Address:  recorded.Address,
			Args:     step.args(values),
			Proxy:    step.Proxy,
		}
		if step.Proxy {
			if prev, ok := d.Verify[key]; ok && prev.Implementation != "" && prev.Address == recorded.Address {
				entry.Implementation = prev.Implementation
			} else {
				if session == nil {
					session, err = uc.dialer.Dial(ctx, uc.config.Network)
					if err != nil {
						return nil, err
					}
				}
				entry.Implementation, err = session.ImplementationAddress(ctx, recorded.Address)
				if err != nil {
					return nil, fmt.Errorf("failed to read implementation of %s: %w", key, err)
				}
			}
		}
		entries[key] = entry
	}
	return entries, nil
}

func (uc *VerifyDeployment) verifyEntry(ctx context.Context, target ExplorerTarget, key string, entry domain.VerifyEntry) domain.VerificationResult {
	res := domain.VerificationResult{
		Key:     key,
		Address: entry.Address,
		Proxy:   entry.Proxy,
	}
	if target.WebURL != "" {
		res.ExplorerURL = fmt.Sprintf("%s/address/%s#code", target.WebURL, entry.Address)
	}

	err := uc.submit(ctx, target, entry)
	switch {
	case err == nil:
		res.Status = domain.VerificationVerified
	case errors.Is(err, domain.ErrAlreadyVerified):
		res.Status = domain.VerificationVerified
		res.Message = "already verified"
	default:
		res.Status = domain.VerificationFailed
		res.Message = err.Error()
		uc.log.Warn("verification failed", "contract", key, "error", err)
	}
	return res
}

func (uc *VerifyDeployment) submit(ctx context.Context, target ExplorerTarget, entry domain.VerifyEntry) error {
	artifact, err := uc.artifacts.Get(entry.Artifact)
	if err != nil {
		return err
	}
	buildInfo, err := uc.artifacts.BuildInfo(artifact)
	if err != nil {
		return err
	}

	req := domain.SourceVerification{
		Address:         entry.Address,
		ContractName:    artifact.FullyQualifiedName(),
		CompilerVersion: "v" + buildInfo.SolcLongVersion,
		StandardJSON:    buildInfo.Input,
	}

	if !entry.Proxy {
		encoded, err := uc.encoder.EncodeConstructorArgs(artifact, entry.Args)
		if err != nil {
			return fmt.Errorf("failed to encode constructor args: %w", err)
		}
		req.ConstructorArgs = hex.EncodeToString(encoded)
		return uc.verifier.VerifySource(ctx, target, req)
	}

	// upgradeable implementations have no constructor arguments
	if entry.Implementation == "" {
		return fmt.Errorf("implementation address unknown for proxy %s", entry.Address)
	}
	req.Address = entry.Implementation
	if err := uc.verifier.VerifySource(ctx, target, req); err != nil && !errors.Is(err, domain.ErrAlreadyVerified) {
		return fmt.Errorf("implementation %s: %w", entry.Implementation, err)
	}
	return uc.verifier.VerifyProxy(ctx, target, entry.Address, entry.Implementation)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := lo.Keys(m)
	sort.Strings(keys)
	return keys
}
