package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/trebuchet-org/nftops/internal/domain"
	"github.com/trebuchet-org/nftops/internal/domain/config"
)

// RunTaskParams contains parameters for running a deploy task
type RunTaskParams struct {
	Task   string
	Params map[string]string
	Env    string
}

// RunTask deploys the contracts of one task and records them
type RunTask struct {
	config    *config.RuntimeConfig
	dialer    ChainDialer
	artifacts ArtifactStore
	store     DeploymentStore
	resolver  NetworkResolver
	progress  ProgressSink
	log       *slog.Logger
	getenv    func(string) string
}

// NewRunTask creates a new RunTask use case
func NewRunTask(
	cfg *config.RuntimeConfig,
	dialer ChainDialer,
	artifacts ArtifactStore,
	store DeploymentStore,
	resolver NetworkResolver,
	progress ProgressSink,
	log *slog.Logger,
) *RunTask {
	return &RunTask{
		config:    cfg,
		dialer:    dialer,
		artifacts: artifacts,
		store:     store,
		resolver:  resolver,
		progress:  progress,
		log:       log,
		getenv:    os.Getenv,
	}
}

// Prepare validates the task and its params without touching the chain
func (uc *RunTask) Prepare(params RunTaskParams) (domain.TaskSpec, domain.TaskValues, error) {
	recipe, err := lookupRecipe(params.Task)
	if err != nil {
		return domain.TaskSpec{}, nil, err
	}
	values, err := recipe.spec.ResolveParams(params.Params, uc.getenv)
	if err != nil {
		return domain.TaskSpec{}, nil, err
	}
	return recipe.spec, values, nil
}

// Run executes the task against the configured network
func (uc *RunTask) Run(ctx context.Context, params RunTaskParams) (*domain.TaskResult, error) {
	recipe, err := lookupRecipe(params.Task)
	if err != nil {
		return nil, err
	}
	values, err := recipe.spec.ResolveParams(params.Params, uc.getenv)
	if err != nil {
		return nil, err
	}

	network := uc.config.Network
	if network == nil {
		return nil, fmt.Errorf("no network selected, use --network")
	}

	session, err := uc.dialer.Dial(ctx, network)
	if err != nil {
		return nil, err
	}
	defer session.Close()

	return uc.execute(ctx, session, recipe, values, uc.env(params.Env))
}

func (uc *RunTask) env(override string) string {
	if override != "" {
		return override
	}
	return uc.config.Env
}

// execute runs every step, then saves every produced contract. Save failures
// do not stop the remaining saves.
func (uc *RunTask) execute(ctx context.Context, session ChainSession, recipe taskRecipe, values domain.TaskValues, env string) (*domain.TaskResult, error) {
	network := uc.config.Network
	run := &taskRun{
		ctx:       ctx,
		task:      recipe.spec.Name,
		session:   session,
		artifacts: uc.artifacts,
		values:    values,
		progress:  uc.progress,
		log:       uc.log,
	}

	for i, step := range recipe.steps {
		uc.progress.OnProgress(ctx, ProgressEvent{
			Stage:   "deploy",
			Current: i + 1,
			Total:   len(recipe.steps),
			Message: fmt.Sprintf("Deploying %s", step.Contract),
			Spinner: true,
		})
		if err := run.deployStep(step); err != nil {
			return nil, fmt.Errorf("task %s: %w", recipe.spec.Name, err)
		}
	}

	result := &domain.TaskResult{
		Task:      recipe.spec.Name,
		Env:       env,
		Network:   domain.NetworkInfo{Name: network.Name, ChainID: session.ChainID()},
		Version:   values.Get("ver"),
		Contracts: run.deployed,
	}

	alias := uc.resolver.ChainAlias(network.Name)
	var errs []error
	for _, c := range run.deployed {
		artifact, err := uc.artifacts.Get(c.Verify.Artifact)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		verify := c.Verify
		req := domain.SaveRequest{
			Env:        env,
			ChainAlias: alias,
			Network:    result.Network,
			Contract:   c.Contract,
			Name:       c.Name,
			Version:    result.Version,
			Address:    c.Address,
			Block:      c.Block,
			ABI:        json.RawMessage(artifact.ABI),
			Verify:     &verify,
		}
		if err := uc.store.Save(ctx, req); err != nil {
			uc.log.Error("failed to save deployment", "contract", c.Contract, "error", err)
			errs = append(errs, err)
		}
	}

	return result, errors.Join(errs...)
}

// taskRun carries the state of one task execution
type taskRun struct {
	ctx       context.Context
	task      string
	session   ChainSession
	artifacts ArtifactStore
	values    domain.TaskValues
	progress  ProgressSink
	log       *slog.Logger
	deployed  []domain.DeployedContract
}

func (r *taskRun) deployStep(step contractStep) error {
	artifact, err := r.artifacts.Get(step.Contract)
	if err != nil {
		return err
	}
	args := step.args(r.values)

	var deployed domain.DeployedContract
	if step.Proxy {
		proxy, err := r.artifacts.Get(ProxyArtifact)
		if err != nil {
			return err
		}
		d, err := r.session.DeployProxy(r.ctx, artifact, proxy, "initialize", args)
		if err != nil {
			return fmt.Errorf("failed to deploy %s: %w", step.Contract, err)
		}
		deployed = domain.DeployedContract{
			Contract: step.Contract,
			Address:  d.Proxy.Address,
			TxHash:   d.Proxy.TxHash,
			Block:    d.Proxy.Block,
			Verify: domain.VerifyEntry{
				Task:           r.task,
				Artifact:       step.Contract,
				Address:        d.Proxy.Address,
				Args:           args,
				Proxy:          true,
				Implementation: d.Implementation.Address,
			},
		}
	} else {
		d, err := r.session.Deploy(r.ctx, artifact, args)
		if err != nil {
			return fmt.Errorf("failed to deploy %s: %w", step.Contract, err)
		}
		deployed = domain.DeployedContract{
			Contract: step.Contract,
			Address:  d.Address,
			TxHash:   d.TxHash,
			Block:    d.Block,
			Verify: domain.VerifyEntry{
				Task:     r.task,
				Artifact: step.Contract,
				Address:  d.Address,
				Args:     args,
			},
		}
	}
	deployed.Name = step.stepName(r.values)
	if deployed.Verify.Args == nil {
		deployed.Verify.Args = []string{}
	}

	r.log.Info("deployed", "contract", step.Contract, "address", deployed.Address, "block", deployed.Block)
	r.progress.Info(fmt.Sprintf("%s: %s", step.Contract, deployed.Address))

	if step.After != nil {
		if err := step.After(r, deployed.Address); err != nil {
			return fmt.Errorf("%s post-deploy: %w", step.Contract, err)
		}
	}

	r.deployed = append(r.deployed, deployed)
	return nil
}

func (r *taskRun) call(address, signature string, args ...string) error {
	receipt, err := r.session.Transact(r.ctx, address, signature, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", signature, err)
	}
	r.log.Debug("transaction mined", "call", signature, "tx", receipt.TxHash, "block", receipt.Block)
	return nil
}
