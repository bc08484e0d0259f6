package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/samber/lo"
	"github.com/trebuchet-org/nftops/internal/domain"
	"github.com/trebuchet-org/nftops/internal/domain/config"
)

// RunPlanParams contains parameters for running a plan file
type RunPlanParams struct {
	Path   string
	Env    string
	DryRun bool
}

// RunPlanResult contains the ordered steps and, unless dry-run, their results
type RunPlanResult struct {
	Plan    *domain.Plan
	Order   []domain.PlanStep
	Results []*domain.TaskResult
	DryRun  bool
}

// RunPlan executes a multi-task plan in dependency order
type RunPlan struct {
	config   *config.RuntimeConfig
	loader   PlanLoader
	tasks    *RunTask
	dialer   ChainDialer
	progress ProgressSink
	log      *slog.Logger
}

// NewRunPlan creates a new RunPlan use case
func NewRunPlan(cfg *config.RuntimeConfig, loader PlanLoader, tasks *RunTask, dialer ChainDialer, progress ProgressSink, log *slog.Logger) *RunPlan {
	return &RunPlan{config: cfg, loader: loader, tasks: tasks, dialer: dialer, progress: progress, log: log}
}

// Run executes the use case. It stops at the first failing step; steps that
// already ran stay recorded.
func (uc *RunPlan) Run(ctx context.Context, params RunPlanParams) (*RunPlanResult, error) {
	plan, err := uc.loader.Load(params.Path)
	if err != nil {
		return nil, err
	}

	order, err := plan.Order()
	if err != nil {
		return nil, err
	}

	env := params.Env
	if env == "" {
		env = plan.Env
	}
	if env == "" {
		env = uc.config.Env
	}

	// validate every task up front so a typo does not leave half a deployment
	recipes := make(map[string]taskRecipe, len(order))
	for _, step := range order {
		recipe, err := lookupRecipe(step.Task)
		if err != nil {
			return nil, fmt.Errorf("step %s: %w", step.ID, err)
		}
		for name := range step.Params {
			if _, ok := recipe.spec.Param(name); !ok {
				return nil, fmt.Errorf("step %s: task %s has no param %q", step.ID, recipe.spec.Name, name)
			}
		}
		recipes[step.ID] = recipe
	}
	for _, step := range order {
		for _, ref := range step.ContractRefs() {
			produced := recipes[ref.Step].spec.Contracts
			if !lo.Contains(produced, ref.Contract) {
				return nil, fmt.Errorf("step %s: step %s (%s) does not deploy %s, it deploys %s",
					step.ID, ref.Step, recipes[ref.Step].spec.Name, ref.Contract, strings.Join(produced, ", "))
			}
		}
	}

	result := &RunPlanResult{Plan: plan, Order: order, DryRun: params.DryRun}
	if params.DryRun {
		return result, nil
	}

	if uc.config.Network == nil {
		return nil, fmt.Errorf("no network selected, use --network")
	}

	session, err := uc.dialer.Dial(ctx, uc.config.Network)
	if err != nil {
		return nil, err
	}
	defer session.Close()

	outputs := domain.StepOutputs{}
	for i, step := range order {
		uc.progress.OnProgress(ctx, ProgressEvent{
			Stage:   "plan",
			Current: i + 1,
			Total:   len(order),
			Message: fmt.Sprintf("%s (%s)", step.ID, step.Task),
		})

		stepParams, err := step.ResolveParams(outputs)
		if err != nil {
			return result, err
		}
		if _, ok := stepParams["ver"]; !ok && plan.Version != "" {
			stepParams["ver"] = plan.Version
		}

		recipe := recipes[step.ID]
		values, err := recipe.spec.ResolveParams(stepParams, uc.tasks.getenv)
		if err != nil {
			return result, fmt.Errorf("step %s: %w", step.ID, err)
		}

		taskResult, err := uc.tasks.execute(ctx, session, recipe, values, env)
		if taskResult != nil {
			result.Results = append(result.Results, taskResult)
		}
		if err != nil {
			return result, fmt.Errorf("step %s: %w", step.ID, err)
		}

		outputs[step.ID] = map[string]string{}
		for _, c := range taskResult.Contracts {
			outputs[step.ID][c.Contract] = c.Address
		}
		uc.log.Info("plan step complete", "step", step.ID, "contracts", len(taskResult.Contracts))
	}

	return result, nil
}
