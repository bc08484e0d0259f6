package usecase

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"path/filepath"
	"strings"

	"github.com/trebuchet-org/nftops/internal/domain/config"
)

// PublishParams contains parameters for publishing deployment files
type PublishParams struct {
	Env    string
	DryRun bool
}

// PublishResult lists the uploaded object keys
type PublishResult struct {
	Location string
	Keys     []string
	DryRun   bool
}

// PublishDeployments uploads deployments/<env> to the shared bucket
type PublishDeployments struct {
	config   *config.RuntimeConfig
	store    DeploymentStore
	objects  ObjectStore
	progress ProgressSink
	log      *slog.Logger
}

// NewPublishDeployments creates a new PublishDeployments use case
func NewPublishDeployments(cfg *config.RuntimeConfig, store DeploymentStore, objects ObjectStore, progress ProgressSink, log *slog.Logger) *PublishDeployments {
	return &PublishDeployments{config: cfg, store: store, objects: objects, progress: progress, log: log}
}

// Run executes the use case
func (uc *PublishDeployments) Run(ctx context.Context, params PublishParams) (*PublishResult, error) {
	env := params.Env
	if env == "" {
		env = uc.config.Env
	}

	root := filepath.Join(uc.store.Root(), env)
	var files []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".json") {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read deployments for env %s: %w", env, err)
	}

	result := &PublishResult{Location: uc.objects.Location(), DryRun: params.DryRun}
	for _, f := range files {
		rel, err := filepath.Rel(uc.store.Root(), f)
		if err != nil {
			return nil, err
		}
		result.Keys = append(result.Keys, path.Join(uc.config.Storage.Prefix, filepath.ToSlash(rel)))
	}

	if params.DryRun || len(files) == 0 {
		return result, nil
	}

	if err := uc.objects.EnsureBucket(ctx); err != nil {
		return nil, err
	}

	for i, f := range files {
		uc.progress.OnProgress(ctx, ProgressEvent{
			Stage:   "publish",
			Current: i + 1,
			Total:   len(files),
			Message: result.Keys[i],
			Spinner: true,
		})
		if err := uc.objects.Upload(ctx, result.Keys[i], f, "application/json"); err != nil {
			return nil, fmt.Errorf("failed to upload %s: %w", result.Keys[i], err)
		}
		uc.log.Debug("uploaded", "key", result.Keys[i])
	}
	return result, nil
}
