package fs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/trebuchet-org/nftops/internal/domain/config"
	"github.com/trebuchet-org/nftops/internal/usecase"
)

// envNamePattern keeps env names usable as a deployments/<env> folder
var envNamePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]*$`)

// LocalConfigFile is the .nftops/config.local.json defaults file
type LocalConfigFile struct {
	path string
}

func NewLocalConfigFile(cfg *config.RuntimeConfig) *LocalConfigFile {
	return &LocalConfigFile{path: filepath.Join(cfg.DataDir, "config.local.json")}
}

func (f *LocalConfigFile) Exists() bool {
	info, err := os.Stat(f.path)
	return err == nil && !info.IsDir()
}

// Load returns the stored defaults. A missing file yields the develop env
// with no network.
func (f *LocalConfigFile) Load(ctx context.Context) (*config.LocalConfig, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return config.DefaultLocalConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", f.path, err)
	}

	local := config.DefaultLocalConfig()
	if err := json.Unmarshal(data, local); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", f.path, err)
	}
	if local.Env == "" {
		local.Env = config.DefaultEnv
	}
	return local, nil
}

func (f *LocalConfigFile) Save(ctx context.Context, local *config.LocalConfig) error {
	if local.Env != "" && !envNamePattern.MatchString(local.Env) {
		return fmt.Errorf("env %q cannot be used as a deployments folder name", local.Env)
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(f.path), err)
	}
	return writeFileAtomic(f.path, local)
}

func (f *LocalConfigFile) GetPath() string {
	return f.path
}

var _ usecase.LocalConfigStore = (*LocalConfigFile)(nil)
