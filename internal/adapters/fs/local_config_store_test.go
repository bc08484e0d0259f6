package fs

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/nftops/internal/domain/config"
)

func TestLocalConfigFile(t *testing.T) {
	ctx := context.Background()
	file := NewLocalConfigFile(&config.RuntimeConfig{DataDir: filepath.Join(t.TempDir(), ".nftops")})

	assert.False(t, file.Exists())
	cfg, err := file.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultEnv, cfg.Env)

	require.NoError(t, file.Save(ctx, &config.LocalConfig{Env: "stage", Network: "fuji"}))
	assert.True(t, file.Exists())

	cfg, err = file.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, &config.LocalConfig{Env: "stage", Network: "fuji"}, cfg)

	require.NoError(t, os.WriteFile(file.GetPath(), []byte(`{"network":"matic"}`), 0644))
	cfg, err = file.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultEnv, cfg.Env)
	assert.Equal(t, "matic", cfg.Network)
}

func TestLocalConfigFileRejectsBadEnv(t *testing.T) {
	file := NewLocalConfigFile(&config.RuntimeConfig{DataDir: t.TempDir()})

	for _, env := range []string{"../prod", "a/b", ".hidden"} {
		err := file.Save(context.Background(), &config.LocalConfig{Env: env})
		assert.Error(t, err, env)
	}
	assert.False(t, file.Exists())
}

func TestLocalConfigFileCorrupt(t *testing.T) {
	file := NewLocalConfigFile(&config.RuntimeConfig{DataDir: t.TempDir()})
	require.NoError(t, os.WriteFile(file.GetPath(), []byte("{"), 0644))

	_, err := file.Load(context.Background())
	assert.Error(t, err)
}
