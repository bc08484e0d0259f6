package plan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePlan(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	path := writePlan(t, `
env: stage
ver: 2
steps:
  - id: mc
    task: deploy-multicall
  - id: auction
    task: deploy-auction
    params:
      multicall: ${mc.Multicall}
  - id: market
    task: deploy-marketplace-with-fee
    depends_on: [auction]
    params:
      name: Marketplace
      fee-in-beeps: 250
      multicall: ${mc.Multicall}
`)

	p, err := NewYAMLLoader().Load(path)
	require.NoError(t, err)
	assert.Equal(t, "stage", p.Env)
	assert.Equal(t, "2", p.Version)
	require.Len(t, p.Steps, 3)
	assert.Equal(t, "${mc.Multicall}", p.Steps[1].Params["multicall"])
	assert.Equal(t, "250", p.Steps[2].Params["fee-in-beeps"])
	assert.Equal(t, []string{"auction"}, p.Steps[2].DependsOn)

	order, err := p.Order()
	require.NoError(t, err)
	assert.Len(t, order, 3)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"empty", "", "is empty"},
		{"no steps", "env: develop\n", "has no steps"},
		{"unknown field", "steps:\n  - id: a\n    taks: deploy-multicall\n", "failed to parse plan"},
		{"bad yaml", "steps: [", "failed to parse plan"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewYAMLLoader().Load(writePlan(t, tt.content))
			assert.ErrorContains(t, err, tt.want)
		})
	}

	_, err := NewYAMLLoader().Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read plan")
}
