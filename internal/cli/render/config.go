package render

import (
	"fmt"
	"io"

	"github.com/trebuchet-org/nftops/internal/domain/config"
	"github.com/trebuchet-org/nftops/internal/usecase"
)

// ConfigRenderer renders config-related output
type ConfigRenderer struct {
	out io.Writer
}

// NewConfigRenderer creates a new config renderer
func NewConfigRenderer(out io.Writer) *ConfigRenderer {
	return &ConfigRenderer{
		out: out,
	}
}

// RenderConfig renders the stored defaults and what the current run resolved
func (r *ConfigRenderer) RenderConfig(result *usecase.ShowConfigResult) error {
	if result.Exists {
		fmt.Fprintln(r.out, "📋 Local defaults:")
		fmt.Fprintf(r.out, "Env:       %s\n", result.Config.Env)
		fmt.Fprintf(r.out, "Network:   %s\n", orNotSet(result.Config.Network))
		fmt.Fprintf(r.out, "📁 config file: %s\n", getRelativePath(result.ConfigPath))
	} else {
		fmt.Fprintf(r.out, "❌ No %s file found\n", getRelativePath(result.ConfigPath))
		fmt.Fprintf(r.out, "⚠️  Without config, commands use the %s env and require --network\n", config.DefaultEnv)
	}

	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, "🌐 Effective settings:")
	fmt.Fprintf(r.out, "Env:         %s\n", result.EffectiveEnv)
	fmt.Fprintf(r.out, "Network:     %s\n", orNotSet(result.EffectiveNetwork))
	fmt.Fprintf(r.out, "Artifacts:   %s\n", getRelativePath(result.ArtifactsDir))
	fmt.Fprintf(r.out, "Deployments: %s\n", getRelativePath(result.DeploymentsDir))
	fmt.Fprintf(r.out, "Publish to:  %s\n", orNotSet(result.StorageTarget))
	return nil
}

func orNotSet(v string) string {
	if v == "" {
		return "(not set)"
	}
	return v
}

// RenderSet renders the result of setting a configuration value
func (r *ConfigRenderer) RenderSet(result *usecase.SetConfigResult) error {
	fmt.Fprintf(r.out, "✅ Set %s to: %s\n", result.Key, result.Value)
	fmt.Fprintf(r.out, "📁 config saved to: %s\n", getRelativePath(result.ConfigPath))
	return nil
}

// RenderRemove renders the result of removing a configuration value
func (r *ConfigRenderer) RenderRemove(result *usecase.RemoveConfigResult) error {
	switch result.Key {
	case config.ConfigKeyEnv:
		fmt.Fprintf(r.out, "✅ Reset env to: %s\n", config.DefaultEnv)
	case config.ConfigKeyNetwork:
		fmt.Fprintf(r.out, "✅ Removed network from config (will be required as flag)\n")
	}

	fmt.Fprintf(r.out, "📁 config saved to: %s\n", getRelativePath(result.ConfigPath))
	return nil
}
