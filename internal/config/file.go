package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/creasty/defaults"
	"github.com/joho/godotenv"
	"github.com/trebuchet-org/nftops/internal/domain/config"
)

// ConfigFileName is the project config file and root marker
const ConfigFileName = "nftops.toml"

var rootMarkers = []string{ConfigFileName, "hardhat.config.ts", "hardhat.config.js"}

// loadEnvFiles loads .env and .env.local without overriding the process env
func loadEnvFiles(projectRoot string) {
	envFiles := []string{
		filepath.Join(projectRoot, ".env"),
		filepath.Join(projectRoot, ".env.local"),
	}

	for _, envFile := range envFiles {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: Failed to load %s: %v\n", envFile, err)
			}
		}
	}
}

// LoadFileConfig decodes nftops.toml. A missing file yields the defaults.
func LoadFileConfig(projectRoot string) (*config.FileConfig, error) {
	cfg := &config.FileConfig{}

	path := filepath.Join(projectRoot, ConfigFileName)
	if _, err := os.Stat(path); err == nil {
		md, err := toml.DecodeFile(path, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", ConfigFileName, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			fmt.Fprintf(os.Stderr, "Warning: unknown keys in %s: %s\n", ConfigFileName, strings.Join(keys, ", "))
		}
	}

	if err := defaults.Set(&cfg.Paths); err != nil {
		return nil, fmt.Errorf("failed to apply path defaults: %w", err)
	}
	if err := defaults.Set(&cfg.Storage); err != nil {
		return nil, fmt.Errorf("failed to apply storage defaults: %w", err)
	}

	cfg.Etherscan.APIKey = expand(cfg.Etherscan.APIKey)
	for k, v := range cfg.Etherscan.Keys {
		cfg.Etherscan.Keys[k] = expand(v)
	}
	cfg.Storage.Endpoint = expand(cfg.Storage.Endpoint)
	cfg.Storage.AccessKey = expand(cfg.Storage.AccessKey)
	cfg.Storage.SecretKey = expand(cfg.Storage.SecretKey)

	return cfg, nil
}

func expand(s string) string {
	return os.ExpandEnv(s)
}

// expandAll expands every entry and drops the ones that end up empty,
// so an unset DEV_KEY contributes no account.
func expandAll(in []string) []string {
	var out []string
	for _, s := range in {
		if v := strings.TrimSpace(expand(s)); v != "" {
			out = append(out, v)
		}
	}
	return out
}
