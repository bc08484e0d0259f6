package config

import (
	"fmt"
	"strings"
)

// LocalConfig is .nftops/config.local.json
type LocalConfig struct {
	Env     string `json:"env"`
	Network string `json:"network"`
}

// DefaultEnv is the deployments/<env> folder used when none is configured
const DefaultEnv = "develop"

// ConfigKey is a settable key of LocalConfig
type ConfigKey string

const (
	ConfigKeyEnv     ConfigKey = "env"
	ConfigKeyNetwork ConfigKey = "network"
)

var configKeyAliases = map[string]ConfigKey{
	"env":         ConfigKeyEnv,
	"environment": ConfigKeyEnv,
	"network":     ConfigKeyNetwork,
	"net":         ConfigKeyNetwork,
}

func DefaultLocalConfig() *LocalConfig {
	return &LocalConfig{Env: DefaultEnv}
}

// ParseConfigKey accepts keys case-insensitively, including aliases
func ParseConfigKey(raw string) (ConfigKey, error) {
	if k, ok := configKeyAliases[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return k, nil
	}
	return "", fmt.Errorf("unknown config key: %s\nAvailable keys: env (environment), network (net)", raw)
}

// Get returns the stored value of key
func (c *LocalConfig) Get(key ConfigKey) string {
	switch key {
	case ConfigKeyEnv:
		return c.Env
	case ConfigKeyNetwork:
		return c.Network
	}
	return ""
}

func (c *LocalConfig) Set(key ConfigKey, value string) {
	switch key {
	case ConfigKeyEnv:
		c.Env = value
	case ConfigKeyNetwork:
		c.Network = value
	}
}

// Unset clears key; env falls back to DefaultEnv
func (c *LocalConfig) Unset(key ConfigKey) {
	switch key {
	case ConfigKeyEnv:
		c.Env = DefaultEnv
	case ConfigKeyNetwork:
		c.Network = ""
	}
}
