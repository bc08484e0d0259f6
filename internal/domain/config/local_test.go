package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfigKey(t *testing.T) {
	tests := map[string]ConfigKey{
		"env":         ConfigKeyEnv,
		"Environment": ConfigKeyEnv,
		" network ":   ConfigKeyNetwork,
		"NET":         ConfigKeyNetwork,
	}
	for raw, want := range tests {
		got, err := ParseConfigKey(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got)
	}

	_, err := ParseConfigKey("namespace")
	assert.ErrorContains(t, err, "unknown config key: namespace")
}

func TestLocalConfigSetUnset(t *testing.T) {
	c := DefaultLocalConfig()
	c.Set(ConfigKeyEnv, "stage")
	c.Set(ConfigKeyNetwork, "mumbai")
	assert.Equal(t, "stage", c.Get(ConfigKeyEnv))
	assert.Equal(t, "mumbai", c.Get(ConfigKeyNetwork))

	c.Unset(ConfigKeyEnv)
	c.Unset(ConfigKeyNetwork)
	assert.Equal(t, &LocalConfig{Env: DefaultEnv}, c)
}
