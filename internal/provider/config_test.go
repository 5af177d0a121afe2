package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigDefaults(t *testing.T) {
	cfg := Config{User: "bsg", BaseURL: "https://api.github.com/"}
	require.NoError(t, cfg.PrepareAndValidate())

	assert.Equal(t, REST, cfg.Type)
	assert.Equal(t, "https://api.github.com", cfg.BaseURL)
	assert.Equal(t, "github.com", cfg.WebHost)
	assert.Equal(t, "2022-11-28", cfg.APIVersion)
	assert.NotEmpty(t, cfg.UserAgent)
}

func TestConfigValidation(t *testing.T) {
	cfg := Config{}
	require.Error(t, cfg.PrepareAndValidate())

	cfg = Config{User: "bsg", Type: "gitlab"}
	require.Error(t, cfg.PrepareAndValidate())
}

func TestNewEventSource(t *testing.T) {
	for _, typ := range []ProviderType{REST, SDK} {
		source, err := NewEventSource(Config{User: "bsg", Type: typ})
		require.NoError(t, err, typ)
		assert.NotNil(t, source)
	}

	_, err := NewEventSource(Config{User: "bsg", Type: "bitbucket"})
	require.Error(t, err)

	profile, err := NewProfileSource(Config{User: "bsg", Type: REST})
	require.NoError(t, err)
	assert.NotNil(t, profile)
}
