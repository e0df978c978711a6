package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.Address())
	assert.Equal(t, EngineMemory, cfg.SearchEngine)
	assert.Equal(t, time.Second, cfg.ChatMinDelay)
	assert.Equal(t, 2*time.Second, cfg.ChatMaxDelay)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, 10000, cfg.SessionLimit)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Origins())
	assert.False(t, cfg.IsProduction())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "9090")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("SEARCH_ENGINE", "bleve")
	t.Setenv("CHAT_MIN_DELAY", "0s")
	t.Setenv("CHAT_MAX_DELAY", "250ms")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, EngineBleve, cfg.SearchEngine)
	assert.Equal(t, 250*time.Millisecond, cfg.ChatMaxDelay)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Origins())
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]map[string]string{
		"unknown engine":      {"SEARCH_ENGINE": "elastic"},
		"max below min":       {"CHAT_MIN_DELAY": "3s", "CHAT_MAX_DELAY": "1s"},
		"port out of range":   {"PORT": "70000"},
		"unknown environment": {"ENVIRONMENT": "staging"},
		"zero session limit":  {"SESSION_LIMIT": "0"},
	}
	for name, vars := range cases {
		t.Run(name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			for k, v := range vars {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
