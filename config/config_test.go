package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	c, err := LoadConfig("", nil)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/api", c.API.BaseURL)
	assert.Equal(t, 20, c.API.TimeoutSeconds)
	assert.Equal(t, "127.0.0.1:8090", c.Server.Addr)
	assert.Equal(t, []string{"http://localhost:3000"}, c.Server.AllowedOrigins)
	assert.False(t, c.Offline)
	assert.Equal(t, c, GetConfig())
}

func TestLoadConfigFileEnvAndFlags(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nightshift.yaml")
	body := "api:\n  baseURL: https://inv.example/api\n  email: asha@example.com\ninvoice:\n  organizationName: Nightshift Traders\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	t.Setenv("NIGHTSHIFT_API_TIMEOUTSECONDS", "5")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Bool("offline", false, "")
	require.NoError(t, flags.Parse([]string{"--offline"}))

	c, err := LoadConfig(path, flags)
	require.NoError(t, err)
	assert.Equal(t, "https://inv.example/api", c.API.BaseURL)
	assert.Equal(t, "asha@example.com", c.API.Email)
	assert.Equal(t, "Nightshift Traders", c.Invoice.OrganizationName)
	assert.Equal(t, 5, c.API.TimeoutSeconds)
	assert.True(t, c.Offline)
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saved.yaml")
	c := Config{
		API:    APIConfig{BaseURL: "http://api.local/api", TimeoutSeconds: 0},
		Server: ServerConfig{Addr: ":9000", AllowedOrigins: []string{"http://ui.local"}},
		Cache:  CacheConfig{Path: "x.db"},
	}
	require.NoError(t, SaveConfig(c, path))

	loaded, err := LoadConfig(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "http://api.local/api", loaded.API.BaseURL)
	assert.Equal(t, 20, loaded.API.TimeoutSeconds)
	assert.Equal(t, ":9000", loaded.Server.Addr)
	assert.Equal(t, []string{"http://ui.local"}, loaded.Server.AllowedOrigins)
}
