package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testYAML = `
env:
  serviceName: currypoint-test
  log:
    level: info
http:
  port: 9090
storage:
  mode: local
  remote:
    enabled: true
    baseURL: http://remote.example
    pollInterval: 30s
`

func TestLoadWithEnv_FileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(testYAML), 0o600))
	t.Chdir(dir)
	t.Setenv("STORAGE_REMOTE_BASEURL", "http://override.example")
	t.Setenv("HTTP_PORT", "9191")

	cfg, err := LoadWithEnv[Config]("config")
	require.NoError(t, err)

	assert.Equal(t, "currypoint-test", cfg.Env.ServiceName)
	assert.Equal(t, 9191, cfg.HTTP.Port)
	require.NotNil(t, cfg.Storage)
	assert.Equal(t, "local", cfg.Storage.Mode)
	assert.True(t, cfg.Storage.Remote.Enabled)
	assert.Equal(t, "http://override.example", cfg.Storage.Remote.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Storage.Remote.PollInterval)
}

func TestLoadWithEnv_MissingFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := LoadWithEnv[Config]("config")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file config.yaml not found")
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	assert.Equal(t, defaultMaxRequestBodySize, cfg.HTTP.MaxRequestBodySize)
	assert.Equal(t, defaultAdminPhone, cfg.Auth.AdminPhone)
	assert.Equal(t, defaultTokenTTL, cfg.Auth.TokenTTL)
	assert.Equal(t, defaultQRCodeSize, cfg.QRCode.Size)
	assert.Equal(t, "hybrid", cfg.Storage.Mode)
	assert.Equal(t, defaultLocalKey, cfg.Storage.Local.Key)
	assert.Equal(t, defaultRemoteDatabase, cfg.Storage.Remote.Database)
	assert.Equal(t, 5*time.Second, cfg.Storage.Remote.ProbeTimeout)
	assert.Equal(t, 10*time.Second, cfg.Storage.Remote.PollInterval)
	assert.Equal(t, defaultRedisChannel, cfg.Notifier.Redis.Channel)
	assert.Equal(t, "mongo", cfg.DocStore.Backend)
	assert.Equal(t, 5000, cfg.DocStore.Port)
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := &Config{
		Storage: &StorageConfig{
			Mode:   "remote",
			Remote: RemoteStorageConfig{PollInterval: time.Minute},
		},
		Auth: &AuthConfig{AdminPhone: "+91 1111111111"},
	}
	applyDefaults(cfg)

	assert.Equal(t, "remote", cfg.Storage.Mode)
	assert.Equal(t, time.Minute, cfg.Storage.Remote.PollInterval)
	assert.Equal(t, "+91 1111111111", cfg.Auth.AdminPhone)
}
