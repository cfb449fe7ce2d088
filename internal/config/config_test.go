package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dealerpro/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DEALERPRO_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("DEALERPRO_DEV", "true")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.True(t, cfg.Dev)
	assert.Equal(t, "8080", cfg.HTTP.Port)
	assert.Equal(t, "http://localhost:3000/api", cfg.API.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.API.Timeout)
	assert.Equal(t, 100, cfg.Upload.MaxVideoMB)
}

func TestLoadFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dealerpro.yaml")
	yml := []byte("http:\n  port: \"9000\"\napi:\n  base_url: http://api.internal/api\n  timeout: 3s\n")
	require.NoError(t, os.WriteFile(path, yml, 0o600))

	t.Setenv("DEALERPRO_CONFIG", path)
	t.Setenv("DEALERPRO_HTTP__PORT", "9100")
	t.Setenv("DEALERPRO_UPLOAD__MAX_VIDEO_MB", "50")
	t.Setenv("DEALERPRO_SESSION__SECRET", "a-real-deployment-secret-of-enough-length")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "9100", cfg.HTTP.Port, "env wins over file")
	assert.Equal(t, "http://api.internal/api", cfg.API.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.API.Timeout)
	assert.Equal(t, 50, cfg.Upload.MaxVideoMB)
	assert.Equal(t, "http://localhost:3000", cfg.API.MediaURL, "untouched keys keep defaults")
}

func TestValidateRejectsShortSecret(t *testing.T) {
	cfg := config.Default()
	cfg.Dev = true
	cfg.Session.Secret = "short"
	assert.Error(t, cfg.Validate())

	cfg = config.Default()
	cfg.Dev = true
	cfg.API.BaseURL = " "
	assert.Error(t, cfg.Validate())
}

func TestBuiltInSecretNeedsDevMode(t *testing.T) {
	t.Setenv("DEALERPRO_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session.secret")

	cfg := config.Default()
	assert.Error(t, cfg.Validate())
	cfg.Dev = true
	assert.NoError(t, cfg.Validate())
	cfg.Dev = false
	cfg.Session.Secret = "another-secret-that-is-long-enough-0123"
	assert.NoError(t, cfg.Validate())
}
